package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cssprune"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect classes and prune stylesheets in one go",
	Long: `Run collect followed by prune. The class list is written to --classes and
read back from the same file.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd, runFlagKeys)
	},
	RunE: runPipeline,
}

func init() {
	addRunFlags(runCmd)
}

// addRunFlags registers the pipeline flags; the root command shares them
// because it runs the pipeline by default.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("html-dir", "html", "Directory containing HTML pages")
	f.String("css-dir", "css", "Directory containing stylesheets")
	f.String("classes", "used_classes.txt", "Intermediate class list")
	f.String("output", "clear.css", "Pruned stylesheet to write")
	f.Bool("recursive", false, "Descend into subdirectories")
	f.Bool("gitignore", false, "Skip files matched by the directory's .gitignore")
	f.StringSlice("container-at-rules", nil, "At-rules whose nested rules decide whether they are kept")
}

func runPipeline(_ *cobra.Command, _ []string) error {
	return withLogger(func(log *zap.Logger) error {
		collectConfig, pruneConfig := buildRunConfigs()
		collectConfig.Logger = log
		pruneConfig.Logger = log

		collected, pruned, err := cssprune.Run(collectConfig, pruneConfig)
		if err != nil {
			return err
		}

		printReport(collected, collectConfig.Output, pruned)
		return nil
	})
}

// buildRunConfigs chains both stages through prune.classes
func buildRunConfigs() (cssprune.CollectConfig, cssprune.Config) {
	collectConfig := buildCollectConfig()
	pruneConfig := buildPruneConfig()
	collectConfig.Output = pruneConfig.ClassesFile
	return collectConfig, pruneConfig
}
