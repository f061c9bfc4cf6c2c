package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cssprune"
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Strip unused rules from stylesheets",
	Long: `Read a class list and every .css file of a directory, keep the rules that
can apply to a listed class, drop duplicates and write one sorted stylesheet.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd, pruneFlagKeys)
	},
	RunE: runPrune,
}

func init() {
	f := pruneCmd.Flags()
	f.String("css-dir", "css", "Directory containing stylesheets")
	f.String("classes", "used_classes.txt", "Class list to read")
	f.String("output", "clear.css", "Pruned stylesheet to write")
	f.Bool("recursive", false, "Descend into subdirectories")
	f.Bool("gitignore", false, "Skip files matched by the directory's .gitignore")
	f.StringSlice("container-at-rules", nil, "At-rules whose nested rules decide whether they are kept (default: media, supports, document, container, layer, scope, starting-style)")
}

func runPrune(_ *cobra.Command, _ []string) error {
	return withLogger(func(log *zap.Logger) error {
		config := buildPruneConfig()
		config.Logger = log

		result, err := cssprune.Prune(config)
		if err != nil {
			return fmt.Errorf("pruning failed: %w", err)
		}

		printReport(nil, "", result)
		return nil
	})
}
