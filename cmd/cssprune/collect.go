package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/cssprune"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect the classes used by HTML pages",
	Long: `Scan every .html/.htm file of a directory and write the sorted set of
class names found in class attributes, one per line.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd, collectFlagKeys)
	},
	RunE: runCollect,
}

func init() {
	f := collectCmd.Flags()
	f.String("html-dir", "html", "Directory containing HTML pages")
	f.String("classes", "used_classes.txt", "Class list to write")
	f.Bool("recursive", false, "Descend into subdirectories")
	f.Bool("gitignore", false, "Skip files matched by the directory's .gitignore")
}

func runCollect(_ *cobra.Command, _ []string) error {
	return withLogger(func(log *zap.Logger) error {
		config := buildCollectConfig()
		config.Logger = log

		result, err := cssprune.CollectClasses(config)
		if err != nil {
			return fmt.Errorf("collection failed: %w", err)
		}

		printReport(result, config.Output, nil)
		return nil
	})
}
