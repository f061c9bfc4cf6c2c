package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cssprune",
	Short: "Remove CSS rules that no HTML page uses",
	Long: `Collect every class referenced by the HTML pages of a site, then keep only
the stylesheet rules that can apply to one of them. Comments and at-rules
are preserved, container at-rules (@media, @supports, ...) are kept only
when a nested rule survives, and duplicates across files are dropped.`,
	// Default behavior: run the full pipeline when no subcommand is given.
	// PreRunE of runCmd is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd, runFlagKeys); err != nil {
			return err
		}
		return runPipeline(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.Bool("color", false, "Force color output")
	pf.String("config", defaultConfigFile, "Config file path")
	pf.String("log-level", "normal", "Log level: none|normal|debug")
	pf.String("output-format", "text", "Report format: text|json")

	addRunFlags(rootCmd)

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
