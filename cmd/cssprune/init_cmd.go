package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssprune.yaml config file",
	Long:  `Create a .cssprune.yaml configuration file in the current directory with the default settings.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Printf("Created %s\n", defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# cssprune configuration
# Every key can be overridden with a CSSPRUNE_* environment variable,
# e.g. CSSPRUNE_PRUNE_CSS_DIR=assets/css

# Shared settings
verbose: false
quiet: false
color: false
log-level: normal      # none | normal | debug
output-format: text    # text | json

# Class collection
collect:
  html-dir: html
  output: used_classes.txt
  recursive: false
  gitignore: false       # skip files matched by html-dir/.gitignore

# Stylesheet pruning
prune:
  css-dir: css
  classes: used_classes.txt
  output: clear.css
  recursive: false
  gitignore: false       # skip files matched by css-dir/.gitignore
  container-at-rules:
    - media
    - supports
    - document
    - container
    - layer
    - scope
    - starting-style
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
