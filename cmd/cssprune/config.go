package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/cssprune"
	"github.com/yacobolo/cssprune/internal/rules"
)

const (
	defaultConfigFile = ".cssprune.yaml"
	envPrefix         = "CSSPRUNE_"
)

var k = koanf.New(".")

// Flag names shared by several commands map to different config keys
// depending on the command that owns them.
var (
	collectFlagKeys = map[string]string{
		"html-dir":  "collect.html-dir",
		"classes":   "collect.output",
		"recursive": "collect.recursive",
		"gitignore": "collect.gitignore",
	}
	pruneFlagKeys = map[string]string{
		"css-dir":            "prune.css-dir",
		"classes":            "prune.classes",
		"output":             "prune.output",
		"recursive":          "prune.recursive",
		"gitignore":          "prune.gitignore",
		"container-at-rules": "prune.container-at-rules",
	}
	runFlagKeys = map[string]string{
		"html-dir":           "collect.html-dir",
		"css-dir":            "prune.css-dir",
		"classes":            "prune.classes",
		"output":             "prune.output",
		"recursive":          "recursive",
		"gitignore":          "gitignore",
		"container-at-rules": "prune.container-at-rules",
	}
)

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command, flagKeys map[string]string) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set).
	// Defaults live in the build functions below.
	provider := posflag.ProviderWithFlag(cmd.Flags(), ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		key := f.Name
		if mapped, ok := flagKeys[f.Name]; ok {
			key = mapped
		}
		return key, posflag.FlagVal(cmd.Flags(), f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSPRUNE_* prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
//
//	CSSPRUNE_PRUNE_CSS_DIR -> prune.css-dir
//	CSSPRUNE_COLLECT_RECURSIVE -> collect.recursive
//	CSSPRUNE_LOG_LEVEL -> log-level
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"collect", "prune"} {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildCollectConfig constructs the library's CollectConfig from koanf state.
func buildCollectConfig() cssprune.CollectConfig {
	return cssprune.CollectConfig{
		HTMLDir:   getString("collect.html-dir", "html"),
		Output:    getString("collect.output", "used_classes.txt"),
		Recursive: getBoolWithFallback("recursive", "collect.recursive", false),
		GitIgnore: getBoolWithFallback("gitignore", "collect.gitignore", false),
	}
}

// buildPruneConfig constructs the library's Config from koanf state.
func buildPruneConfig() cssprune.Config {
	config := cssprune.Config{
		CSSDir:      getString("prune.css-dir", "css"),
		ClassesFile: getString("prune.classes", "used_classes.txt"),
		Output:      getString("prune.output", "clear.css"),
		Recursive:   getBoolWithFallback("recursive", "prune.recursive", false),
		GitIgnore:   getBoolWithFallback("gitignore", "prune.gitignore", false),
	}

	if names := k.Strings("prune.container-at-rules"); len(names) > 0 {
		config.ContainerAtRules = names
	} else {
		config.ContainerAtRules = rules.DefaultContainerAtRules
	}

	return config
}

// getString returns the value at key, or defaultVal when it is unset or empty.
func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the shared key first, then the section key, then returns the default.
func getBoolWithFallback(sharedKey, sectionKey string, defaultVal bool) bool {
	if k.Exists(sharedKey) {
		return k.Bool(sharedKey)
	}
	if k.Exists(sectionKey) {
		return k.Bool(sectionKey)
	}
	return defaultVal
}
