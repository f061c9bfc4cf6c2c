package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yacobolo/cssprune/internal/rules"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssprune.yaml")
	configContent := `
verbose: true
output-format: json

collect:
  html-dir: site/pages
  output: classes.txt
  recursive: true

prune:
  css-dir: site/styles
  classes: classes.txt
  output: dist/site.css
  container-at-rules:
    - media
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "json", k.String("output-format"))
	assert.Equal(t, "site/pages", k.String("collect.html-dir"))
	assert.True(t, k.Bool("collect.recursive"))
	assert.Equal(t, "dist/site.css", k.String("prune.output"))
	assert.Equal(t, []string{"media"}, k.Strings("prune.container-at-rules"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config, should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.cssprune.yaml"))

	collect := buildCollectConfig()
	assert.Equal(t, "html", collect.HTMLDir)
	assert.Equal(t, "used_classes.txt", collect.Output)
	assert.False(t, collect.Recursive)

	prune := buildPruneConfig()
	assert.Equal(t, "css", prune.CSSDir)
	assert.Equal(t, "used_classes.txt", prune.ClassesFile)
	assert.Equal(t, "clear.css", prune.Output)
	assert.False(t, prune.Recursive)
	assert.Equal(t, rules.DefaultContainerAtRules, prune.ContainerAtRules)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssprune.yaml")
	configContent := `
prune:
  css-dir: from-file
  recursive: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("CSSPRUNE_PRUNE_CSS_DIR", "from-env")
	t.Setenv("CSSPRUNE_PRUNE_RECURSIVE", "true")
	t.Setenv("CSSPRUNE_LOG_LEVEL", "debug")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env", k.String("prune.css-dir"))
	assert.True(t, k.Bool("prune.recursive"))
	assert.Equal(t, "debug", k.String("log-level"))

	config := buildPruneConfig()
	assert.Equal(t, "from-env", config.CSSDir)
	assert.True(t, config.Recursive)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env      string
		expected string
	}{
		{env: "CSSPRUNE_PRUNE_CSS_DIR", expected: "prune.css-dir"},
		{env: "CSSPRUNE_PRUNE_CONTAINER_AT_RULES", expected: "prune.container-at-rules"},
		{env: "CSSPRUNE_COLLECT_HTML_DIR", expected: "collect.html-dir"},
		{env: "CSSPRUNE_COLLECT_OUTPUT", expected: "collect.output"},
		{env: "CSSPRUNE_LOG_LEVEL", expected: "log-level"},
		{env: "CSSPRUNE_OUTPUT_FORMAT", expected: "output-format"},
		{env: "CSSPRUNE_VERBOSE", expected: "verbose"},
		{env: "CSSPRUNE_PRUNER_X", expected: "pruner-x"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			require.Equal(t, tt.expected, envKey(tt.env))
		})
	}
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssprune.yaml")
	configContent := `
prune:
  css-dir: from-file
  output: from-file.css
  recursive: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cmd := &cobra.Command{Use: "prune"}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("css-dir", "css", "")
	cmd.Flags().String("output", "clear.css", "")
	cmd.Flags().Bool("recursive", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--config", configPath, "--output", "from-flag.css"}))

	require.NoError(t, loadConfig(cmd, pruneFlagKeys))

	config := buildPruneConfig()
	assert.Equal(t, "from-flag.css", config.Output)
	// Unchanged flags keep the file values
	assert.Equal(t, "from-file", config.CSSDir)
	assert.True(t, config.Recursive)
}

func TestBuildRunConfigs_SharesClassList(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssprune.yaml")
	configContent := `
recursive: true
collect:
  output: ignored.txt
prune:
  classes: shared.txt
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	collect, prune := buildRunConfigs()
	assert.Equal(t, "shared.txt", collect.Output)
	assert.Equal(t, "shared.txt", prune.ClassesFile)
	assert.True(t, collect.Recursive)
	assert.True(t, prune.Recursive)
}

func TestBuildConfigs_GitIgnore(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		flagKeys    map[string]string
		wantCollect bool
		wantPrune   bool
	}{
		{name: "off by default", args: nil, flagKeys: runFlagKeys},
		{name: "run flag sets both", args: []string{"--gitignore"}, flagKeys: runFlagKeys, wantCollect: true, wantPrune: true},
		{name: "prune flag sets prune only", args: []string{"--gitignore"}, flagKeys: pruneFlagKeys, wantPrune: true},
		{name: "collect flag sets collect only", args: []string{"--gitignore"}, flagKeys: collectFlagKeys, wantCollect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKoanf()
			chdir(t, t.TempDir())

			cmd := &cobra.Command{Use: "test"}
			cmd.Flags().String("config", "", "")
			cmd.Flags().Bool("gitignore", false, "")
			require.NoError(t, cmd.Flags().Parse(tt.args))
			require.NoError(t, loadConfig(cmd, tt.flagKeys))

			assert.Equal(t, tt.wantCollect, buildCollectConfig().GitIgnore)
			assert.Equal(t, tt.wantPrune, buildPruneConfig().GitIgnore)
		})
	}
}

func TestResolveLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]interface{}
		expected string
	}{
		{name: "default", values: nil, expected: logLevelNormal},
		{name: "explicit level", values: map[string]interface{}{"log-level": "debug"}, expected: logLevelDebug},
		{name: "verbose", values: map[string]interface{}{"verbose": true}, expected: logLevelDebug},
		{name: "quiet wins", values: map[string]interface{}{"verbose": true, "quiet": true}, expected: logLevelNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetKoanf()
			for key, val := range tt.values {
				require.NoError(t, k.Set(key, val))
			}
			assert.Equal(t, tt.expected, resolveLogLevel())
		})
	}
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		level   string
		want    []string
		notWant []string
	}{
		{level: logLevelNone, notWant: []string{"debug entry", "info entry", "warn entry", "error entry"}},
		{level: logLevelNormal, want: []string{"info entry", "warn entry", "error entry", "first; second"}, notWant: []string{"debug entry", "errorVerbose"}},
		{level: logLevelDebug, want: []string{"debug entry", "info entry", "warn entry", "error entry"}, notWant: []string{"errorVerbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log, err := newLogger(tt.level, zapcore.AddSync(&buf), false)
			require.NoError(t, err)

			log.Debug("debug entry")
			log.Info("info entry")
			log.Warn("warn entry")
			log.Error("error entry", zap.Error(multierr.Combine(errors.New("first"), errors.New("second"))))
			require.NoError(t, log.Sync())

			out := buf.String()
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	_, err := newLogger("loud", zapcore.AddSync(&bytes.Buffer{}), false)
	require.Error(t, err)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(".cssprune.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "collect:")
	assert.Contains(t, string(data), "prune:")
	assert.Contains(t, string(data), "css-dir: css")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".cssprune.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	chdir(t, t.TempDir())

	// Create existing file
	require.NoError(t, os.WriteFile(".cssprune.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssprune.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "log-level: normal")
}

func TestRunCommand(t *testing.T) {
	resetKoanf()
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.MkdirAll("html", 0o755))
	require.NoError(t, os.MkdirAll("css", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("html", "index.html"), []byte(`<p class="lead">x</p>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join("css", "site.css"), []byte(".lead { font-size: 2em; } .gone { color: red; }"), 0o644))

	cmd := rootCmd
	cmd.SetArgs([]string{"run", "--quiet"})
	require.NoError(t, cmd.Execute())

	classes, err := os.ReadFile("used_classes.txt")
	require.NoError(t, err)
	assert.Equal(t, "lead\n", string(classes))

	css, err := os.ReadFile("clear.css")
	require.NoError(t, err)
	assert.Equal(t, ".lead { font-size: 2em; }\n\n", string(css))
}

func TestPruneCommand_MissingClassList(t *testing.T) {
	resetKoanf()
	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll("css", 0o755))

	cmd := rootCmd
	cmd.SetArgs([]string{"prune", "--quiet"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "used_classes.txt")
}

func TestGetString(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getString("config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("shared-key", "config.key", false))
	assert.True(t, getBoolWithFallback("shared-key", "config.key", true))

	require.NoError(t, k.Set("config.key", true))
	assert.True(t, getBoolWithFallback("shared-key", "config.key", false))

	require.NoError(t, k.Set("shared-key", false))
	assert.False(t, getBoolWithFallback("shared-key", "config.key", true))
}
