package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yacobolo/cssprune"
)

// withLogger runs fn with the logger selected by the current configuration
func withLogger(fn func(log *zap.Logger) error) error {
	log, err := newLogger(resolveLogLevel(), zapcore.Lock(os.Stderr), isTerminal(os.Stderr))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	return fn(log)
}

// printReport writes the results to stdout unless --quiet is set
func printReport(collect *cssprune.CollectResult, collectOutput string, prune *cssprune.PruneResult) {
	if getBoolWithFallback("quiet", "quiet", false) {
		return
	}
	format := cssprune.DetermineOutputFormat(getString("output-format", string(cssprune.OutputText)))
	color := getBoolWithFallback("color", "color", false)
	cssprune.WriteReport(os.Stdout, collect, collectOutput, prune, format, color)
}
