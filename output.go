package cssprune

import (
	"io"
	"os"
	"strings"
)

// DetermineOutputFormat selects the report format from the flag value.
// Unknown values fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch strings.ToLower(strings.TrimSpace(formatFlag)) {
	case "json":
		return OutputJSON
	default:
		return OutputText
	}
}

// WriteReport writes the results of a run in the given format.
// Either result may be nil when that stage did not run.
func WriteReport(w io.Writer, collect *CollectResult, collectOutput string, prune *PruneResult, format OutputFormat, forceColors bool) {
	switch format {
	case OutputJSON:
		if err := WriteJSON(w, collect, prune); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}

	default:
		reporter := NewReporter(w, forceColors)
		if collect != nil {
			reporter.PrintCollect(collect, collectOutput)
		}
		if prune != nil {
			reporter.PrintPrune(prune)
		}
	}
}
