package cssprune

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/yacobolo/cssprune/internal/rules"
)

// JSONOutput represents the structured JSON report
type JSONOutput struct {
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	Collect   *JSONCollect `json:"collect,omitempty"`
	Prune     *JSONPrune   `json:"prune,omitempty"`
}

// JSONCollect contains class collection stats
type JSONCollect struct {
	Classes      int             `json:"classes"`
	FilesScanned int             `json:"files_scanned"`
	FilesIgnored int             `json:"files_ignored"`
	FilesSkipped []JSONFileError `json:"files_skipped"`
}

// JSONPrune contains pruning stats
type JSONPrune struct {
	Output            string          `json:"output"`
	ClassesLoaded     int             `json:"classes_loaded"`
	FilesScanned      int             `json:"files_scanned"`
	FilesIgnored      int             `json:"files_ignored"`
	RulesSeen         int             `json:"rules_seen"`
	RulesRetained     int             `json:"rules_retained"`
	RulesDropped      int             `json:"rules_dropped"`
	RulesEmpty        int             `json:"rules_empty"`
	DuplicatesRemoved int             `json:"duplicates_removed"`
	Comments          int             `json:"comments"`
	AtRules           int             `json:"at_rules"`
	Styles            int             `json:"styles"`
	FilesSkipped      []JSONFileError `json:"files_skipped"`
}

// JSONFileError describes a skipped input file
type JSONFileError struct {
	File  string `json:"file"`
	Op    string `json:"op,omitempty"`
	Error string `json:"error"`
}

// WriteJSON writes the run results as indented JSON
func WriteJSON(w io.Writer, collect *CollectResult, prune *PruneResult) error {
	output := buildJSONOutput(collect, prune)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts results to JSONOutput
func buildJSONOutput(collect *CollectResult, prune *PruneResult) JSONOutput {
	output := JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if collect != nil {
		output.Collect = &JSONCollect{
			Classes:      len(collect.Classes),
			FilesScanned: collect.FilesScanned,
			FilesIgnored: collect.FilesIgnored,
			FilesSkipped: convertFileErrors(collect.Errors),
		}
	}

	if prune != nil {
		output.Prune = &JSONPrune{
			Output:            prune.Output,
			ClassesLoaded:     prune.ClassesLoaded,
			FilesScanned:      prune.FilesScanned,
			FilesIgnored:      prune.FilesIgnored,
			RulesSeen:         prune.RulesSeen,
			RulesRetained:     prune.RulesRetained,
			RulesDropped:      prune.RulesDropped,
			RulesEmpty:        prune.RulesEmpty,
			DuplicatesRemoved: prune.DuplicatesRemoved,
			Comments:          prune.ByTag[rules.TagComment],
			AtRules:           prune.ByTag[rules.TagAtRule],
			Styles:            prune.ByTag[rules.TagStyle],
			FilesSkipped:      convertFileErrors(prune.Errors),
		}
	}

	return output
}

func convertFileErrors(errs []error) []JSONFileError {
	out := make([]JSONFileError, 0, len(errs))
	for _, err := range errs {
		var fe *FileError
		if errors.As(err, &fe) {
			out = append(out, JSONFileError{File: fe.Path, Op: fe.Op, Error: fe.Err.Error()})
			continue
		}
		out = append(out, JSONFileError{Error: err.Error()})
	}
	return out
}
