package cssprune

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/cssprune/internal/rules"
)

// CollectConfig holds class collection configuration
type CollectConfig struct {
	HTMLDir   string      // "html"
	Output    string      // "used_classes.txt" ("" skips writing)
	Recursive bool        // Descend into subdirectories
	GitIgnore bool        // Skip files matched by HTMLDir/.gitignore
	Logger    *zap.Logger // nil disables logging
}

// Config holds pruning configuration
type Config struct {
	CSSDir           string      // "css"
	ClassesFile      string      // "used_classes.txt"
	Output           string      // "clear.css"
	Recursive        bool        // Descend into subdirectories
	GitIgnore        bool        // Skip files matched by CSSDir/.gitignore
	ContainerAtRules []string    // At-rules kept or dropped by their nested rules (default: rules.DefaultContainerAtRules)
	Logger           *zap.Logger // nil disables logging
}

// CollectResult contains class collection stats
type CollectResult struct {
	Classes      []string // Sorted, unique
	FilesScanned int
	FilesSkipped int
	FilesIgnored int     // Excluded by .gitignore
	Errors       []error // *FileError per skipped file
}

// Err combines per-file errors, nil when every file was processed
func (r *CollectResult) Err() error {
	return multierr.Combine(r.Errors...)
}

// PruneResult contains pruning stats
type PruneResult struct {
	ClassesLoaded     int
	FilesScanned      int
	FilesSkipped      int
	FilesIgnored      int // Excluded by .gitignore
	RulesSeen         int // Top-level rules across all stylesheets
	RulesRetained     int
	RulesDropped      int // Rejected by the class filter
	RulesEmpty        int // No serializable text
	DuplicatesRemoved int
	ByTag             map[rules.Tag]int
	Output            string
	Errors            []error // *FileError per skipped file
}

// Err combines per-file errors, nil when every file was processed
func (r *PruneResult) Err() error {
	return multierr.Combine(r.Errors...)
}

// OutputFormat represents the console report format
type OutputFormat string

const (
	// OutputText is a human-readable summary
	OutputText OutputFormat = "text"
	// OutputJSON exports the stats as JSON (tooling integration)
	OutputJSON OutputFormat = "json"
)
