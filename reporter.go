package cssprune

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/cssprune/internal/rules"
)

// Reporter prints human-readable run summaries
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter. forceColors enables colors even when w is
// not a terminal.
func NewReporter(w io.Writer, forceColors bool) *Reporter {
	return &Reporter{
		w:         w,
		useColors: shouldUseColors(forceColors),
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// NO_COLOR opts out (https://no-color.org)
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// CI systems that render ANSI
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintCollect outputs the class collection summary
func (r *Reporter) PrintCollect(result *CollectResult, output string) {
	fmt.Fprintf(r.w, "%s %s from %s",
		RenderStyle(StyleGreen, "Collected", r.useColors),
		pluralizeCount(len(result.Classes), "class", "classes"),
		pluralizeCount(result.FilesScanned, "HTML file", "HTML files"))
	if output != "" {
		fmt.Fprintf(r.w, " -> %s", RenderStyle(StyleCyan, output, r.useColors))
	}
	fmt.Fprintln(r.w)
	r.printIgnored(result.FilesIgnored)

	r.printSkipped(result.Errors)
}

// PrintPrune outputs the pruning summary
func (r *Reporter) PrintPrune(result *PruneResult) {
	fmt.Fprintf(r.w, "%s %s of %s from %s -> %s\n",
		RenderStyle(StyleGreen, "Kept", r.useColors),
		pluralizeCount(result.RulesRetained, "rule", "rules"),
		pluralizeCount(result.RulesSeen, "rule", "rules"),
		pluralizeCount(result.FilesScanned, "stylesheet", "stylesheets"),
		RenderStyle(StyleCyan, result.Output, r.useColors))

	fmt.Fprintf(r.w, "* %s: %d\n", rules.TagComment, result.ByTag[rules.TagComment])
	fmt.Fprintf(r.w, "* %s: %d\n", rules.TagAtRule, result.ByTag[rules.TagAtRule])
	fmt.Fprintf(r.w, "* %s: %d\n", rules.TagStyle, result.ByTag[rules.TagStyle])

	fmt.Fprintln(r.w, RenderStyle(StyleGray,
		fmt.Sprintf("%d unused, %d duplicate, %d empty (%d used classes loaded)",
			result.RulesDropped, result.DuplicatesRemoved, result.RulesEmpty, result.ClassesLoaded),
		r.useColors))
	r.printIgnored(result.FilesIgnored)

	r.printSkipped(result.Errors)
}

// printIgnored notes files left out by .gitignore
func (r *Reporter) printIgnored(count int) {
	if count == 0 {
		return
	}
	fmt.Fprintln(r.w, RenderStyle(StyleGray,
		pluralizeCount(count, "file", "files")+" excluded by .gitignore", r.useColors))
}

// printSkipped lists the files that could not be processed
func (r *Reporter) printSkipped(errs []error) {
	if len(errs) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%s\n", RenderStyle(StyleYellow,
		fmt.Sprintf("Skipped %s:", pluralizeCount(len(errs), "file", "files")), r.useColors))
	for _, err := range errs {
		var fe *FileError
		if errors.As(err, &fe) {
			fmt.Fprintf(r.w, "  %s %s\n",
				RenderStyle(StyleCyan, fe.Path+":", r.useColors),
				RenderStyle(StyleRed, fe.Op+": "+fe.Err.Error(), r.useColors))
			continue
		}
		fmt.Fprintf(r.w, "  %s\n", RenderStyle(StyleRed, err.Error(), r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
