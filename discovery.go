package cssprune

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	ignore "github.com/sabhiram/go-gitignore"
)

// Extensions of the inputs of each pipeline (compared case-insensitively)
var (
	htmlExtensions = []string{".html", ".htm"}
	cssExtensions  = []string{".css"}
)

// ScanStats tracks file discovery statistics
type ScanStats struct {
	FilesDiscovered int // Regular files found under the directory
	FilesMatched    int // Files with a wanted extension
	FilesIgnored    int // Matched files excluded by .gitignore
}

// discoverFiles lists the files in dir with one of exts, in natural name order.
// With gitignore set, files matched by dir/.gitignore are left out.
func discoverFiles(dir string, exts []string, recursive, gitignore bool) ([]string, ScanStats, error) {
	stats := ScanStats{}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, stats, fmt.Errorf("source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, stats, fmt.Errorf("source directory %s is not a directory", dir)
	}

	pattern := "*"
	if recursive {
		pattern = "**/*"
	}

	// Use doublestar for ** glob support
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
	}

	var gi *ignore.GitIgnore
	if gitignore {
		gi = loadGitIgnore(dir)
	}

	var rel []string
	for _, match := range matches {
		stats.FilesDiscovered++

		if !hasExtension(match, exts) {
			continue
		}
		stats.FilesMatched++

		if gi != nil && gi.MatchesPath(match) {
			stats.FilesIgnored++
			continue
		}
		rel = append(rel, match)
	}

	// Natural order makes the first-seen duplicate stable across platforms
	sort.Sort(natural.StringSlice(rel))

	files := make([]string, 0, len(rel))
	for _, r := range rel {
		files = append(files, filepath.Join(dir, filepath.FromSlash(r)))
	}

	return files, stats, nil
}

// loadGitIgnore compiles dir/.gitignore.
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore(dir string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

// hasExtension reports whether name ends with one of exts, ignoring case
func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
