package cssprune

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// CollectClasses unions the class attribute tokens of every HTML file in
// config.HTMLDir. Unreadable files are logged and skipped.
func CollectClasses(config CollectConfig) (*CollectResult, error) {
	log := loggerOrNop(config.Logger).Named("class-collector")
	result := &CollectResult{}

	files, stats, err := discoverFiles(config.HTMLDir, htmlExtensions, config.Recursive, config.GitIgnore)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesIgnored = stats.FilesIgnored
	log.Debug("Found HTML files",
		zap.Int("files", len(files)),
		zap.Int("ignored", stats.FilesIgnored))

	seen := make(map[string]struct{})
	for _, file := range files {
		if err := collectFile(file, seen); err != nil {
			log.Warn("Skipping HTML file", zap.String("file", file), zap.Error(err))
			result.Errors = append(result.Errors, err)
			result.FilesSkipped++
			continue
		}
		result.FilesScanned++
	}

	result.Classes = make([]string, 0, len(seen))
	for class := range seen {
		result.Classes = append(result.Classes, class)
	}
	sort.Strings(result.Classes)

	if config.Output != "" {
		if err := WriteClassList(config.Output, result.Classes); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
	}

	return result, nil
}

// collectFile adds the classes of one HTML document to seen.
// Nothing is added when the file fails to read or decode.
func collectFile(path string, seen map[string]struct{}) error {
	// #nosec G304 - path comes from directory discovery
	f, err := os.Open(path)
	if err != nil {
		return fileError(path, OpRead, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fileError(path, OpRead, err)
	}
	if !utf8.Valid(content) {
		return fileError(path, OpDecode, ErrInvalidUTF8)
	}

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return fileError(path, OpParse, err)
	}

	for _, class := range extractClasses(doc) {
		seen[class] = struct{}{}
	}
	return nil
}

// extractClasses returns the whitespace-separated tokens of every class
// attribute in the tree, in document order
func extractClasses(doc *html.Node) []string {
	var classes []string

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Namespace == "" && a.Key == "class" {
					classes = append(classes, strings.Fields(a.Val)...)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return classes
}

// WriteClassList replaces path with one class per line
func WriteClassList(path string, classes []string) (err error) {
	// #nosec G304 - path comes from trusted configuration
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create class list: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close class list: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, class := range classes {
		if _, err := w.WriteString(class + "\n"); err != nil {
			return fmt.Errorf("write class list: %w", err)
		}
	}
	return w.Flush()
}

// loggerOrNop returns l, or a no-op logger when l is nil
func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
