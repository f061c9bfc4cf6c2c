package cssprune

import (
	"fmt"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/yacobolo/cssprune/internal/rules"
)

// Prune is the main entry point: it keeps the rules of every stylesheet in
// config.CSSDir that can apply to a used class, deduplicates them across
// files, sorts them and writes the result to config.Output.
func Prune(config Config) (*PruneResult, error) {
	log := loggerOrNop(config.Logger).Named("pruner")
	result := &PruneResult{
		Output: config.Output,
		ByTag:  make(map[rules.Tag]int),
	}

	// 1. Load the used class list
	used, err := LoadUsedClasses(config.ClassesFile)
	if err != nil {
		return nil, err
	}
	result.ClassesLoaded = used.Len()
	log.Debug("Loaded used classes", zap.Int("classes", used.Len()))

	// 2. Scan CSS files
	files, stats, err := discoverFiles(config.CSSDir, cssExtensions, config.Recursive, config.GitIgnore)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	result.FilesIgnored = stats.FilesIgnored
	log.Debug("Found CSS files",
		zap.Int("files", len(files)),
		zap.Int("ignored", stats.FilesIgnored))

	// 3. Parse and collect in file order
	parser := rules.NewParser(config.Logger, config.ContainerAtRules)
	collector := rules.NewCollector(rules.NewFilter(used))

	for _, file := range files {
		parsed, err := parseStylesheet(parser, file)
		if err != nil {
			log.Warn("Skipping stylesheet", zap.String("file", file), zap.Error(err))
			result.Errors = append(result.Errors, err)
			result.FilesSkipped++
			continue
		}
		result.FilesScanned++
		result.RulesSeen += len(parsed)
		collector.AddAll(parsed)
	}

	result.RulesRetained = collector.Count(rules.OutcomeRetained)
	result.RulesDropped = collector.Count(rules.OutcomeDropped)
	result.RulesEmpty = collector.Count(rules.OutcomeEmpty)
	result.DuplicatesRemoved = collector.Count(rules.OutcomeDuplicate)

	// 4. Sort and write
	sorted := rules.Sort(collector.Retained())
	for _, r := range sorted {
		result.ByTag[r.Tag]++
	}

	if err := rules.WriteFile(config.Output, sorted); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	log.Debug("Wrote pruned stylesheet",
		zap.String("output", config.Output),
		zap.Int("rules", len(sorted)))

	return result, nil
}

// parseStylesheet reads and parses one CSS file
func parseStylesheet(parser *rules.Parser, path string) ([]*rules.Rule, error) {
	// #nosec G304 - path comes from directory discovery
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, OpRead, err)
	}
	if !utf8.Valid(content) {
		return nil, fileError(path, OpDecode, ErrInvalidUTF8)
	}

	parsed, err := parser.Parse(content, path)
	if err != nil {
		return nil, fileError(path, OpParse, err)
	}
	return parsed, nil
}

// Run collects classes from HTML and prunes the stylesheets against them.
// The class list is written to collect.Output first and read back from
// prune.ClassesFile, so both must name the same file.
func Run(collect CollectConfig, prune Config) (*CollectResult, *PruneResult, error) {
	collected, err := CollectClasses(collect)
	if err != nil {
		return nil, nil, fmt.Errorf("collect: %w", err)
	}

	pruned, err := Prune(prune)
	if err != nil {
		return collected, nil, fmt.Errorf("prune: %w", err)
	}

	return collected, pruned, nil
}
