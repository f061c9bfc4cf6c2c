package rules

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
)

// firstClassToken finds the class used as the sort key of a style rule
var firstClassToken = regexp.MustCompile(`\.([a-zA-Z_][\w-]*)`)

// tagRank orders tags in the output: comments, at-rules, style rules
var tagRank = map[Tag]int{
	TagComment: 0,
	TagAtRule:  1,
	TagStyle:   2,
}

// sortKey returns the secondary key of a retained rule
func sortKey(r Retained) string {
	switch r.Tag {
	case TagComment:
		return r.Text
	case TagAtRule:
		return strings.ToLower(r.Text)
	default:
		m := firstClassToken.FindStringSubmatch(r.Text)
		if m == nil {
			return ""
		}
		return strings.ToLower(m[1])
	}
}

// Sort returns the rules in deterministic output order.
// The sort is stable, so ties keep their collection order.
func Sort(rules []Retained) []Retained {
	sorted := make([]Retained, len(rules))
	copy(sorted, rules)

	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := tagRank[sorted[i].Tag], tagRank[sorted[j].Tag]
		if ri != rj {
			return ri < rj
		}
		return sortKey(sorted[i]) < sortKey(sorted[j])
	})

	return sorted
}

// Write serializes rules in the given order, each followed by a blank line
func Write(w io.Writer, rules []Retained) error {
	bw := bufio.NewWriter(w)
	for _, r := range rules {
		if _, err := bw.WriteString(r.Text + "\n\n"); err != nil {
			return fmt.Errorf("write rule: %w", err)
		}
	}
	return bw.Flush()
}

// WriteFile replaces path with the serialized rules
func WriteFile(path string, rules []Retained) (err error) {
	// #nosec G304 - path comes from trusted configuration
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	return Write(f, rules)
}
