package rules

import (
	"regexp"
	"sort"
	"strings"
)

// classListSeparator splits a class list on whitespace and commas
var classListSeparator = regexp.MustCompile(`[\s,]+`)

// ClassSet is the set of class names referenced by markup.
// It is built once per run and never mutated afterwards.
type ClassSet struct {
	names map[string]struct{}
}

// NewClassSet builds a set from the given names, ignoring empty strings
func NewClassSet(names ...string) ClassSet {
	set := ClassSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		if name != "" {
			set.names[name] = struct{}{}
		}
	}
	return set
}

// ParseClassList reads a used-classes list.
// Tokens are separated by whitespace or commas; leading dots are stripped.
func ParseClassList(content string) ClassSet {
	var names []string
	for _, token := range classListSeparator.Split(content, -1) {
		name := strings.TrimLeft(strings.TrimSpace(token), ".")
		if name != "" {
			names = append(names, name)
		}
	}
	return NewClassSet(names...)
}

// Has reports whether name is in the set
func (s ClassSet) Has(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of classes
func (s ClassSet) Len() int {
	return len(s.names)
}

// Sorted returns the class names in byte-lexicographic order
func (s ClassSet) Sorted() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
