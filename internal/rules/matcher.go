package rules

import (
	"regexp"
	"strings"
)

// classPattern builds a regex that finds one used class in a selector
type classPattern struct {
	name  string
	build func(quoted string) string
}

// classPatterns are checked in order for every used class.
// This is text matching, not selector parsing: combinators, pseudo-classes
// and string literals are not understood.
var classPatterns = []classPattern{
	// .foo, .foo-bar, .foo:hover; the boundary rejects .foobar
	{
		name: "class selector",
		build: func(c string) string {
			return `\.` + c + `\b`
		},
	},
	// [class="foo"], [class~="foo"], [class*='foo'], [class|=foo]
	{
		name: "class attribute",
		build: func(c string) string {
			return `\[\s*class\s*[~*^$|]?=\s*(?:"` + c + `"|'` + c + `'|` + c + `[\s\]])`
		},
	},
	// [data-state="foo"]: any attribute whose value equals the class name.
	// Known to produce false positives for unrelated attributes.
	{
		name: "generic attribute value",
		build: func(c string) string {
			return `\[.*="` + c + `"\]`
		},
	},
}

// compiledClass holds the compiled patterns for one used class
type compiledClass struct {
	name     string
	patterns []*regexp.Regexp
}

// Matcher decides whether a selector references a used class.
// Patterns are compiled once per class when the matcher is built.
type Matcher struct {
	classes []compiledClass
}

// NewMatcher compiles the pattern table for every class in used
func NewMatcher(used ClassSet) *Matcher {
	names := used.Sorted()
	m := &Matcher{classes: make([]compiledClass, 0, len(names))}
	for _, name := range names {
		quoted := regexp.QuoteMeta(name)
		cc := compiledClass{name: name, patterns: make([]*regexp.Regexp, len(classPatterns))}
		for i, p := range classPatterns {
			cc.patterns[i] = regexp.MustCompile(p.build(quoted))
		}
		m.classes = append(m.classes, cc)
	}
	return m
}

// Match reports whether selector references any used class
func (m *Matcher) Match(selector string) bool {
	_, _, ok := m.MatchingPattern(selector)
	return ok
}

// MatchingPattern returns the first class and pattern name that matched selector
func (m *Matcher) MatchingPattern(selector string) (class string, pattern string, ok bool) {
	if selector == "" || len(m.classes) == 0 {
		return "", "", false
	}

	for _, cc := range m.classes {
		// Every pattern needs the class name literally
		if !strings.Contains(selector, cc.name) {
			continue
		}
		for i, re := range cc.patterns {
			if re.MatchString(selector) {
				return cc.name, classPatterns[i].name, true
			}
		}
	}

	return "", "", false
}

// Matches reports whether selector references any class in used.
// Callers matching many selectors should build a Matcher once instead.
func Matches(selector string, used ClassSet) bool {
	if selector == "" || used.Len() == 0 {
		return false
	}
	return NewMatcher(used).Match(selector)
}
