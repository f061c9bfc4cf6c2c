package rules

import (
	"regexp"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Outcome describes what Collector.Add did with a rule
type Outcome int

const (
	// OutcomeRetained means the rule was appended to the result.
	OutcomeRetained Outcome = iota
	// OutcomeDropped means the filter rejected the rule.
	OutcomeDropped
	// OutcomeDuplicate means an equivalent rule was already retained.
	OutcomeDuplicate
	// OutcomeEmpty means the rule had no serialized text.
	OutcomeEmpty
)

// Normalize collapses whitespace runs to a single space and trims the ends.
// Two rules with the same normalized text are duplicates.
func Normalize(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// Collector accumulates retained rules across stylesheets.
// Deduplication is global: the first occurrence of a normalized text wins.
type Collector struct {
	filter   *Filter
	seen     map[string]struct{}
	retained []Retained
	counts   map[Outcome]int
}

// NewCollector creates a collector backed by filter
func NewCollector(filter *Filter) *Collector {
	return &Collector{
		filter: filter,
		seen:   make(map[string]struct{}),
		counts: make(map[Outcome]int),
	}
}

// Add applies the filter and dedup policy to one top-level rule
func (c *Collector) Add(rule *Rule) Outcome {
	outcome := c.add(rule)
	c.counts[outcome]++
	return outcome
}

func (c *Collector) add(rule *Rule) Outcome {
	if rule == nil || strings.TrimSpace(rule.Text) == "" {
		return OutcomeEmpty
	}

	tag, ok := c.filter.RetainedKind(rule)
	if !ok {
		return OutcomeDropped
	}

	key := Normalize(rule.Text)
	if _, dup := c.seen[key]; dup {
		return OutcomeDuplicate
	}
	c.seen[key] = struct{}{}

	c.retained = append(c.retained, Retained{Tag: tag, Text: strings.TrimSpace(rule.Text)})
	return OutcomeRetained
}

// AddAll adds every rule of a stylesheet in order
func (c *Collector) AddAll(rules []*Rule) {
	for _, r := range rules {
		c.Add(r)
	}
}

// Retained returns the retained rules in collection order
func (c *Collector) Retained() []Retained {
	out := make([]Retained, len(c.retained))
	copy(out, c.retained)
	return out
}

// Count returns how many rules ended with the given outcome
func (c *Collector) Count(o Outcome) int {
	return c.counts[o]
}
