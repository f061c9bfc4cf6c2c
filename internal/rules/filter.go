package rules

// Filter decides per rule whether it survives pruning
type Filter struct {
	matcher *Matcher
}

// NewFilter creates a filter for the given used classes
func NewFilter(used ClassSet) *Filter {
	return &Filter{matcher: NewMatcher(used)}
}

// NewFilterWithMatcher creates a filter that shares an existing matcher
func NewFilterWithMatcher(m *Matcher) *Filter {
	return &Filter{matcher: m}
}

// RetainedKind returns the output tag for rule, or false if it is dropped.
//
//   - rules without text are always dropped
//   - style rules survive when their selector references a used class
//   - comments always survive
//   - containers survive as a whole when any descendant style rule matches,
//     including descendants whose own block is empty
//   - other at-rules always survive
func (f *Filter) RetainedKind(rule *Rule) (Tag, bool) {
	if rule == nil || rule.Text == "" {
		return "", false
	}

	switch rule.Kind {
	case KindStyle:
		if f.matcher.Match(rule.Selector) {
			return TagStyle, true
		}
		return "", false
	case KindComment:
		return TagComment, true
	case KindContainer:
		if f.AnyUsedClassInSubtree(rule.Children) {
			return TagAtRule, true
		}
		return "", false
	default:
		return TagAtRule, true
	}
}

// AnyUsedClassInSubtree walks rules depth-first and stops at the first
// style rule whose selector references a used class
func (f *Filter) AnyUsedClassInSubtree(rules []*Rule) bool {
	for _, r := range rules {
		if r.Kind == KindStyle && f.matcher.Match(r.Selector) {
			return true
		}
		if len(r.Children) > 0 && f.AnyUsedClassInSubtree(r.Children) {
			return true
		}
	}
	return false
}

// RetainedKind is a one-off form of Filter.RetainedKind
func RetainedKind(rule *Rule, used ClassSet) (Tag, bool) {
	return NewFilter(used).RetainedKind(rule)
}

// AnyUsedClassInSubtree is a one-off form of Filter.AnyUsedClassInSubtree
func AnyUsedClassInSubtree(rules []*Rule, used ClassSet) bool {
	if len(rules) == 0 {
		return false
	}
	return NewFilter(used).AnyUsedClassInSubtree(rules)
}
