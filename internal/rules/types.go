package rules

// Kind tags the variant of a parsed rule
type Kind int

// Rule kinds produced by the parser
const (
	KindStyle     Kind = iota // selector { declarations }
	KindComment               // /* ... */
	KindContainer             // @media, @supports, ... holding nested rules
	KindAtRule                // any other at-rule (@font-face, @keyframes, @import)
)

// String returns a readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindStyle:
		return "style"
	case KindComment:
		return "comment"
	case KindContainer:
		return "container"
	case KindAtRule:
		return "at-rule"
	default:
		return "unknown"
	}
}

// Tag is the output category of a retained rule
type Tag string

// Retained rule tags, in output order
const (
	TagComment Tag = "comment"
	TagAtRule  Tag = "at-rule"
	TagStyle   Tag = "style"
)

// Declaration is a single property: value pair
type Declaration struct {
	Property string // "color"
	Value    string // "red !important"
}

// Rule is one node of a parsed stylesheet.
// Children is only populated for KindContainer.
type Rule struct {
	Kind         Kind
	Selector     string        // ".btn, .btn:hover" (KindStyle only)
	Name         string        // "@media" (at-rules only)
	Prelude      string        // "(min-width: 1px)" (at-rules only)
	Declarations []Declaration // Declarations directly inside the block
	Children     []*Rule       // Nested rules (KindContainer only)
	Text         string        // Source text of the rule, "" when its block has no content

	body      []bodyItem // Source-ordered block content
	statement bool       // At-rule without a block (@import ...;)
}

// bodyItem is one entry of a block: a declaration, a nested rule, or raw tokens
type bodyItem struct {
	decl *Declaration
	rule *Rule
	raw  string
}

// Retained is a rule that survived filtering
type Retained struct {
	Tag  Tag
	Text string
}
