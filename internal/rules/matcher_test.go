package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		used     []string
		want     bool
	}{
		{name: "plain class", selector: ".foo", used: []string{"foo"}, want: true},
		{name: "prefix is not a match", selector: ".foobar", used: []string{"foo"}, want: false},
		{name: "hyphenated suffix matches", selector: ".foo-bar", used: []string{"foo"}, want: true},
		{name: "pseudo-class", selector: ".btn:hover", used: []string{"btn"}, want: true},
		{name: "descendant", selector: "nav .menu > li", used: []string{"menu"}, want: true},
		{name: "second selector in list", selector: ".a, .b", used: []string{"b"}, want: true},
		{name: "class attribute includes", selector: `[class~="foo"]`, used: []string{"foo"}, want: true},
		{name: "class attribute substring", selector: `div[class*="foo"]`, used: []string{"foo"}, want: true},
		{name: "class attribute exact single quotes", selector: `[class='foo']`, used: []string{"foo"}, want: true},
		{name: "class attribute unquoted", selector: `[class=foo]`, used: []string{"foo"}, want: true},
		{name: "generic attribute value", selector: `[data-state="open"]`, used: []string{"open"}, want: true},
		{name: "element only", selector: "div p", used: []string{"foo"}, want: false},
		{name: "id selector", selector: "#foo", used: []string{"foo"}, want: false},
		{name: "empty selector", selector: "", used: []string{"foo"}, want: false},
		{name: "empty set", selector: ".foo", used: nil, want: false},
		{name: "case sensitive", selector: ".Foo", used: []string{"foo"}, want: false},
		{name: "regex metacharacters in class", selector: ".w-1\\/2", used: []string{"w-1\\/2"}, want: true},
		{name: "css escapes are not resolved", selector: ".w-1\\/2", used: []string{"w-1/2"}, want: false},
		{name: "escaped colon is not resolved", selector: ".md\\:flex", used: []string{"md:flex"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Matches(tt.selector, NewClassSet(tt.used...))
			require.Equal(t, tt.want, got, "Matches(%q, %v)", tt.selector, tt.used)
		})
	}
}

func TestMatches_EmptySetNeverMatches(t *testing.T) {
	empty := NewClassSet()
	for _, sel := range []string{".foo", "*", `[class~="foo"]`, "body", ".a .b"} {
		assert.False(t, Matches(sel, empty), "selector %q", sel)
	}
}

func TestMatcher_MatchingPattern(t *testing.T) {
	m := NewMatcher(NewClassSet("card", "open"))

	tests := []struct {
		name        string
		selector    string
		wantClass   string
		wantPattern string
	}{
		{name: "class selector", selector: ".card > h2", wantClass: "card", wantPattern: "class selector"},
		{name: "class attribute", selector: `[class~="card"]`, wantClass: "card", wantPattern: "class attribute"},
		// The generic pattern fires for attributes unrelated to classes
		{name: "generic attribute", selector: `details[data-state="open"]`, wantClass: "open", wantPattern: "generic attribute value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, pattern, ok := m.MatchingPattern(tt.selector)
			require.True(t, ok)
			assert.Equal(t, tt.wantClass, class)
			assert.Equal(t, tt.wantPattern, pattern)
		})
	}

	_, _, ok := m.MatchingPattern(".cards")
	assert.False(t, ok)
}

func TestParseClassList(t *testing.T) {
	set := ParseClassList("card\n.hidden, btn--primary\n\n  \t.x  ,,y\n")
	assert.Equal(t, []string{"btn--primary", "card", "hidden", "x", "y"}, set.Sorted())
	assert.True(t, set.Has("hidden"))
	assert.False(t, set.Has(".hidden"))

	assert.Equal(t, 0, ParseClassList("").Len())
	assert.Equal(t, 0, ParseClassList("\n , \n").Len())
}
