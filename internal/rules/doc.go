// Package rules decides which CSS rules survive pruning.
//
// A stylesheet is parsed into a tree of [Rule] values. Each top-level rule is
// passed through a [Filter], which keeps style rules whose selector references
// a used class, keeps comments and non-container at-rules unconditionally, and
// keeps container at-rules (@media, @supports, ...) as a unit when any nested
// style rule matches. A [Collector] deduplicates survivors across stylesheets
// by whitespace-normalized text, and [Sort] orders them for output.
//
// Selector matching is textual. A selector matches when a used class appears
// as a class selector (.foo), inside a class attribute selector
// ([class~="foo"]), or as the value of any attribute selector ([data-x="foo"]).
// The last form is deliberately broad and can produce false positives.
// CSS escapes are not resolved, so ".w-1\/2" only matches a used class
// spelled "w-1\/2". Rules nested inside a style rule (native CSS nesting)
// are kept or dropped together with their parent and are not matched on
// their own.
//
// Retained rules are written as they appear in the source stylesheet.
package rules
