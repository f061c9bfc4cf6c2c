package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// DefaultContainerAtRules lists at-rules whose blocks hold nested rules.
// Names are matched without the leading @ and without vendor prefixes.
var DefaultContainerAtRules = []string{
	"media",
	"supports",
	"document",
	"container",
	"layer",
	"scope",
	"starting-style",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser turns stylesheet text into a tree of rules
type Parser struct {
	log        *zap.Logger
	containers map[string]struct{}
}

// NewParser creates a parser. A nil logger disables logging, an empty
// container list falls back to DefaultContainerAtRules.
func NewParser(log *zap.Logger, containerAtRules []string) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	if len(containerAtRules) == 0 {
		containerAtRules = DefaultContainerAtRules
	}

	containers := make(map[string]struct{}, len(containerAtRules))
	for _, name := range containerAtRules {
		containers[atRuleBaseName(name)] = struct{}{}
	}

	return &Parser{log: log.Named("css-parser"), containers: containers}
}

// Parse parses stylesheet content into top-level rules.
// The source parameter only identifies the stylesheet in log messages.
func (p *Parser) Parse(content []byte, source string) ([]*Rule, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	p.log.Debug("Parsing CSS", zap.String("source", source), zap.Int("bytes", len(content)))

	cp := css.NewParser(parse.NewInputBytes(content), false)
	body, err := p.parseBlock(cp, content, source)
	if err != nil {
		return nil, err
	}

	var result []*Rule
	for _, item := range body {
		switch {
		case item.rule != nil:
			result = append(result, item.rule)
		case item.decl != nil:
			p.log.Debug("Ignoring declaration outside of a block",
				zap.String("source", source), zap.String("property", item.decl.Property))
		case item.raw != "":
			p.log.Debug("Ignoring stray tokens", zap.String("source", source), zap.String("tokens", item.raw))
		}
	}

	return result, nil
}

// parseBlock reads grammar items until the end of the current block or input.
// Rule text is cut from src between the end of the previous item and the
// parser offset after the rule.
func (p *Parser) parseBlock(cp *css.Parser, src []byte, source string) ([]bodyItem, error) {
	var items []bodyItem
	var selectors []string
	start := cp.Offset()

	for {
		gt, _, data := cp.Next()

		switch gt {
		case css.ErrorGrammar:
			if !cp.HasParseError() {
				if err := cp.Err(); err != nil && !errors.Is(err, io.EOF) {
					return items, fmt.Errorf("parse %s: %w", source, err)
				}
				return items, nil
			}
			// Recoverable: the parser has already skipped the offending tokens
			p.log.Debug("Skipping malformed CSS", zap.String("source", source), zap.Error(cp.Err()))
			selectors = nil

		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			return items, nil

		case css.CommentGrammar:
			items = append(items, bodyItem{rule: newComment(string(data))})

		case css.AtRuleGrammar:
			// Statement at-rule: @import url(a.css);
			items = append(items, bodyItem{rule: &Rule{
				Kind:      KindAtRule,
				Name:      string(data),
				Prelude:   joinTokens(cp.Values()),
				Text:      statementText(span(src, start, cp.Offset())),
				statement: true,
			}})

		case css.QualifiedRuleGrammar:
			// The rest of the selector list follows, keep start on its first part
			selectors = append(selectors, splitSelectorList(cp.Values())...)
			continue

		case css.BeginRulesetGrammar:
			selectors = append(selectors, splitSelectorList(cp.Values())...)
			selector := joinSelectors(selectors)
			selectors = nil

			body, err := p.parseBlock(cp, src, source)
			if err != nil {
				return items, err
			}
			text := spanText(span(src, start, cp.Offset()))
			items = append(items, bodyItem{rule: p.styleRule(selector, body, text, source)})

		case css.BeginAtRuleGrammar:
			name := string(data)
			prelude := joinTokens(cp.Values())

			body, err := p.parseBlock(cp, src, source)
			if err != nil {
				return items, err
			}
			text := spanText(span(src, start, cp.Offset()))
			items = append(items, bodyItem{rule: p.atRule(name, prelude, body, text, source)})

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			decl := Declaration{
				Property: string(data),
				Value:    strings.TrimSpace(joinTokens(cp.Values())),
			}
			if decl.Value != "" {
				items = append(items, bodyItem{decl: &decl})
			} else {
				p.log.Debug("Dropping declaration without value",
					zap.String("source", source), zap.String("property", decl.Property))
			}

		case css.TokenGrammar:
			// Content the grammar does not understand, kept verbatim
			if len(items) > 0 && items[len(items)-1].raw != "" {
				items[len(items)-1].raw += string(data)
			} else if len(bytes.TrimSpace(data)) > 0 {
				items = append(items, bodyItem{raw: string(data)})
			}
		}

		start = cp.Offset()
	}
}

func newComment(text string) *Rule {
	return &Rule{Kind: KindComment, Text: strings.TrimSpace(text)}
}

// styleRule builds a style rule from its selector and block content.
// text is the rule as written in the stylesheet.
func (p *Parser) styleRule(selector string, body []bodyItem, text, source string) *Rule {
	r := &Rule{Kind: KindStyle, Selector: selector}
	r.setBody(body)
	if selector != "" && hasContent(r.body) {
		r.Text = text
	}

	if r.Text == "" {
		p.log.Debug("Dropping empty rule", zap.String("source", source), zap.String("selector", selector))
	}
	return r
}

// atRule builds a block at-rule, classifying it as container or other
func (p *Parser) atRule(name, prelude string, body []bodyItem, text, source string) *Rule {
	r := &Rule{Kind: KindAtRule, Name: name, Prelude: prelude}

	if p.isContainer(name) {
		r.Kind = KindContainer
		body = p.expandRaw(body, source)
	}
	r.setBody(body)
	if name != "" && hasContent(r.body) {
		r.Text = text
	}

	if r.Text == "" {
		p.log.Debug("Dropping empty at-rule", zap.String("source", source), zap.String("rule", name))
	}
	return r
}

// expandRaw re-parses raw token runs inside a container as nested rules.
// The grammar only emits raw tokens for blocks of at-rules it does not know.
func (p *Parser) expandRaw(body []bodyItem, source string) []bodyItem {
	expanded := make([]bodyItem, 0, len(body))
	for _, item := range body {
		if item.raw == "" {
			expanded = append(expanded, item)
			continue
		}

		nested, err := p.Parse([]byte(item.raw), source)
		if err != nil || len(nested) == 0 {
			expanded = append(expanded, item)
			continue
		}
		for _, r := range nested {
			expanded = append(expanded, bodyItem{rule: r})
		}
	}
	return expanded
}

// isContainer reports whether an at-keyword names a container at-rule
func (p *Parser) isContainer(name string) bool {
	_, ok := p.containers[atRuleBaseName(name)]
	return ok
}

// atRuleBaseName maps "@-moz-document" and "document" to "document"
func atRuleBaseName(name string) string {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "@"))
	if strings.HasPrefix(name, "-") {
		if idx := strings.Index(name[1:], "-"); idx != -1 {
			name = name[idx+2:]
		}
	}
	return name
}

// setBody stores block content and exposes declarations and children.
// Children of a container include rules without content, so that an empty
// rule naming a used class still keeps its container.
func (r *Rule) setBody(body []bodyItem) {
	r.body = body
	for _, item := range body {
		switch {
		case item.decl != nil:
			r.Declarations = append(r.Declarations, *item.decl)
		case item.rule != nil && r.Kind == KindContainer:
			r.Children = append(r.Children, item.rule)
		}
	}
}

// hasContent reports whether a block holds a declaration, a nested rule
// with content, or raw tokens. Comments alone do not count.
func hasContent(body []bodyItem) bool {
	for _, item := range body {
		switch {
		case item.decl != nil:
			return true
		case item.rule != nil && item.rule.Kind != KindComment && item.rule.Text != "":
			return true
		case strings.TrimSpace(item.raw) != "":
			return true
		}
	}
	return false
}

// span returns src[start:end], clamped to the bounds of src
func span(src []byte, start, end int) []byte {
	end = min(max(end, 0), len(src))
	start = min(max(start, 0), end)
	return src[start:end]
}

// spanText trims the whitespace and comments that precede a rule.
// Comments inside blocks are not emitted as grammar items, so they end up
// at the front of the next rule's span.
func spanText(b []byte) string {
	for {
		b = bytes.TrimSpace(b)
		if !bytes.HasPrefix(b, []byte("/*")) {
			return string(b)
		}
		end := bytes.Index(b[2:], []byte("*/"))
		if end == -1 {
			return string(b)
		}
		b = b[end+4:]
	}
}

// statementText returns the text of a block-less at-rule. A statement cut
// short by the closing brace of its parent block loses that brace and gets
// a terminating semicolon.
func statementText(b []byte) string {
	text := spanText(b)
	if strings.HasSuffix(text, "}") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "}"))
	}
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	return text
}

// joinTokens concatenates token data, collapsing whitespace to single spaces
func joinTokens(tokens []css.Token) string {
	var sb strings.Builder
	pendingSpace := false

	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken || t.TokenType == css.CommentToken {
			pendingSpace = sb.Len() > 0
			continue
		}
		if pendingSpace {
			sb.WriteByte(' ')
			pendingSpace = false
		}
		sb.Write(t.Data)
	}

	return sb.String()
}

// splitSelectorList cuts selector tokens at top-level commas.
// Commas inside :is(), :not() or attribute brackets do not separate selectors.
func splitSelectorList(tokens []css.Token) []string {
	var parts []string
	var current []css.Token
	depth := 0

	for _, t := range tokens {
		switch t.TokenType {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				parts = append(parts, joinTokens(current))
				current = current[:0]
				continue
			}
		}
		current = append(current, t)
	}

	return append(parts, joinTokens(current))
}

// joinSelectors joins the parts of a selector list
func joinSelectors(parts []string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
