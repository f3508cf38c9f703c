// Package render turns a derived view and a plain-text template into the
// final report body. Templates use {name} placeholders plus a small set of
// fixed boilerplate phrases that the grammar and elision passes rewrite.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/restud/dcasgen/internal/model"
)

// RenderError reports a template/data mismatch. Rendering is all or
// nothing: a failed render produces no partially-substituted output.
type RenderError struct {
	Placeholder string
	Reason      string
}

func (e *RenderError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "no matching field in derived view"
	}
	return fmt.Sprintf("render: placeholder {%s}: %s", e.Placeholder, reason)
}

// pluralRule rewrites one boilerplate phrase to its singular form when the
// backing list has exactly one entry. Zero or two-plus entries leave the
// plural phrasing alone.
type pluralRule struct {
	count    func(view *model.DerivedView) int
	plural   string
	singular string
}

var pluralRules = []pluralRule{
	{
		count:    func(view *model.DerivedView) int { return len(view.Requests) },
		plural:   "please make the following changes:",
		singular: "please make the following change:",
	},
	{
		count:    func(view *model.DerivedView) int { return len(view.Recommendations) },
		plural:   "please consider the following recommendations",
		singular: "please consider the following recommendation",
	},
}

// recommendationsSection is the exact template span removed when there are
// no recommendations, heading and placeholder together, so the output does
// not carry an empty section.
const recommendationsSection = "In addition, please consider the following recommendations to ease reproducibility:\n\n{recommendations}\n\n"

// Render substitutes the derived view into the template after applying
// the grammar and elision passes.
func Render(template string, view *model.DerivedView) (string, error) {
	for _, rule := range pluralRules {
		if rule.count(view) == 1 {
			template = strings.ReplaceAll(template, rule.plural, rule.singular)
		}
	}
	if len(view.Recommendations) == 0 {
		template = strings.ReplaceAll(template, recommendationsSection, "")
	}
	return substitute(template, fields(view))
}

// OrderedList renders items as a numbered list: empty input renders as the
// empty string, a single item stays bare, and longer lists number from 1,
// one item per line, preserving input order.
func OrderedList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String()
}

// fields flattens the view into placeholder values, rendering every list
// field through OrderedList first.
func fields(view *model.DerivedView) map[string]string {
	return map[string]string{
		"version":         strconv.Itoa(view.Version),
		"author":          view.Author,
		"salutation":      view.Salutation,
		"email":           view.Email,
		"title":           view.Title,
		"manuscript_id":   view.ManuscriptID,
		"praise":          view.Praise,
		"requests":        OrderedList(view.Requests),
		"recommendations": OrderedList(view.Recommendations),
		"dcas_items":      OrderedList(view.ChecklistItems),
		"tags":            OrderedList(view.Tags),
	}
}

// substitute replaces every {name} placeholder with its value. "{{" and
// "}}" escape literal braces. A placeholder with no value is fatal rather
// than silently blank.
func substitute(template string, values map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); {
		c := template[i]
		if c == '{' {
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", &RenderError{
					Placeholder: strings.TrimSpace(template[i+1:]),
					Reason:      "unterminated placeholder",
				}
			}
			name := template[i+1 : i+end]
			value, ok := values[name]
			if !ok {
				return "", &RenderError{Placeholder: name}
			}
			b.WriteString(value)
			i += end + 1
			continue
		}
		if c == '}' && i+1 < len(template) && template[i+1] == '}' {
			b.WriteByte('}')
			i += 2
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), nil
}
