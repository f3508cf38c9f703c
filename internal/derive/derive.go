// Package derive computes the render-ready view of a parsed report: the
// auto-generated requests list, resolved recommendations, and (for legacy
// documents) the checklist lines. Derivation is a pure function of the
// document; it performs no I/O and never mutates its input.
package derive

import (
	"fmt"
	"sort"
	"strings"

	"github.com/restud/dcasgen/internal/model"
	"github.com/restud/dcasgen/internal/snippet"
)

// Derive builds the DerivedView for a validated document. The same
// document always yields the same view.
func Derive(doc *model.ReportDocument) *model.DerivedView {
	view := &model.DerivedView{
		Version:  doc.SchemaVersion,
		Metadata: doc.Metadata,
		Tags:     append([]string(nil), doc.Tags...),
	}
	for _, rec := range doc.Recommendations {
		view.Recommendations = append(view.Recommendations, snippet.Resolve(rec, doc.Snippets))
	}

	switch doc.Policy {
	case model.RequestsPassThrough:
		for _, req := range doc.Requests {
			view.Requests = append(view.Requests, snippet.Resolve(req, doc.Snippets))
		}
		view.ChecklistItems = checklistItems(doc.Rules)
	default:
		view.Requests = requests(doc)
	}
	return view
}

// requests extracts one line per outstanding issue from the rules, in
// document order. Rules answered "yes" contribute nothing, and an
// exempted (not_applicable) rule without an explanation contributes
// nothing either. Author-supplied requests (the TOML dialect carries
// them alongside the rules) come first, ahead of the rule-derived lines.
func requests(doc *model.ReportDocument) []string {
	fallback := doc.Policy == model.RequestsWithDescriptionFallback

	// resolveLine expands a snippet reference into prose. The TOML
	// dialect additionally collapses whitespace after expansion so a
	// multi-line snippet value still renders as one request line.
	resolveLine := func(text string) string {
		text = snippet.Resolve(text, doc.Snippets)
		if fallback {
			text = strings.Join(strings.Fields(text), " ")
		}
		return text
	}

	var out []string
	for _, req := range doc.Requests {
		out = append(out, snippet.Resolve(req, doc.Snippets))
	}
	for _, rule := range doc.Rules {
		if rule.Verdict == model.VerdictYes {
			continue
		}
		if rule.Verdict == model.VerdictNotApplicable && len(rule.Comments) == 0 {
			continue
		}
		if len(rule.Comments) == 0 {
			// Only the TOML dialect treats a comment-less non-passing
			// rule as an issue in its own right.
			if fallback && rule.Description != "" {
				out = append(out, requestLine(resolveLine(rule.Description), rule.Reference))
			}
			continue
		}
		for _, comment := range rule.Comments {
			out = append(out, requestLine(resolveLine(comment), rule.Reference))
		}
	}
	return out
}

// requestLine appends the parenthetical rule reference readers use to
// locate the originating checklist item.
func requestLine(text, reference string) string {
	return fmt.Sprintf("%s (%s)", text, reference)
}

// checklistItems renders the legacy per-rule status lines, ordered by the
// explicit order field. The sort is stable so equal orders keep their
// input sequence.
func checklistItems(rules []model.RuleAnswer) []string {
	ordered := append([]model.RuleAnswer(nil), rules...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	items := make([]string, 0, len(ordered))
	for _, rule := range ordered {
		line := fmt.Sprintf("%s - %s: %s", rule.Section, rule.Item, rule.Verdict)
		if rule.ExemptionReason != "" {
			line += fmt.Sprintf(" (Exempt: %s)", rule.ExemptionReason)
		}
		items = append(items, line)
	}
	return items
}
