// Package status classifies a parsed report for at-a-glance display, the
// signal shown next to the report name in shells and listings.
package status

import "github.com/restud/dcasgen/internal/model"

// Status is the coarse health of a report.
type Status string

const (
	// StatusGood means every rule is answered and none with "no".
	StatusGood Status = "good"
	// StatusIssues means at least one rule is answered "no".
	StatusIssues Status = "issues"
	// StatusUnknown means the report predates the strict dialects or has
	// no rules to judge.
	StatusUnknown Status = "unknown"
)

// Classify inspects a parsed document. "maybe" and "not_applicable"
// answers do not count as issues; only an explicit "no" does.
func Classify(doc *model.ReportDocument) Status {
	if doc == nil || doc.SchemaVersion < 2 || len(doc.Rules) == 0 {
		return StatusUnknown
	}
	for _, rule := range doc.Rules {
		if rule.Verdict == model.VerdictNo {
			return StatusIssues
		}
	}
	return StatusGood
}
