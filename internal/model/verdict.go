package model

import "strings"

// Verdict is the four-way answer to a DCAS checklist rule.
type Verdict string

const (
	VerdictYes           Verdict = "yes"
	VerdictNo            Verdict = "no"
	VerdictMaybe         Verdict = "maybe"
	VerdictNotApplicable Verdict = "not_applicable"

	// VerdictNotEvaluated marks a rule whose answer is absent or
	// unrecognized. Only the legacy dialect produces it; strict dialects
	// reject such answers at parse time.
	VerdictNotEvaluated Verdict = ""
)

// NormalizeVerdict maps raw answer text to a Verdict. The reported ok is
// false when the text is not one of the recognized forms. Older reports
// write "na" for not_applicable; both spellings normalize the same way.
func NormalizeVerdict(raw string) (Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return VerdictYes, true
	case "no":
		return VerdictNo, true
	case "maybe":
		return VerdictMaybe, true
	case "na", "not_applicable":
		return VerdictNotApplicable, true
	default:
		return VerdictNotEvaluated, false
	}
}

// String renders the verdict for checklist output.
func (v Verdict) String() string {
	if v == VerdictNotEvaluated {
		return "not evaluated"
	}
	return string(v)
}
