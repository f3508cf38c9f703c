package model

// RuleAnswer is one evaluated item of the DCAS compliance checklist.
type RuleAnswer struct {
	Reference   string   `json:"reference"`             // stable id, unique within a document
	Name        string   `json:"name,omitempty"`        // required by the named-rule (v3) dialect
	Description string   `json:"description,omitempty"` // human-readable rule text
	Verdict     Verdict  `json:"verdict"`
	Comments    []string `json:"comments,omitempty"` // entries may be snippet references

	// Fields carried only by the legacy dialect.
	Section         string `json:"section,omitempty"`
	Item            string `json:"item,omitempty"`
	Order           int    `json:"order,omitempty"`
	ExemptionReason string `json:"exemption_reason,omitempty"`
}

// RequestPolicy selects how the derivation stage builds the requests list.
// The dialects genuinely disagree here, so the policy is fixed at parse
// time and no other version-specific branching leaks past the parser.
type RequestPolicy int

const (
	// RequestsFromComments emits one request line per comment and nothing
	// for comment-less rules. Used by the v2 and v3 YAML dialects.
	RequestsFromComments RequestPolicy = iota

	// RequestsWithDescriptionFallback additionally emits the rule
	// description when a non-passing rule has no comments. Used by the
	// TOML dialect.
	RequestsWithDescriptionFallback

	// RequestsPassThrough keeps the author-supplied requests list and
	// derives checklist lines from the rules instead. Used by the legacy
	// dialect.
	RequestsPassThrough
)

// Metadata carries the opaque pass-through fields of a report.
type Metadata struct {
	Author       string `json:"author"`
	Salutation   string `json:"salutation"`
	Email        string `json:"email"`
	Title        string `json:"title"`
	ManuscriptID string `json:"manuscript_id,omitempty"`
	Praise       string `json:"praise,omitempty"`
}

// ReportDocument is the canonical, dialect-independent form of a parsed
// report. It is built once per render from the report and snippet blobs
// and never mutated afterwards; derivation produces a fresh DerivedView.
type ReportDocument struct {
	SchemaVersion   int
	Metadata        Metadata
	Rules           []RuleAnswer
	Requests        []string // author-supplied; only the legacy dialect fills these
	Recommendations []string
	Tags            []string
	Policy          RequestPolicy
	Snippets        map[string]string // symbolic name -> literal text, read-only
}

// DerivedView is the transient, render-ready projection of a document.
// It has no identity of its own and is rebuilt on every render.
type DerivedView struct {
	Version int
	Metadata
	Requests        []string
	Recommendations []string
	ChecklistItems  []string // legacy dialect: one line per rule, in order
	Tags            []string
}
