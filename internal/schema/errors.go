package schema

import "fmt"

// SchemaError reports a document that does not conform to the dialect
// implied by its declared version. Rule names the offending rule when one
// can be identified, so authors can find the entry to fix.
type SchemaError struct {
	Field string // field that failed validation
	Rule  string // reference of the offending rule, if known
	Msg   string
}

func (e *SchemaError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("schema: rule %q: %s: %s", e.Rule, e.Field, e.Msg)
	}
	if e.Field != "" {
		return fmt.Sprintf("schema: %s: %s", e.Field, e.Msg)
	}
	return "schema: " + e.Msg
}
