package schema

import (
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/restud/dcasgen/internal/model"
	"github.com/restud/dcasgen/internal/snippet"
)

// tomlSchemaVersion is assigned to TOML documents that do not declare a
// version of their own; the format never existed before the strict era.
const tomlSchemaVersion = 2

// ParseTOML decodes a TOML report and its snippet library. The TOML
// dialect keeps rule prose under "text", identifies rules by "number",
// and is the one dialect where a non-passing rule without comments still
// contributes its text to the requests list.
func ParseTOML(reportText, snippetText []byte) (*model.ReportDocument, error) {
	var raw rawTOMLReport
	if err := toml.Unmarshal(reportText, &raw); err != nil {
		return nil, &SchemaError{Field: "report", Msg: err.Error()}
	}
	table, err := snippet.LoadTOML(snippetText)
	if err != nil {
		return nil, &SchemaError{Field: "snippets", Msg: err.Error()}
	}

	if raw.Metadata == nil {
		return nil, &SchemaError{Field: "metadata", Msg: "missing required section"}
	}

	// Requests and recommendations written under [root] take precedence
	// over top-level keys; older files nested them there.
	requestsVal := raw.Requests
	recommendationsVal := raw.Recommendations
	if raw.Root != nil {
		if v, ok := raw.Root["requests"]; ok {
			requestsVal = v
		}
		if v, ok := raw.Root["recommendations"]; ok {
			recommendationsVal = v
		}
	}
	requests, err := normalizeEntries("requests", requestsVal)
	if err != nil {
		return nil, err
	}
	recommendations, err := normalizeEntries("recommendations", recommendationsVal)
	if err != nil {
		return nil, err
	}

	version := raw.Version
	if version == 0 {
		version = tomlSchemaVersion
	}
	doc := &model.ReportDocument{
		SchemaVersion: version,
		Metadata: model.Metadata{
			Author:       raw.Metadata["author"],
			Salutation:   raw.Metadata["salutation"],
			Email:        raw.Metadata["email"],
			Title:        raw.Metadata["title"],
			ManuscriptID: raw.Metadata["manuscript_id"],
			Praise:       raw.Metadata["praise"],
		},
		Requests:        requests,
		Recommendations: recommendations,
		Tags:            raw.Tags,
		Policy:          model.RequestsWithDescriptionFallback,
		Snippets:        table,
	}

	seen := make(map[string]struct{}, len(raw.Rules))
	for i, rule := range raw.Rules {
		ref := stringify(rule.Number)
		if ref == "" {
			return nil, &SchemaError{
				Field: "number",
				Rule:  fmt.Sprintf("dcas_rules[%d]", i),
				Msg:   "missing required field",
			}
		}
		if _, dup := seen[ref]; dup {
			return nil, &SchemaError{Field: "number", Rule: ref, Msg: "duplicate rule reference"}
		}
		seen[ref] = struct{}{}

		if rule.Text == "" {
			return nil, &SchemaError{Field: "text", Rule: ref, Msg: "missing required field"}
		}
		verdict, ok := model.NormalizeVerdict(rule.Answer)
		if !ok {
			return nil, &SchemaError{
				Field: "answer",
				Rule:  ref,
				Msg:   fmt.Sprintf("unrecognized answer %q", rule.Answer),
			}
		}

		comments := make([]string, 0, len(rule.Comments))
		for _, c := range rule.Comments {
			if c = flatten(c); c != "" {
				comments = append(comments, c)
			}
		}

		doc.Rules = append(doc.Rules, model.RuleAnswer{
			Reference:   ref,
			Description: flatten(rule.Text),
			Verdict:     verdict,
			Comments:    comments,
		})
	}
	return doc, nil
}

type rawTOMLReport struct {
	Version         int                    `toml:"version"`
	Metadata        map[string]string      `toml:"metadata"`
	Rules           []rawTOMLRule          `toml:"dcas_rules"`
	Root            map[string]interface{} `toml:"root"`
	Requests        interface{}            `toml:"requests"`
	Recommendations interface{}            `toml:"recommendations"`
	Tags            []string               `toml:"tags"`
}

type rawTOMLRule struct {
	Number   interface{} `toml:"number"` // string or integer in the wild
	Text     string      `toml:"text"`
	Answer   string      `toml:"answer"`
	Comments []string    `toml:"comments"`
}

// normalizeEntries accepts a list of strings, a list of {text = ...}
// tables, or a single string, and returns plain strings.
func normalizeEntries(field string, v interface{}) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{val}, nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			switch entry := item.(type) {
			case string:
				out = append(out, entry)
			case map[string]interface{}:
				text, ok := entry["text"].(string)
				if !ok {
					return nil, &SchemaError{Field: field, Msg: "entry table missing string 'text' key"}
				}
				out = append(out, text)
			default:
				return nil, &SchemaError{Field: field, Msg: fmt.Sprintf("unsupported entry type %T", item)}
			}
		}
		return out, nil
	default:
		return nil, &SchemaError{Field: field, Msg: fmt.Sprintf("expected string or list, got %T", v)}
	}
}

// flatten collapses multi-line TOML strings to single-space-separated
// words so request lines stay on one line.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
