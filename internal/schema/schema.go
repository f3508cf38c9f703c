// Package schema parses the versioned report dialects into the canonical
// document form. All version-specific branching lives here: callers get a
// normalized model.ReportDocument (plus its snippet table) or a SchemaError
// naming the field and rule that failed, never a half-validated document.
package schema

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/restud/dcasgen/internal/model"
	"github.com/restud/dcasgen/internal/snippet"
)

// Parse decodes a YAML report and its snippet library into the canonical
// form, dispatching on the declared version field: absent or <2 selects
// the lenient legacy dialect, 2 the strict dialect, 3 the strict dialect
// with required rule names. The snippet blob may be empty.
func Parse(reportText, snippetText []byte) (*model.ReportDocument, error) {
	var raw rawReport
	if err := yaml.Unmarshal(reportText, &raw); err != nil {
		return nil, &SchemaError{Field: "report", Msg: err.Error()}
	}
	table, err := snippet.LoadYAML(snippetText)
	if err != nil {
		return nil, &SchemaError{Field: "snippets", Msg: err.Error()}
	}
	if raw.Version >= 2 {
		return parseStrict(&raw, table)
	}
	return parseLegacy(&raw, table)
}

// rawReport is the union of every YAML dialect's fields; the per-dialect
// parse functions decide which ones are required.
type rawReport struct {
	Version         int       `yaml:"version"`
	Author          string    `yaml:"author"`
	Salutation      string    `yaml:"salutation"`
	Email           string    `yaml:"email"`
	Title           string    `yaml:"title"`
	ManuscriptID    string    `yaml:"manuscript_id"`
	Praise          string    `yaml:"praise"`
	Rules           []rawRule `yaml:"DCAS_rules"`
	Requests        entryList `yaml:"requests"`
	Recommendations entryList `yaml:"recommendations"`
	Tags            []string  `yaml:"tags"`
}

type rawRule struct {
	Name            string     `yaml:"name"`
	Description     string     `yaml:"description"`
	Answer          *string    `yaml:"answer"`
	Comment         stringList `yaml:"comment"`
	DCASReference   string     `yaml:"dcas_reference"`
	Section         string     `yaml:"section"`
	Item            string     `yaml:"item"`
	Order           int        `yaml:"order"`
	ExemptionReason string     `yaml:"exemption_reason"`
}

func parseStrict(raw *rawReport, table snippet.Table) (*model.ReportDocument, error) {
	named := raw.Version >= 3
	doc := &model.ReportDocument{
		SchemaVersion:   raw.Version,
		Metadata:        metadataFrom(raw),
		Recommendations: raw.Recommendations,
		Tags:            raw.Tags,
		Policy:          model.RequestsFromComments,
		Snippets:        table,
	}

	seen := make(map[string]struct{}, len(raw.Rules))
	for i, rule := range raw.Rules {
		ref := strings.TrimSpace(rule.DCASReference)
		if ref == "" {
			return nil, &SchemaError{
				Field: "dcas_reference",
				Rule:  fmt.Sprintf("DCAS_rules[%d]", i),
				Msg:   "missing required field",
			}
		}
		if _, dup := seen[ref]; dup {
			return nil, &SchemaError{Field: "dcas_reference", Rule: ref, Msg: "duplicate rule reference"}
		}
		seen[ref] = struct{}{}

		if rule.Description == "" {
			return nil, &SchemaError{Field: "description", Rule: ref, Msg: "missing required field"}
		}
		if named && strings.TrimSpace(rule.Name) == "" {
			return nil, &SchemaError{Field: "name", Rule: ref, Msg: "missing required field"}
		}
		if rule.Answer == nil {
			return nil, &SchemaError{Field: "answer", Rule: ref, Msg: "missing required field"}
		}
		verdict, ok := model.NormalizeVerdict(*rule.Answer)
		if !ok {
			return nil, &SchemaError{
				Field: "answer",
				Rule:  ref,
				Msg:   fmt.Sprintf("unrecognized answer %q", *rule.Answer),
			}
		}

		doc.Rules = append(doc.Rules, model.RuleAnswer{
			Reference:   ref,
			Name:        rule.Name,
			Description: rule.Description,
			Verdict:     verdict,
			Comments:    dropEmpty(rule.Comment),
		})
	}
	return doc, nil
}

// parseLegacy accepts the pre-versioned dialect. It performs no verdict
// validation: unrecognized or missing answers become "not evaluated"
// instead of failing, which old reports in the wild rely on.
func parseLegacy(raw *rawReport, table snippet.Table) (*model.ReportDocument, error) {
	doc := &model.ReportDocument{
		SchemaVersion:   raw.Version,
		Metadata:        metadataFrom(raw),
		Requests:        raw.Requests,
		Recommendations: raw.Recommendations,
		Tags:            raw.Tags,
		Policy:          model.RequestsPassThrough,
		Snippets:        table,
	}

	seen := make(map[string]struct{}, len(raw.Rules))
	for _, rule := range raw.Rules {
		ref := legacyReference(rule.Section, rule.Item)
		if ref != "" {
			if _, dup := seen[ref]; dup {
				return nil, &SchemaError{Field: "section/item", Rule: ref, Msg: "duplicate rule reference"}
			}
			seen[ref] = struct{}{}
		}

		verdict := model.VerdictNotEvaluated
		if rule.Answer != nil {
			if v, ok := model.NormalizeVerdict(*rule.Answer); ok {
				verdict = v
			}
		}

		doc.Rules = append(doc.Rules, model.RuleAnswer{
			Reference:       ref,
			Description:     rule.Description,
			Verdict:         verdict,
			Section:         rule.Section,
			Item:            rule.Item,
			Order:           rule.Order,
			ExemptionReason: rule.ExemptionReason,
		})
	}
	return doc, nil
}

func metadataFrom(raw *rawReport) model.Metadata {
	return model.Metadata{
		Author:       raw.Author,
		Salutation:   raw.Salutation,
		Email:        raw.Email,
		Title:        raw.Title,
		ManuscriptID: raw.ManuscriptID,
		Praise:       raw.Praise,
	}
}

func legacyReference(section, item string) string {
	if section == "" && item == "" {
		return ""
	}
	return section + " - " + item
}

func dropEmpty(items []string) []string {
	out := items[:0:0]
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

// stringList accepts either a single scalar or a sequence of scalars, the
// two shapes the dialects use for rule comments.
type stringList []string

func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = nil
			return nil
		}
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = stringList{v}
		return nil
	case yaml.SequenceNode:
		var v []string
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = stringList(v)
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

// entryList accepts a scalar, a sequence of scalars, or a sequence of
// {text: ...} mappings, and normalizes all of them to plain strings.
type entryList []string

func (s *entryList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = nil
			return nil
		}
		var v string
		if err := node.Decode(&v); err != nil {
			return err
		}
		*s = entryList{v}
		return nil
	case yaml.SequenceNode:
		out := make(entryList, 0, len(node.Content))
		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				var v string
				if err := item.Decode(&v); err != nil {
					return err
				}
				out = append(out, v)
			case yaml.MappingNode:
				var v struct {
					Text string `yaml:"text"`
				}
				if err := item.Decode(&v); err != nil {
					return err
				}
				out = append(out, v.Text)
			default:
				return fmt.Errorf("line %d: expected string or {text: ...} entry", item.Line)
			}
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list", node.Line)
	}
}
