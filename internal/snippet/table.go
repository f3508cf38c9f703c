package snippet

import (
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Table maps symbolic snippet names to literal replacement text. Tables
// are read-only once loaded; resolution never modifies them.
type Table map[string]string

// Resolve expands a symbolic reference through the table. Lookup is exact
// match only: anything that is not a key passes through unchanged, so
// resolving already-literal text is a no-op and the operation is
// idempotent. A miss is not an error.
func Resolve(text string, table Table) string {
	if replacement, ok := table[text]; ok {
		return replacement
	}
	return text
}

// LoadYAML reads a snippet library in YAML form. Accepted shapes are a
// document with a top-level "tags" or "snippets" mapping, or a bare
// mapping of names to strings. Non-string values are skipped. Empty input
// yields an empty table.
func LoadYAML(data []byte) (Table, error) {
	if len(data) == 0 {
		return Table{}, nil
	}
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snippet library: %w", err)
	}
	for _, key := range []string{"snippets", "tags"} {
		if nested, ok := doc[key].(map[string]interface{}); ok {
			return fromMap(nested), nil
		}
	}
	return fromMap(doc), nil
}

// LoadTOML reads a snippet library in TOML form with a [snippets] table.
// A missing table yields an empty Table rather than an error.
func LoadTOML(data []byte) (Table, error) {
	if len(data) == 0 {
		return Table{}, nil
	}
	var doc struct {
		Snippets map[string]string `toml:"snippets"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snippet library: %w", err)
	}
	table := Table{}
	for name, text := range doc.Snippets {
		table[name] = text
	}
	return table, nil
}

func fromMap(m map[string]interface{}) Table {
	table := Table{}
	for name, value := range m {
		if text, ok := value.(string); ok {
			table[name] = text
		}
	}
	return table
}
