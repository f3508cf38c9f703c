package model

import (
	"os"
	"path/filepath"
)

// Config carries CLI-level settings. The rendering core takes all of its
// inputs as arguments and never reads configuration itself.
type Config struct {
	// TemplatesDir is where response templates live.
	TemplatesDir string `yaml:"templates_dir" mapstructure:"templates_dir"`

	// DefaultTemplate is the template used when --template is not given.
	DefaultTemplate string `yaml:"default_template" mapstructure:"default_template"`

	// SnippetsPath points at the snippet/tag library file.
	SnippetsPath string `yaml:"snippets_path" mapstructure:"snippets_path"`

	// TemplatePattern is the doublestar glob used to list templates.
	TemplatePattern string `yaml:"template_pattern" mapstructure:"template_pattern"`
}

// DefaultConfig returns the built-in defaults. Paths are rooted in the
// user's home directory when it can be resolved.
func DefaultConfig() *Config {
	base := ".dcasgen"
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".dcasgen")
	}
	return &Config{
		TemplatesDir:    filepath.Join(base, "templates"),
		DefaultTemplate: "response.tmpl",
		SnippetsPath:    filepath.Join(base, "snippets.yaml"),
		TemplatePattern: "**/*.tmpl",
	}
}
