// Package library is the file-facing collaborator around the pure
// rendering core: it reads templates, reports, and snippet libraries from
// disk and hands their contents to the core as byte slices. Loaded files
// are cached with a short TTL since the status-prompt path re-reads the
// same files many times in quick succession.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/restud/dcasgen/internal/cache"
)

const (
	defaultTTL      = 30 * time.Second
	cleanupInterval = 5 * time.Minute
)

// Format identifies the encoding of a report or snippet file.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// FormatForPath picks the format from the file extension. Anything that
// is not .toml is treated as YAML, the historical default.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Loader reads rendering inputs from disk with caching.
type Loader struct {
	templatesDir string
	cache        cache.Cache
}

// NewLoader creates a loader rooted at the given templates directory.
func NewLoader(templatesDir string) *Loader {
	return &Loader{
		templatesDir: templatesDir,
		cache:        cache.NewMemory(defaultTTL, cleanupInterval),
	}
}

// Template returns the body of a named template from the templates
// directory.
func (l *Loader) Template(name string) (string, error) {
	data, err := l.read("template", filepath.Join(l.templatesDir, name))
	if err != nil {
		return "", fmt.Errorf("load template %q: %w", name, err)
	}
	return string(data), nil
}

// Templates lists template files under the templates directory matching
// the doublestar pattern (e.g. "**/*.tmpl"), sorted by name.
func (l *Loader) Templates(pattern string) ([]string, error) {
	names, err := doublestar.Glob(os.DirFS(l.templatesDir), pattern)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Report reads a report file. The caller picks the parse dialect with
// FormatForPath.
func (l *Loader) Report(path string) ([]byte, error) {
	data, err := l.read("report", path)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	return data, nil
}

// Snippets reads the snippet library bytes for the parser. The library is
// optional: an empty path or missing file yields nil, and unresolved
// references pass through as literal text downstream anyway.
func (l *Loader) Snippets(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := l.read("snippets", path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snippets: %w", err)
	}
	return data, nil
}

func (l *Loader) read(kind, path string) ([]byte, error) {
	key := cache.Key(kind, path)
	if data, ok := l.cache.Get(key); ok {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	_ = l.cache.Set(key, data, defaultTTL)
	return data, nil
}
