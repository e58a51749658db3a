// Package hints implements the static, process-wide HintRegistry: a
// tag-definition document loaded once at startup, mapping each hint tag to
// a severity and a rendered message template.
package hints

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

//go:embed defaults.toml
var defaultTagDocument string

// tagDefinition is the raw, as-configured shape of one tag entry.
type tagDefinition struct {
	Severity string `toml:"severity"`
	Text     string `toml:"text"`
}

// tagDocument is the top-level shape of a tag-definition document.
type tagDocument struct {
	Tags map[string]tagDefinition `toml:"tags"`
}

// compiledTag is a tagDefinition with its severity parsed and its message
// template pre-compiled.
type compiledTag struct {
	severity entities.Severity
	tmpl     *template.Template
}

// Registry implements usecases.HintRegistry. It is populated once at
// construction and never mutated afterward, so it needs no synchronization
// for concurrent reads.
type Registry struct {
	tags map[string]compiledTag
}

var _ usecases.HintRegistry = (*Registry)(nil)

// NewRegistry loads the built-in tag-definition document.
func NewRegistry() (*Registry, error) {
	return NewRegistryFromDocument(defaultTagDocument)
}

// NewRegistryFromDocument loads a tag-definition document supplied by the
// caller, overriding the built-in defaults entirely.
func NewRegistryFromDocument(document string) (*Registry, error) {
	var parsed tagDocument
	if _, err := toml.Decode(document, &parsed); err != nil {
		return nil, fmt.Errorf("decode tag document: %w", err)
	}

	tags := make(map[string]compiledTag, len(parsed.Tags))
	for name, def := range parsed.Tags {
		severity, ok := parseSeverity(def.Severity)
		if !ok {
			return nil, fmt.Errorf("tag %s: unknown severity %q", name, def.Severity)
		}
		tmpl, err := template.New(name).Parse(def.Text)
		if err != nil {
			return nil, fmt.Errorf("tag %s: parse message template: %w", name, err)
		}
		tags[name] = compiledTag{severity: severity, tmpl: tmpl}
	}

	return &Registry{tags: tags}, nil
}

// Severity returns the severity registered for tag.
func (r *Registry) Severity(tag string) (entities.Severity, bool) {
	t, ok := r.tags[tag]
	if !ok {
		return "", false
	}
	return t.severity, true
}

// Render executes tag's message template against variables.
func (r *Registry) Render(tag string, variables map[string]string) (string, error) {
	t, ok := r.tags[tag]
	if !ok {
		return "", fmt.Errorf("%w: %s", entities.ErrUnknownHintTag, tag)
	}

	var buf strings.Builder
	if err := t.tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("render tag %s: %w", tag, err)
	}
	return buf.String(), nil
}

func parseSeverity(s string) (entities.Severity, bool) {
	switch strings.ToLower(s) {
	case "info":
		return entities.SeverityInfo, true
	case "warning":
		return entities.SeverityWarning, true
	case "error":
		return entities.SeverityError, true
	default:
		return "", false
	}
}
