// Package validation holds the user field rules as data and evaluates them.
// The API enforces them authoritatively; the client evaluates the same
// document (minus server-only rules) for early feedback.
package validation

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var embeddedRules []byte

// Messages maps a locale (pt_BR, en) to a text.
type Messages map[string]string

// Rule is one check on a field.
type Rule struct {
	Name       string   `yaml:"name" json:"name"`
	Tag        string   `yaml:"tag" json:"tag,omitempty"`
	ServerOnly bool     `yaml:"server_only" json:"server_only,omitempty"`
	Message    Messages `yaml:"message" json:"message"`
}

// Field is an input field and its rules in evaluation order.
type Field struct {
	Name  string   `yaml:"name" json:"name"`
	Label Messages `yaml:"label" json:"label"`
	Trim  bool     `yaml:"trim" json:"trim,omitempty"`
	Rules []Rule   `yaml:"rules" json:"rules"`
}

// Schema is the whole rule document.
type Schema struct {
	DefaultLocale string              `yaml:"default_locale" json:"default_locale"`
	Fields        []Field             `yaml:"fields" json:"fields"`
	Texts         map[string]Messages `yaml:"texts" json:"texts"`
}

// DefaultSchema parses the embedded rule document.
func DefaultSchema() (*Schema, error) {
	return ParseSchema(embeddedRules)
}

// ParseSchema decodes a YAML rule document and checks its shape.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse rule schema: %w", err)
	}
	if s.DefaultLocale == "" {
		return nil, fmt.Errorf("rule schema: default_locale is required")
	}
	if len(s.Fields) == 0 {
		return nil, fmt.Errorf("rule schema: no fields")
	}

	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return nil, fmt.Errorf("rule schema: field without name")
		}
		if seen[f.Name] {
			return nil, fmt.Errorf("rule schema: duplicate field %q", f.Name)
		}
		seen[f.Name] = true

		for _, r := range f.Rules {
			if r.Tag == "" && !r.ServerOnly {
				return nil, fmt.Errorf("rule schema: %s.%s has no tag and is not server_only", f.Name, r.Name)
			}
			if len(r.Message) == 0 {
				return nil, fmt.Errorf("rule schema: %s.%s has no message", f.Name, r.Name)
			}
		}
	}
	return &s, nil
}

// Field looks a field up by name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldNames returns the field names in evaluation order.
func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// pick returns the text for locale, falling back to the default locale and
// then to any translation present.
func (m Messages) pick(locale, fallback string) string {
	if t, ok := m[locale]; ok {
		return t
	}
	if t, ok := m[fallback]; ok {
		return t
	}
	for _, t := range m {
		return t
	}
	return ""
}
