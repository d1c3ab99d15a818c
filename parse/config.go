// Package parse reads parse configurations and converts tabular input into
// nested JSON documents driven by a resolved projection table.
package parse

import (
	"os"
	"sort"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/tabtools/projection"
	"github.com/erraggy/tabtools/taberrors"
)

// Config is a parse configuration document. It carries the JSON Schema
// describing the output documents and the user-supplied projections from
// field names to document pointers. Both are optional: an absent schema
// means no type constraints are known, and an empty projection map relies
// entirely on schema-derived candidates.
type Config struct {
	// Schema is the JSON Schema document for output documents, or nil.
	Schema any `yaml:"schema,omitempty" json:"schema,omitempty"`

	// Projections maps field names to slash-delimited document pointers.
	// These always take precedence over schema-derived candidates.
	Projections map[string]string `yaml:"projections,omitempty" json:"projections,omitempty"`
}

// DecodeConfig deserializes a YAML or JSON parse configuration.
func DecodeConfig(doc []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(doc, &cfg); err != nil {
		return nil, &taberrors.ConfigError{Message: "invalid parse configuration", Cause: err}
	}
	return &cfg, nil
}

// LoadConfig reads and decodes a parse configuration file.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &taberrors.ConfigError{Option: "config", Message: "cannot read configuration file", Cause: err}
	}
	return DecodeConfig(raw)
}

// Overrides returns the configured projections as an override slice in
// sorted field order, so that resolution is deterministic regardless of the
// document's key order.
func (c *Config) Overrides() []projection.Override {
	if len(c.Projections) == 0 {
		return nil
	}
	fields := make([]string, 0, len(c.Projections))
	for field := range c.Projections {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	out := make([]projection.Override, 0, len(fields))
	for _, field := range fields {
		out = append(out, projection.Override{Field: field, Pointer: c.Projections[field]})
	}
	return out
}

// ResolveProjections resolves the projection table for this configuration.
// See projection.Build for error semantics.
func (c *Config) ResolveProjections(opts ...projection.Option) (projection.Table, error) {
	return projection.Build(c.Schema, c.Overrides(), opts...)
}
