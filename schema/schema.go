// Package schema provides a JSON Schema document model, structural build
// validation, and local $ref indexing for shape inference.
//
// The model is deliberately permissive: it captures the keywords that drive
// shape inference (types, properties, items, composition, references) and
// carries everything else through the Extra map. Boolean schemas (true /
// false) are supported at any position and surface via the Always field.
package schema

import (
	"fmt"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/tabtools/taberrors"
)

// Schema represents a JSON Schema document or subschema.
// Field coverage targets JSON Schema Draft 2020-12 keywords relevant to
// shape inference; unknown keywords are retained in Extra.
type Schema struct {
	// Always is non-nil for boolean schemas: true permits any value,
	// false permits none.
	Always *bool `yaml:"-" json:"-"`

	// JSON Schema Core
	Ref string `yaml:"$ref,omitempty" json:"$ref,omitempty"`

	// Metadata
	Title       string `yaml:"title,omitempty" json:"title,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Default     any    `yaml:"default,omitempty" json:"default,omitempty"`

	// Type validation
	Type   any    `yaml:"type,omitempty" json:"type,omitempty"` // string or []string
	Enum   []any  `yaml:"enum,omitempty" json:"enum,omitempty"`
	Const  any    `yaml:"const,omitempty" json:"const,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// Object validation
	Properties           map[string]*Schema `yaml:"properties,omitempty" json:"properties,omitempty"`
	Required             []string           `yaml:"required,omitempty" json:"required,omitempty"`
	AdditionalProperties *Schema            `yaml:"additionalProperties,omitempty" json:"additionalProperties,omitempty"`

	// Array validation
	Items       *Schema   `yaml:"items,omitempty" json:"items,omitempty"`
	PrefixItems []*Schema `yaml:"prefixItems,omitempty" json:"prefixItems,omitempty"`

	// Schema composition
	AllOf []*Schema `yaml:"allOf,omitempty" json:"allOf,omitempty"`
	AnyOf []*Schema `yaml:"anyOf,omitempty" json:"anyOf,omitempty"`
	OneOf []*Schema `yaml:"oneOf,omitempty" json:"oneOf,omitempty"`
	Not   *Schema   `yaml:"not,omitempty" json:"not,omitempty"`

	// Definitions
	Defs        map[string]*Schema `yaml:"$defs,omitempty" json:"$defs,omitempty"`
	Definitions map[string]*Schema `yaml:"definitions,omitempty" json:"definitions,omitempty"`

	// Extra captures keywords not modeled above (including x- extensions)
	Extra map[string]any `yaml:",inline" json:"-"`
}

// UnmarshalYAML implements custom unmarshaling so boolean schemas decode at
// any position where a subschema is expected.
func (s *Schema) UnmarshalYAML(unmarshal func(any) error) error {
	var b bool
	if err := unmarshal(&b); err == nil {
		s.Always = &b
		return nil
	}
	type plain Schema
	var p plain
	if err := unmarshal(&p); err != nil {
		return err
	}
	*s = Schema(p)
	return nil
}

// Permissive returns the universally-permissive schema, matching any JSON
// value. It is substituted for absent schema documents.
func Permissive() *Schema {
	always := true
	return &Schema{Always: &always}
}

// TypeStrings returns the schema's "type" keyword normalized to a string
// slice: nil when absent, one element for a scalar type, the listed elements
// for a type array. It fails when the keyword holds anything else.
func (s *Schema) TypeStrings() ([]string, error) {
	switch t := s.Type.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{t}, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			name, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("type array element must be a string, got %T", v)
			}
			out = append(out, name)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("type must be a string or array of strings, got %T", t)
	}
}

// Build deserializes and structurally validates a JSON Schema document.
// The input may be YAML or JSON (JSON is a subset of YAML). A failure
// returns a *taberrors.SchemaBuildError.
func Build(doc []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(doc, &s); err != nil {
		return nil, &taberrors.SchemaBuildError{Message: "invalid document", Cause: err}
	}
	if err := validate(&s, "#"); err != nil {
		return nil, err
	}
	return &s, nil
}

// BuildValue builds a schema from an already-decoded document value, as
// found inside a parse configuration. A nil value builds the permissive
// schema.
func BuildValue(doc any) (*Schema, error) {
	if doc == nil {
		return Permissive(), nil
	}
	if s, ok := doc.(*Schema); ok {
		return s, nil
	}
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return nil, &taberrors.SchemaBuildError{Message: "cannot serialize schema document", Cause: err}
	}
	return Build(raw)
}

// validate walks the schema tree checking structural constraints that the
// permissive model cannot express in its field types.
func validate(s *Schema, path string) error {
	if s == nil || s.Always != nil {
		return nil
	}
	types, err := s.TypeStrings()
	if err != nil {
		return &taberrors.SchemaBuildError{Path: path, Cause: err}
	}
	for _, name := range types {
		if !validTypeName(name) {
			return &taberrors.SchemaBuildError{
				Path:    path,
				Message: fmt.Sprintf("unknown type name %q", name),
			}
		}
	}
	for name, child := range s.Properties {
		if err := validate(child, path+"/properties/"+name); err != nil {
			return err
		}
	}
	if err := validate(s.AdditionalProperties, path+"/additionalProperties"); err != nil {
		return err
	}
	if err := validate(s.Items, path+"/items"); err != nil {
		return err
	}
	for i, child := range s.PrefixItems {
		if err := validate(child, fmt.Sprintf("%s/prefixItems/%d", path, i)); err != nil {
			return err
		}
	}
	for kw, list := range map[string][]*Schema{"allOf": s.AllOf, "anyOf": s.AnyOf, "oneOf": s.OneOf} {
		for i, child := range list {
			if err := validate(child, fmt.Sprintf("%s/%s/%d", path, kw, i)); err != nil {
				return err
			}
		}
	}
	if err := validate(s.Not, path+"/not"); err != nil {
		return err
	}
	for name, child := range s.Defs {
		if err := validate(child, path+"/$defs/"+name); err != nil {
			return err
		}
	}
	for name, child := range s.Definitions {
		if err := validate(child, path+"/definitions/"+name); err != nil {
			return err
		}
	}
	return nil
}

// validTypeName reports whether name is one of the seven JSON Schema
// primitive type names.
func validTypeName(name string) bool {
	switch name {
	case "null", "boolean", "integer", "number", "string", "array", "object":
		return true
	default:
		return false
	}
}
