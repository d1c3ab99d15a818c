// Package projection resolves how tabular field names map onto locations
// inside a nested JSON document described by a JSON Schema.
//
// Build runs shape inference over the schema, derives a set of plausible
// candidate names for every reachable location, then overlays user-supplied
// overrides, which always take precedence. The result is a read-only Table
// from collated field names to type and location information; parsers apply
// collate.String to each raw column header and look it up to decide where a
// parsed value belongs and how to convert it.
//
// Generating all plausible renderings up front trades a little memory for a
// plain map lookup on the hot parsing path; no per-header fuzzy matching is
// needed at parse time.
package projection

import (
	"sort"

	"github.com/erraggy/tabtools/collate"
	"github.com/erraggy/tabtools/ptr"
	"github.com/erraggy/tabtools/schema"
	"github.com/erraggy/tabtools/shape"
)

// TypeInfo is the information known about a specific location within a JSON
// document.
type TypeInfo struct {
	// TargetLocation is the document location a matched field writes to.
	TargetLocation ptr.Pointer `json:"target_location"`
	// MustExist is true only when the schema asserts the location is always
	// present.
	MustExist bool `json:"must_exist"`
	// PossibleTypes is the set of JSON types allowed at the location. A nil
	// pointer means no type information is available, which is distinct
	// from an empty set (no value would be valid).
	PossibleTypes *shape.Set `json:"possible_types"`
}

// typeInfoAt builds a TypeInfo from a located shape.
func typeInfoAt(target ptr.Pointer, sh *shape.Shape, exists shape.Exists) TypeInfo {
	types := sh.Types
	return TypeInfo{
		TargetLocation: target,
		MustExist:      exists == shape.Must,
		PossibleTypes:  &types,
	}
}

// Override is a user-supplied projection from a raw field name to a
// slash-delimited document pointer. Overrides come from external parse
// configuration and always beat schema-derived candidates.
type Override struct {
	// Field is the raw, uncollated field name.
	Field string `yaml:"field" json:"field"`
	// Pointer is the target location in RFC 6901 form.
	Pointer string `yaml:"pointer" json:"pointer"`
}

// Table maps collated field names to type information. It is built once per
// parse configuration and read-only thereafter; concurrent lookups need no
// synchronization.
//
// Every key is the output of collate.String applied to some candidate name,
// never a raw string.
type Table map[string]TypeInfo

// Lookup returns the type information for a collated field name. Callers
// must collate raw headers themselves; Lookup performs an exact match only.
func (t Table) Lookup(field string) (TypeInfo, bool) {
	info, ok := t[field]
	return info, ok
}

// Fields returns the table's keys in sorted order.
func (t Table) Fields() []string {
	out := make([]string, 0, len(t))
	for f := range t {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Option configures Build.
type Option func(*builder)

// WithLogger sets the logger used for non-fatal diagnostics, such as
// overrides pointing outside the schema's known shape. Defaults to
// NopLogger.
func WithLogger(logger Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

type builder struct {
	logger Logger
}

// Build resolves a projection table from a schema document and user
// overrides.
//
// schemaDoc may be nil, meaning no type constraints are known; the
// universally-permissive schema is substituted. Otherwise it is a decoded
// YAML/JSON value or a *schema.Schema. A structurally invalid schema or a
// failed reference index aborts with *taberrors.SchemaBuildError or
// *taberrors.SchemaIndexError respectively; both are fatal configuration
// errors.
//
// Schema-derived candidates are inserted first, in the deterministic order
// produced by shape.Locations; when two locations derive the same candidate
// the later insertion wins. Overrides are then applied in slice order and
// unconditionally overwrite. An override whose pointer is not a known
// location degrades to a TypeInfo with no type information and emits one
// warning; parsing may still succeed if the location accepts arbitrary
// values.
func Build(schemaDoc any, overrides []Override, opts ...Option) (Table, error) {
	b := &builder{logger: NopLogger{}}
	for _, opt := range opts {
		opt(b)
	}

	built, err := schema.BuildValue(schemaDoc)
	if err != nil {
		return nil, err
	}
	ix, err := schema.NewIndex(built)
	if err != nil {
		return nil, err
	}
	inferred := shape.Infer(built, ix)

	table := make(Table)
	for _, loc := range inferred.Locations() {
		info := typeInfoAt(loc.Pointer, loc.Shape, loc.Exists)
		for _, field := range DeriveFieldNames(loc.Pointer) {
			table[field] = info
		}
	}

	// overrides from the configuration always take precedence over the
	// candidates inferred from the schema
	for _, ov := range overrides {
		target := ptr.Parse(ov.Pointer)
		var info TypeInfo
		if sh, exists, ok := inferred.Locate(target); ok {
			info = typeInfoAt(target, sh, exists)
		} else {
			// Not a hard error: the file may still parse correctly without
			// type knowledge, e.g. when the location accepts any JSON and
			// the override exists only to shape the output document.
			b.logger.Warn("could not locate projection within schema",
				"field", ov.Field,
				"pointer", ov.Pointer,
			)
			info = TypeInfo{TargetLocation: target}
		}
		table[collate.String(ov.Field)] = info
	}

	return table, nil
}
