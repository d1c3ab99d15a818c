package schema

import (
	"strconv"
	"strings"

	"github.com/erraggy/tabtools/taberrors"
)

// Index resolves local $ref references within a built schema.
//
// Construction walks the whole schema tree, registering every subschema
// under its canonical "#/..." fragment, then verifies that every $ref in
// the tree resolves. A dangling or non-local reference is a fatal
// *taberrors.SchemaIndexError.
type Index struct {
	byFragment map[string]*Schema
}

// NewIndex builds an index over root, verifying all references.
func NewIndex(root *Schema) (*Index, error) {
	ix := &Index{byFragment: make(map[string]*Schema)}
	ix.register(root, "#")
	if err := ix.verify(root); err != nil {
		return nil, err
	}
	return ix, nil
}

// Resolve returns the subschema registered under ref, if any.
func (ix *Index) Resolve(ref string) (*Schema, bool) {
	s, ok := ix.byFragment[canonicalFragment(ref)]
	return s, ok
}

// register records s under fragment and recurses into its subschemas.
func (ix *Index) register(s *Schema, fragment string) {
	if s == nil {
		return
	}
	ix.byFragment[fragment] = s
	if s.Always != nil {
		return
	}
	for name, child := range s.Properties {
		ix.register(child, fragment+"/properties/"+escapeFragment(name))
	}
	ix.register(s.AdditionalProperties, fragment+"/additionalProperties")
	ix.register(s.Items, fragment+"/items")
	for i, child := range s.PrefixItems {
		ix.register(child, fragment+"/prefixItems/"+strconv.Itoa(i))
	}
	for i, child := range s.AllOf {
		ix.register(child, fragment+"/allOf/"+strconv.Itoa(i))
	}
	for i, child := range s.AnyOf {
		ix.register(child, fragment+"/anyOf/"+strconv.Itoa(i))
	}
	for i, child := range s.OneOf {
		ix.register(child, fragment+"/oneOf/"+strconv.Itoa(i))
	}
	ix.register(s.Not, fragment+"/not")
	for name, child := range s.Defs {
		ix.register(child, fragment+"/$defs/"+escapeFragment(name))
	}
	for name, child := range s.Definitions {
		ix.register(child, fragment+"/definitions/"+escapeFragment(name))
	}
}

// verify checks that every $ref in the tree resolves against the index.
func (ix *Index) verify(s *Schema) error {
	if s == nil || s.Always != nil {
		return nil
	}
	if s.Ref != "" {
		if !strings.HasPrefix(s.Ref, "#") {
			return &taberrors.SchemaIndexError{
				Ref:     s.Ref,
				Message: "only local references are supported",
			}
		}
		if _, ok := ix.Resolve(s.Ref); !ok {
			return &taberrors.SchemaIndexError{
				Ref:     s.Ref,
				Message: "reference does not resolve",
			}
		}
	}
	children := make([]*Schema, 0, 8)
	for _, child := range s.Properties {
		children = append(children, child)
	}
	children = append(children, s.AdditionalProperties, s.Items, s.Not)
	children = append(children, s.PrefixItems...)
	children = append(children, s.AllOf...)
	children = append(children, s.AnyOf...)
	children = append(children, s.OneOf...)
	for _, child := range s.Defs {
		children = append(children, child)
	}
	for _, child := range s.Definitions {
		children = append(children, child)
	}
	for _, child := range children {
		if err := ix.verify(child); err != nil {
			return err
		}
	}
	return nil
}

// canonicalFragment normalizes a reference string to the registration form:
// "#" for the root, no trailing slash otherwise.
func canonicalFragment(ref string) string {
	if ref == "" || ref == "#" || ref == "#/" {
		return "#"
	}
	return strings.TrimSuffix(ref, "/")
}

// escapeFragment applies RFC 6901 escaping to a fragment token.
func escapeFragment(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
