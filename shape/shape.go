package shape

import (
	"sort"

	"github.com/erraggy/tabtools/ptr"
	"github.com/erraggy/tabtools/schema"
)

// Exists states whether a location is guaranteed to be present in every
// valid document.
type Exists int

const (
	// May marks a location that can be absent.
	May Exists = iota
	// Must marks a location the schema asserts is always present.
	Must
)

// String returns a string representation of the exists constraint.
func (e Exists) String() string {
	if e == Must {
		return "must"
	}
	return "may"
}

// Shape models the inferred shape at one document location.
// Properties are sorted by name so traversal order is deterministic.
type Shape struct {
	// Types is the set of JSON types possible at this location.
	Types Set
	// Properties describes the object properties, when Types includes Object.
	Properties []Property
	// Items describes the leading tuple positions of an array (prefixItems).
	Items []*Shape
	// AdditionalItems describes array elements beyond the tuple prefix.
	AdditionalItems *Shape
}

// Property is a named object property and its inferred shape.
type Property struct {
	// Name is the property name.
	Name string
	// Required is true when the parent object lists the property as required.
	Required bool
	// Shape is the property's inferred shape.
	Shape *Shape
}

// Located pairs a document location with its inferred shape and
// required-ness. Produced by Locations.
type Located struct {
	// Pointer identifies the location.
	Pointer ptr.Pointer
	// Shape is the inferred shape at the location.
	Shape *Shape
	// Exists states whether the location must be present.
	Exists Exists
}

// anyShape returns a fresh unconstrained shape.
func anyShape() *Shape { return &Shape{Types: Any} }

// Infer derives the shape of documents permitted by s, resolving local
// references through ix. Reference cycles are cut by treating the revisited
// subschema as unconstrained; inference always terminates and the resulting
// shape tree is finite.
func Infer(s *schema.Schema, ix *schema.Index) *Shape {
	in := &inferrer{ix: ix, active: make(map[*schema.Schema]bool)}
	return in.infer(s)
}

type inferrer struct {
	ix     *schema.Index
	active map[*schema.Schema]bool
}

func (in *inferrer) infer(s *schema.Schema) *Shape {
	if s == nil {
		return anyShape()
	}
	if s.Always != nil {
		if *s.Always {
			return anyShape()
		}
		return &Shape{Types: Invalid}
	}
	if in.active[s] {
		// reference cycle; cut here
		return anyShape()
	}
	in.active[s] = true
	defer delete(in.active, s)

	if s.Ref != "" {
		target, ok := in.ix.Resolve(s.Ref)
		if !ok {
			// the index verified all refs; unreachable in practice
			return anyShape()
		}
		return in.infer(target)
	}

	out := anyShape()
	if names, err := s.TypeStrings(); err == nil && names != nil {
		types := Invalid
		for _, name := range names {
			if t, ok := FromName(name); ok {
				types |= t
			}
		}
		out.Types = types
	}

	if len(s.Properties) > 0 {
		required := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			required[name] = true
		}
		out.Properties = make([]Property, 0, len(s.Properties))
		for name, child := range s.Properties {
			out.Properties = append(out.Properties, Property{
				Name:     name,
				Required: required[name],
				Shape:    in.infer(child),
			})
		}
		sort.Slice(out.Properties, func(i, j int) bool {
			return out.Properties[i].Name < out.Properties[j].Name
		})
	}

	for _, child := range s.PrefixItems {
		out.Items = append(out.Items, in.infer(child))
	}
	if s.Items != nil {
		out.AdditionalItems = in.infer(s.Items)
	}

	for _, branch := range s.AllOf {
		out = intersect(out, in.infer(branch))
	}
	if len(s.AnyOf) > 0 {
		out = intersect(out, in.unionOf(s.AnyOf))
	}
	if len(s.OneOf) > 0 {
		out = intersect(out, in.unionOf(s.OneOf))
	}
	return out
}

// unionOf merges the branch shapes of an anyOf/oneOf keyword.
func (in *inferrer) unionOf(branches []*schema.Schema) *Shape {
	var out *Shape
	for _, branch := range branches {
		bs := in.infer(branch)
		if out == nil {
			out = bs
			continue
		}
		out = union(out, bs)
	}
	if out == nil {
		return anyShape()
	}
	return out
}

// intersect combines constraints that must all hold (allOf): types narrow,
// properties union, and a property is required when any side requires it.
func intersect(a, b *Shape) *Shape {
	out := &Shape{Types: a.Types & b.Types}
	out.Properties = mergeProperties(a.Properties, b.Properties, func(x, y bool) bool { return x || y })
	out.Items = mergeItems(a.Items, b.Items)
	out.AdditionalItems = pickShape(a.AdditionalItems, b.AdditionalItems)
	return out
}

// union combines alternative constraints (anyOf/oneOf): types widen, and a
// property is required only when every branch requires it.
func union(a, b *Shape) *Shape {
	out := &Shape{Types: a.Types | b.Types}
	out.Properties = mergeProperties(a.Properties, b.Properties, func(x, y bool) bool { return x && y })
	out.Items = mergeItems(a.Items, b.Items)
	out.AdditionalItems = pickShape(a.AdditionalItems, b.AdditionalItems)
	return out
}

// mergeProperties merges two sorted property lists, combining required flags
// with combineRequired and keeping the first-seen shape for shared names.
func mergeProperties(a, b []Property, combineRequired func(x, y bool) bool) []Property {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	inA := make(map[string]Property, len(a))
	for _, p := range a {
		inA[p.Name] = p
	}
	inB := make(map[string]Property, len(b))
	for _, p := range b {
		inB[p.Name] = p
	}
	names := make([]string, 0, len(inA)+len(inB))
	for name := range inA {
		names = append(names, name)
	}
	for name := range inB {
		if _, ok := inA[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]Property, 0, len(names))
	for _, name := range names {
		pa, okA := inA[name]
		pb, okB := inB[name]
		switch {
		case okA && okB:
			pa.Required = combineRequired(pa.Required, pb.Required)
			out = append(out, pa)
		case okA:
			// absent on the other side: never required across a union,
			// keeps its own flag across an intersection
			pa.Required = combineRequired(pa.Required, false)
			out = append(out, pa)
		default:
			pb.Required = combineRequired(false, pb.Required)
			out = append(out, pb)
		}
	}
	return out
}

// mergeItems keeps the longer tuple prefix, preferring a's entries.
func mergeItems(a, b []*Shape) []*Shape {
	if len(a) >= len(b) {
		return a
	}
	return b
}

// pickShape prefers the first non-nil shape.
func pickShape(a, b *Shape) *Shape {
	if a != nil {
		return a
	}
	return b
}
