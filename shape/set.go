// Package shape infers the shape of documents permitted by a JSON Schema:
// for every reachable location, the set of possible JSON types and whether
// a valid document must always contain the location.
//
// The inference is deliberately coarse. It follows properties, array items,
// composition keywords, and local $ref targets, and answers only the two
// questions the projection resolver needs: what types can appear here, and
// is this location guaranteed to exist.
package shape

import "strings"

// Set is a bitmask of JSON type tags.
type Set uint8

const (
	// Null is the JSON null type.
	Null Set = 1 << iota
	// Boolean is the JSON boolean type.
	Boolean
	// Integer is the subset of JSON numbers without a fractional part.
	Integer
	// Number is the JSON number type (fractional values).
	Number
	// String is the JSON string type.
	String
	// Array is the JSON array type.
	Array
	// Object is the JSON object type.
	Object

	// Invalid is the empty set: no value is valid.
	Invalid Set = 0

	// Any is the set of all JSON types.
	Any = Null | Boolean | Integer | Number | String | Array | Object
)

// setNames orders tags for deterministic rendering.
var setNames = []struct {
	tag  Set
	name string
}{
	{Null, "null"},
	{Boolean, "boolean"},
	{Integer, "integer"},
	{Number, "number"},
	{String, "string"},
	{Array, "array"},
	{Object, "object"},
}

// FromName maps a JSON Schema type name to its Set. Note that "number"
// includes Integer, since every integer is a valid number.
func FromName(name string) (Set, bool) {
	switch name {
	case "null":
		return Null, true
	case "boolean":
		return Boolean, true
	case "integer":
		return Integer, true
	case "number":
		return Integer | Number, true
	case "string":
		return String, true
	case "array":
		return Array, true
	case "object":
		return Object, true
	default:
		return Invalid, false
	}
}

// Has reports whether every tag in t is present in s.
func (s Set) Has(t Set) bool { return s&t == t }

// Names returns the tag names present in s, in fixed order.
func (s Set) Names() []string {
	out := make([]string, 0, len(setNames))
	for _, n := range setNames {
		if s&n.tag != 0 {
			out = append(out, n.name)
		}
	}
	return out
}

// String renders the set for logs and debugging.
func (s Set) String() string {
	if s == Invalid {
		return "invalid"
	}
	return strings.Join(s.Names(), ", ")
}

// MarshalJSON renders the set as an array of type names.
func (s Set) MarshalJSON() ([]byte, error) {
	names := s.Names()
	var sb strings.Builder
	sb.WriteByte('[')
	for i, n := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('"')
		sb.WriteString(n)
		sb.WriteByte('"')
	}
	sb.WriteByte(']')
	return []byte(sb.String()), nil
}
