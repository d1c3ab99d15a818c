package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/tabtools/ptr"
	"github.com/erraggy/tabtools/schema"
)

// inferSchema builds, indexes, and infers a schema document for tests.
func inferSchema(t *testing.T, doc string) *Shape {
	t.Helper()
	s, err := schema.Build([]byte(doc))
	require.NoError(t, err)
	ix, err := schema.NewIndex(s)
	require.NoError(t, err)
	return Infer(s, ix)
}

func TestSetFromName(t *testing.T) {
	tests := []struct {
		name string
		want Set
		ok   bool
	}{
		{name: "null", want: Null, ok: true},
		{name: "boolean", want: Boolean, ok: true},
		{name: "integer", want: Integer, ok: true},
		{name: "number", want: Integer | Number, ok: true},
		{name: "string", want: String, ok: true},
		{name: "array", want: Array, ok: true},
		{name: "object", want: Object, ok: true},
		{name: "text", want: Invalid, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromName(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "invalid", Invalid.String())
	assert.Equal(t, "integer, number", (Integer | Number).String())
	assert.Equal(t, "null, boolean, integer, number, string, array, object", Any.String())
}

func TestInferObject(t *testing.T) {
	sh := inferSchema(t, `
type: object
properties:
  name:
    type: string
  age:
    type: integer
required: [name]
`)
	assert.Equal(t, Object, sh.Types)
	require.Len(t, sh.Properties, 2)

	// sorted by name
	assert.Equal(t, "age", sh.Properties[0].Name)
	assert.Equal(t, Integer, sh.Properties[0].Shape.Types)
	assert.False(t, sh.Properties[0].Required)

	assert.Equal(t, "name", sh.Properties[1].Name)
	assert.Equal(t, String, sh.Properties[1].Shape.Types)
	assert.True(t, sh.Properties[1].Required)
}

func TestInferUntyped(t *testing.T) {
	sh := inferSchema(t, `{"description": "anything goes"}`)
	assert.Equal(t, Any, sh.Types)

	sh = inferSchema(t, `true`)
	assert.Equal(t, Any, sh.Types)

	sh = inferSchema(t, `false`)
	assert.Equal(t, Invalid, sh.Types)
}

func TestInferArray(t *testing.T) {
	sh := inferSchema(t, `
type: array
prefixItems:
  - type: string
  - type: integer
items:
  type: boolean
`)
	assert.Equal(t, Array, sh.Types)
	require.Len(t, sh.Items, 2)
	assert.Equal(t, String, sh.Items[0].Types)
	assert.Equal(t, Integer, sh.Items[1].Types)
	require.NotNil(t, sh.AdditionalItems)
	assert.Equal(t, Boolean, sh.AdditionalItems.Types)
}

func TestInferRef(t *testing.T) {
	sh := inferSchema(t, `
type: object
properties:
  pet:
    $ref: "#/$defs/Pet"
$defs:
  Pet:
    type: object
    properties:
      name:
        type: string
`)
	require.Len(t, sh.Properties, 1)
	pet := sh.Properties[0].Shape
	assert.Equal(t, Object, pet.Types)
	require.Len(t, pet.Properties, 1)
	assert.Equal(t, "name", pet.Properties[0].Name)
}

func TestInferRefCycle(t *testing.T) {
	// A self-referencing schema must terminate; the cycle is cut with an
	// unconstrained shape.
	sh := inferSchema(t, `
type: object
properties:
  next:
    $ref: "#"
  value:
    type: string
`)
	require.Len(t, sh.Properties, 2)
	next := sh.Properties[0].Shape
	assert.Equal(t, "next", sh.Properties[0].Name)
	assert.Equal(t, Any, next.Types)
}

func TestInferAllOf(t *testing.T) {
	sh := inferSchema(t, `
allOf:
  - type: object
    properties:
      a:
        type: string
    required: [a]
  - type: object
    properties:
      b:
        type: integer
`)
	assert.Equal(t, Object, sh.Types)
	require.Len(t, sh.Properties, 2)
	assert.True(t, sh.Properties[0].Required, "a required by one branch")
	assert.False(t, sh.Properties[1].Required)
}

func TestInferAnyOf(t *testing.T) {
	sh := inferSchema(t, `
anyOf:
  - type: string
  - type: integer
`)
	assert.Equal(t, String|Integer, sh.Types)
}

func TestInferAnyOfRequiredIntersects(t *testing.T) {
	sh := inferSchema(t, `
anyOf:
  - type: object
    properties:
      a: {type: string}
      b: {type: string}
    required: [a, b]
  - type: object
    properties:
      a: {type: string}
    required: [a]
`)
	require.Len(t, sh.Properties, 2)
	assert.True(t, sh.Properties[0].Required, "a required in all branches")
	assert.False(t, sh.Properties[1].Required, "b required in only one branch")
}

func TestLocations(t *testing.T) {
	sh := inferSchema(t, `
type: object
properties:
  bee:
    type: object
    properties:
      loc:
        type: string
  locationa:
    type: integer
required: [locationa, bee]
`)
	locs := sh.Locations()
	byPointer := make(map[string]Located, len(locs))
	for _, l := range locs {
		byPointer[l.Pointer.String()] = l
	}

	require.Len(t, locs, 4)

	root := byPointer[""]
	assert.Equal(t, Object, root.Shape.Types)
	assert.Equal(t, Must, root.Exists)

	loca := byPointer["/locationa"]
	assert.Equal(t, Integer, loca.Shape.Types)
	assert.Equal(t, Must, loca.Exists)

	bee := byPointer["/bee"]
	assert.Equal(t, Must, bee.Exists)

	// loc is not in bee's required list, so it may be absent
	loc := byPointer["/bee/loc"]
	assert.Equal(t, String, loc.Shape.Types)
	assert.Equal(t, May, loc.Exists)
}

func TestLocationsArray(t *testing.T) {
	sh := inferSchema(t, `
type: object
properties:
  xs:
    type: array
    prefixItems:
      - type: string
    items:
      type: integer
required: [xs]
`)
	locs := sh.Locations()
	byPointer := make(map[string]Located, len(locs))
	for _, l := range locs {
		byPointer[l.Pointer.String()] = l
	}

	require.Contains(t, byPointer, "/xs/0")
	assert.Equal(t, String, byPointer["/xs/0"].Shape.Types)
	assert.Equal(t, May, byPointer["/xs/0"].Exists)

	require.Contains(t, byPointer, "/xs/-")
	assert.Equal(t, Integer, byPointer["/xs/-"].Shape.Types)
	assert.Equal(t, May, byPointer["/xs/-"].Exists)
}

func TestLocationsDeterministic(t *testing.T) {
	const doc = `
type: object
properties:
  zeta: {type: string}
  alpha: {type: integer}
  mid:
    type: object
    properties:
      y: {type: boolean}
      x: {type: number}
`
	a := inferSchema(t, doc).Locations()
	b := inferSchema(t, doc).Locations()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Pointer.Equal(b[i].Pointer), "position %d differs", i)
		assert.Equal(t, a[i].Exists, b[i].Exists)
		assert.Equal(t, a[i].Shape.Types, b[i].Shape.Types)
	}
}

func TestLocate(t *testing.T) {
	sh := inferSchema(t, `
type: object
properties:
  bee:
    type: object
    properties:
      loc:
        type: string
  locationa:
    type: integer
required: [locationa, bee]
`)

	t.Run("root", func(t *testing.T) {
		got, exists, ok := sh.Locate(nil)
		require.True(t, ok)
		assert.Same(t, sh, got)
		assert.Equal(t, Must, exists)
	})

	t.Run("required top-level", func(t *testing.T) {
		got, exists, ok := sh.Locate(ptr.Parse("/locationa"))
		require.True(t, ok)
		assert.Equal(t, Integer, got.Types)
		assert.Equal(t, Must, exists)
	})

	t.Run("optional nested", func(t *testing.T) {
		got, exists, ok := sh.Locate(ptr.Parse("/bee/loc"))
		require.True(t, ok)
		assert.Equal(t, String, got.Types)
		assert.Equal(t, May, exists)
	})

	t.Run("unknown location", func(t *testing.T) {
		_, _, ok := sh.Locate(ptr.Parse("/b/loc"))
		assert.False(t, ok)
	})
}

func TestLocateArray(t *testing.T) {
	sh := inferSchema(t, `
type: array
prefixItems:
  - type: string
items:
  type: integer
`)

	got, exists, ok := sh.Locate(ptr.Parse("/0"))
	require.True(t, ok)
	assert.Equal(t, String, got.Types)
	assert.Equal(t, May, exists)

	got, _, ok = sh.Locate(ptr.Parse("/5"))
	require.True(t, ok, "past the tuple prefix falls back to items")
	assert.Equal(t, Integer, got.Types)

	got, _, ok = sh.Locate(ptr.Parse("/-"))
	require.True(t, ok)
	assert.Equal(t, Integer, got.Types)
}
