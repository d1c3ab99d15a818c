package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/tabtools/taberrors"
)

func TestBuild(t *testing.T) {
	t.Run("object schema", func(t *testing.T) {
		s, err := Build([]byte(`
type: object
properties:
  name:
    type: string
  age:
    type: integer
required: [name]
`))
		require.NoError(t, err)
		assert.Equal(t, "object", s.Type)
		assert.Len(t, s.Properties, 2)
		assert.Equal(t, []string{"name"}, s.Required)
		assert.Equal(t, "string", s.Properties["name"].Type)
	})

	t.Run("json input", func(t *testing.T) {
		s, err := Build([]byte(`{"type": "object", "properties": {"a": {"type": "number"}}}`))
		require.NoError(t, err)
		assert.Equal(t, "number", s.Properties["a"].Type)
	})

	t.Run("boolean schema true", func(t *testing.T) {
		s, err := Build([]byte(`true`))
		require.NoError(t, err)
		require.NotNil(t, s.Always)
		assert.True(t, *s.Always)
	})

	t.Run("nested boolean subschema", func(t *testing.T) {
		s, err := Build([]byte(`
type: object
properties:
  anything: true
additionalProperties: false
`))
		require.NoError(t, err)
		require.NotNil(t, s.Properties["anything"].Always)
		assert.True(t, *s.Properties["anything"].Always)
		require.NotNil(t, s.AdditionalProperties.Always)
		assert.False(t, *s.AdditionalProperties.Always)
	})

	t.Run("type array", func(t *testing.T) {
		s, err := Build([]byte(`{"type": ["string", "null"]}`))
		require.NoError(t, err)
		types, err := s.TypeStrings()
		require.NoError(t, err)
		assert.Equal(t, []string{"string", "null"}, types)
	})

	t.Run("unknown type name fails", func(t *testing.T) {
		_, err := Build([]byte(`{"type": "text"}`))
		assert.ErrorIs(t, err, taberrors.ErrSchemaBuild)
	})

	t.Run("non-string type fails", func(t *testing.T) {
		_, err := Build([]byte(`{"type": 42}`))
		assert.ErrorIs(t, err, taberrors.ErrSchemaBuild)
	})

	t.Run("nested invalid type reports path", func(t *testing.T) {
		_, err := Build([]byte(`
type: object
properties:
  bad:
    type: [1, 2]
`))
		require.ErrorIs(t, err, taberrors.ErrSchemaBuild)
		var buildErr *taberrors.SchemaBuildError
		require.ErrorAs(t, err, &buildErr)
		assert.Equal(t, "#/properties/bad", buildErr.Path)
	})

	t.Run("malformed document fails", func(t *testing.T) {
		_, err := Build([]byte("properties: [not, a, map]"))
		assert.ErrorIs(t, err, taberrors.ErrSchemaBuild)
	})
}

func TestBuildValue(t *testing.T) {
	t.Run("nil builds permissive", func(t *testing.T) {
		s, err := BuildValue(nil)
		require.NoError(t, err)
		require.NotNil(t, s.Always)
		assert.True(t, *s.Always)
	})

	t.Run("decoded map", func(t *testing.T) {
		s, err := BuildValue(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"x": map[string]any{"type": "boolean"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "boolean", s.Properties["x"].Type)
	})

	t.Run("existing schema passes through", func(t *testing.T) {
		orig := Permissive()
		s, err := BuildValue(orig)
		require.NoError(t, err)
		assert.Same(t, orig, s)
	})
}

func TestNewIndex(t *testing.T) {
	t.Run("resolves defs and subschemas", func(t *testing.T) {
		s, err := Build([]byte(`
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
`))
		require.NoError(t, err)
		ix, err := NewIndex(s)
		require.NoError(t, err)

		pet, ok := ix.Resolve("#/$defs/Pet")
		require.True(t, ok)
		assert.Equal(t, "object", pet.Type)

		name, ok := ix.Resolve("#/$defs/Pet/properties/name")
		require.True(t, ok)
		assert.Equal(t, "string", name.Type)

		root, ok := ix.Resolve("#")
		require.True(t, ok)
		assert.Same(t, s, root)
	})

	t.Run("dangling ref fails", func(t *testing.T) {
		s, err := Build([]byte(`
type: object
properties:
  pet:
    $ref: "#/$defs/Missing"
`))
		require.NoError(t, err)
		_, err = NewIndex(s)
		require.ErrorIs(t, err, taberrors.ErrSchemaIndex)
		var ixErr *taberrors.SchemaIndexError
		require.ErrorAs(t, err, &ixErr)
		assert.Equal(t, "#/$defs/Missing", ixErr.Ref)
	})

	t.Run("remote ref fails", func(t *testing.T) {
		s, err := Build([]byte(`{"$ref": "https://example.com/schema.json"}`))
		require.NoError(t, err)
		_, err = NewIndex(s)
		assert.ErrorIs(t, err, taberrors.ErrSchemaIndex)
	})

	t.Run("escaped property names", func(t *testing.T) {
		s, err := Build([]byte(`
type: object
properties:
  "a/b":
    type: string
`))
		require.NoError(t, err)
		ix, err := NewIndex(s)
		require.NoError(t, err)
		_, ok := ix.Resolve("#/properties/a~1b")
		assert.True(t, ok)
	})
}
