package collate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "ascii lowercase unchanged", input: "foo_bar", want: "foo_bar"},
		{name: "ascii uppercase folds", input: "Foo_Bar", want: "foo_bar"},
		{name: "all caps", input: "MINNOW", want: "minnow"},
		{name: "eszett folds to ss", input: "ß", want: "ss"},
		{name: "capital eszett folds to ss", input: "ẞ", want: "ss"},
		{name: "spaces preserved", input: "Foo Bar", want: "foo bar"},
		{name: "pointer syntax preserved", input: "/Foo/Bar", want: "/foo/bar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.input))
		})
	}
}

func TestStringCaseless(t *testing.T) {
	// Pairs that must collate identically under default caseless matching.
	pairs := []struct {
		name string
		a, b string
	}{
		{name: "simple case", a: "Minnow", b: "minnow"},
		{name: "eszett vs SS", a: "ß", b: "SS"},
		{name: "composed vs decomposed accent", a: "é", b: "é"},
		{name: "accent case", a: "É", b: "é"},
		{name: "angstrom sign vs a-ring", a: "Å", b: "å"},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, String(tt.a), String(tt.b))
		})
	}
}

func TestStringIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"foo_bar",
		"Foo Bar",
		"ß",
		"STRASSE",
		"Élève",
		"/a/ß/Minnow",
		"ﬁsh", // LATIN SMALL LIGATURE FI
	}
	for _, in := range inputs {
		once := String(in)
		assert.Equal(t, once, String(once), "collation of %q is not idempotent", in)
	}
}
