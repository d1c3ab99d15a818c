package projection

import (
	"slices"
	"strings"

	"github.com/erraggy/tabtools/collate"
	"github.com/erraggy/tabtools/ptr"
)

// DeriveFieldNames returns a possibly empty, sorted, deduplicated set of
// candidate field names for a document location. The candidates cover the
// renderings real tabular files use interchangeably for nested locations:
// underscore-delimited, space-delimited, concatenated, and literal pointer
// syntax (with and without the leading slash). Every candidate is collated
// before being returned.
//
// The root location yields no candidates; a bare field name never addresses
// the document root.
func DeriveFieldNames(p ptr.Pointer) []string {
	if p.IsRoot() {
		return nil
	}

	parts := make([]string, len(p))
	for i, tok := range p {
		parts[i] = tok.Text()
	}

	pointer := p.String()
	variants := []string{
		strings.Join(parts, "_"),
		strings.Join(parts, " "),
		strings.Join(parts, ""),
		pointer,
		pointer[1:],
	}

	// For properties of the document root (only) having underscores, allow
	// the property to also match a space-delimited variant of its
	// constituent parts. Nested locations must not get this treatment, or
	// "foo_bar/baz" and a flattened sibling would both render "foo bar baz".
	if len(parts) == 1 {
		variants = append(variants, strings.ReplaceAll(parts[0], "_", " "))
	}

	for i, v := range variants {
		variants[i] = collate.String(v)
	}
	slices.Sort(variants)
	return slices.Compact(variants)
}
