// Package collate normalizes text for caseless, accent-insensitive field
// name comparison.
//
// The collation applies Unicode canonical decomposition (NFD), full default
// case folding, then compatibility recomposition (NFKC), in that fixed
// order. This follows the conformance guidelines in:
// http://www.unicode.org/versions/Unicode13.0.0/ch03.pdf
// in Section 3.13 - "Default Caseless Matching" (all the way at the bottom).
// The ordering must not change: projection tables built at configuration
// time and header lookups at parse time must agree bit-for-bit.
//
// Behavior is locale-independent.
package collate

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NewTransformer returns a fresh transformer applying the collation chain:
// NFD, then full Unicode default case folding, then NFKC. Transformers are
// stateful; obtain a new one per use, or use String for one-shot collation.
func NewTransformer() transform.Transformer {
	return transform.Chain(norm.NFD, cases.Fold(), norm.NFKC)
}

// String returns the collated form of s. Collation is idempotent: applying
// String to its own output yields the same result. Invalid UTF-8 is passed
// through unchanged.
func String(s string) string {
	out, _, err := transform.String(NewTransformer(), s)
	if err != nil {
		return s
	}
	return out
}
