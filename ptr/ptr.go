// Package ptr implements JSON document pointers in the style of RFC 6901,
// extended with the "-" append-to-array token from the JSON Patch family.
//
// A Pointer is an ordered sequence of tokens, each a property name, a decimal
// array index, or the append marker. The empty sequence denotes the document
// root. Pointers are value types; treat them as immutable once constructed.
package ptr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the kind of a pointer token.
type Kind int

const (
	// Property is an object property name token.
	Property Kind = iota

	// Index is a decimal array index token.
	Index

	// NextIndex is the "-" token, denoting the position after the last
	// element of an array (append).
	NextIndex
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Property:
		return "Property"
	case Index:
		return "Index"
	case NextIndex:
		return "NextIndex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a single step of a Pointer.
type Token struct {
	// Kind is the token kind.
	Kind Kind
	// Name is the property name; only meaningful when Kind is Property.
	Name string
	// Index is the array index; only meaningful when Kind is Index.
	Index int
}

// Text returns the unescaped textual rendering of the token: the property
// name verbatim, the index as decimal digits, or "-" for NextIndex.
func (t Token) Text() string {
	switch t.Kind {
	case Index:
		return strconv.Itoa(t.Index)
	case NextIndex:
		return "-"
	default:
		return t.Name
	}
}

// Prop returns a property token for name.
func Prop(name string) Token { return Token{Kind: Property, Name: name} }

// Idx returns an array index token for i.
func Idx(i int) Token { return Token{Kind: Index, Index: i} }

// Append returns the append-to-array token.
func Append() Token { return Token{Kind: NextIndex} }

// Pointer is an ordered sequence of tokens locating a value within a nested
// document. The zero value (empty sequence) is the document root.
type Pointer []Token

// Parse builds a Pointer from a slash-delimited pointer string. Parsing is
// lenient and never fails: the empty string is the root, a missing leading
// slash is tolerated, and escape sequences "~0" and "~1" decode to "~" and
// "/" per RFC 6901. Tokens consisting solely of decimal digits (without a
// superfluous leading zero) become array indices, and a lone "-" becomes the
// append marker; everything else is a property name.
func Parse(s string) Pointer {
	if s == "" {
		return nil
	}
	s = strings.TrimPrefix(s, "/")
	raw := strings.Split(s, "/")
	p := make(Pointer, 0, len(raw))
	for _, r := range raw {
		p = append(p, classify(unescape(r)))
	}
	return p
}

// classify maps an unescaped token string to a Token.
func classify(s string) Token {
	if s == "-" {
		return Append()
	}
	if isIndex(s) {
		// cannot overflow int in practice; fall back to a property on error
		if i, err := strconv.Atoi(s); err == nil {
			return Idx(i)
		}
	}
	return Prop(s)
}

// isIndex reports whether s is a valid decimal index token:
// all digits, with no superfluous leading zero.
func isIndex(s string) bool {
	if s == "" {
		return false
	}
	if len(s) > 1 && s[0] == '0' {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsRoot reports whether the pointer is the document root.
func (p Pointer) IsRoot() bool { return len(p) == 0 }

// String renders the pointer in canonical slash-delimited form with RFC 6901
// escaping. The root renders as the empty string.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, t := range p {
		sb.WriteByte('/')
		sb.WriteString(escape(t.Text()))
	}
	return sb.String()
}

// Equal reports whether p and o are structurally identical token sequences.
func (p Pointer) Equal(o Pointer) bool {
	return p.Compare(o) == 0
}

// Compare orders pointers structurally over their token sequences, returning
// -1, 0, or 1. Shorter prefixes sort first; within a position, tokens order
// by kind (Property < Index < NextIndex), then by name or index.
func (p Pointer) Compare(o Pointer) int {
	for i := 0; i < len(p) && i < len(o); i++ {
		a, b := p[i], o[i]
		if a.Kind != b.Kind {
			if a.Kind < b.Kind {
				return -1
			}
			return 1
		}
		switch a.Kind {
		case Property:
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
		case Index:
			if a.Index != b.Index {
				if a.Index < b.Index {
					return -1
				}
				return 1
			}
		}
	}
	switch {
	case len(p) < len(o):
		return -1
	case len(p) > len(o):
		return 1
	default:
		return 0
	}
}

// MarshalJSON renders the pointer as its canonical string form.
func (p Pointer) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, p.String()), nil
}

// unescape decodes RFC 6901 escape sequences.
func unescape(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}

// escape encodes RFC 6901 escape sequences.
func escape(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
