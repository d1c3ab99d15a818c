package shape

import "github.com/erraggy/tabtools/ptr"

// Locations returns every reachable location of the shape in a
// deterministic depth-first, properties-before-items order, starting with
// the document root. Required-ness propagates downward: a location exists in
// every valid document only when its whole ancestor chain does and the
// location itself is a required property. Array members never must-exist,
// since arrays may be shorter than their tuple prefix.
func (s *Shape) Locations() []Located {
	var out []Located
	s.appendLocations(&out, nil, Must)
	return out
}

func (s *Shape) appendLocations(out *[]Located, at ptr.Pointer, exists Exists) {
	*out = append(*out, Located{Pointer: at, Shape: s, Exists: exists})
	for _, prop := range s.Properties {
		childExists := May
		if exists == Must && prop.Required {
			childExists = Must
		}
		prop.Shape.appendLocations(out, childPointer(at, ptr.Prop(prop.Name)), childExists)
	}
	for i, item := range s.Items {
		item.appendLocations(out, childPointer(at, ptr.Idx(i)), May)
	}
	if s.AdditionalItems != nil {
		s.AdditionalItems.appendLocations(out, childPointer(at, ptr.Append()), May)
	}
}

// childPointer extends a pointer without aliasing the parent's backing array.
func childPointer(at ptr.Pointer, tok ptr.Token) ptr.Pointer {
	child := make(ptr.Pointer, len(at), len(at)+1)
	copy(child, at)
	return append(child, tok)
}

// Locate walks the shape tree along p and returns the shape and
// required-ness at that location. The second return mirrors the rules of
// Locations. ok is false when the pointer leaves the known shape.
func (s *Shape) Locate(p ptr.Pointer) (shape *Shape, exists Exists, ok bool) {
	cur := s
	curExists := Must
	for _, tok := range p {
		switch tok.Kind {
		case ptr.Property:
			prop, found := cur.property(tok.Name)
			if !found {
				return nil, May, false
			}
			if curExists == Must && prop.Required {
				curExists = Must
			} else {
				curExists = May
			}
			cur = prop.Shape

		case ptr.Index:
			if tok.Index < len(cur.Items) {
				cur = cur.Items[tok.Index]
			} else if cur.AdditionalItems != nil {
				cur = cur.AdditionalItems
			} else {
				return nil, May, false
			}
			curExists = May

		case ptr.NextIndex:
			if cur.AdditionalItems == nil {
				return nil, May, false
			}
			cur = cur.AdditionalItems
			curExists = May

		default:
			return nil, May, false
		}
	}
	return cur, curExists, true
}

// property finds a property by name in the sorted Properties list.
func (s *Shape) property(name string) (Property, bool) {
	lo, hi := 0, len(s.Properties)
	for lo < hi {
		mid := (lo + hi) / 2
		if s.Properties[mid].Name < name {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(s.Properties) && s.Properties[lo].Name == name {
		return s.Properties[lo], true
	}
	return Property{}, false
}
