package ptr

import (
	"errors"
	"fmt"
)

// ErrRootPlacement is returned by Place for the root pointer: the document
// root is the containing object itself and cannot be replaced through it.
var ErrRootPlacement = errors.New("cannot place a value at the document root")

// Place writes value into doc at the location identified by the pointer,
// creating intermediate objects and arrays as needed. Array index tokens
// grow the target array with nulls up to the index; the append token writes
// past the current end. The first token must be a property, since doc is an
// object.
//
// Place fails when an existing intermediate value conflicts with the pointer,
// e.g. indexing a string with a property name.
func (p Pointer) Place(doc map[string]any, value any) error {
	if len(p) == 0 {
		return ErrRootPlacement
	}
	if p[0].Kind != Property {
		return fmt.Errorf("pointer %q: document root is an object, first token must be a property", p.String())
	}
	return p.placeInMap(doc, p, value)
}

// placeInMap handles a Property token whose container is m.
func (p Pointer) placeInMap(m map[string]any, rest Pointer, value any) error {
	t := rest[0]
	if len(rest) == 1 {
		m[t.Name] = value
		return nil
	}
	next, err := p.placeIn(m[t.Name], rest[1:], value)
	if err != nil {
		return err
	}
	m[t.Name] = next
	return nil
}

// placeIn descends one token, creating the container for it when node is nil.
// It returns the (possibly newly created or reallocated) container so the
// caller can write it back.
func (p Pointer) placeIn(node any, rest Pointer, value any) (any, error) {
	t := rest[0]
	switch t.Kind {
	case Property:
		m, ok := node.(map[string]any)
		if !ok {
			if node != nil {
				return nil, fmt.Errorf("pointer %q: cannot descend into %T with property %q", p.String(), node, t.Name)
			}
			m = make(map[string]any)
		}
		if err := p.placeInMap(m, rest, value); err != nil {
			return nil, err
		}
		return m, nil

	case Index, NextIndex:
		arr, ok := node.([]any)
		if !ok && node != nil {
			return nil, fmt.Errorf("pointer %q: cannot descend into %T with array token %q", p.String(), node, t.Text())
		}
		idx := t.Index
		if t.Kind == NextIndex {
			idx = len(arr)
		}
		for len(arr) <= idx {
			arr = append(arr, nil)
		}
		if len(rest) == 1 {
			arr[idx] = value
			return arr, nil
		}
		next, err := p.placeIn(arr[idx], rest[1:], value)
		if err != nil {
			return nil, err
		}
		arr[idx] = next
		return arr, nil

	default:
		return nil, fmt.Errorf("pointer %q: unknown token kind %v", p.String(), t.Kind)
	}
}
