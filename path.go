package shaper

import (
	"strconv"
	"strings"
)

// Path is an ordered sequence of segments locating a value inside the input.
// Segments are string keys for object properties and int indices for array,
// tuple and set elements. The zero value is the root path.
//
// Key and Index always return a fresh slice so that sibling descents never
// share a backing array; this is what makes a compiled schema tree safe for
// concurrent Parse calls.
type Path []any

// Key returns a new path extended by an object property segment.
func (p Path) Key(k string) Path {
	np := make(Path, len(p), len(p)+1)
	copy(np, p)
	return append(np, k)
}

// Index returns a new path extended by an element index segment.
func (p Path) Index(i int) Path {
	np := make(Path, len(p), len(p)+1)
	copy(np, p)
	return append(np, i)
}

// IsRoot reports whether the path has no segments.
func (p Path) IsRoot() bool { return len(p) == 0 }

// String renders the dotted form, e.g. "items.2.price". The root path
// renders as the empty string.
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for i, seg := range p {
		if i > 0 {
			b.WriteByte('.')
		}
		switch s := seg.(type) {
		case string:
			b.WriteString(s)
		case int:
			b.WriteString(strconv.Itoa(s))
		default:
			b.WriteString("?")
		}
	}
	return b.String()
}
