package jsondrift

import (
	"strconv"
	"strings"
)

// Path builds field/index paths in a chain-safe way. Each chaining call
// returns a new Path; a Path held by a caller never changes underneath it.
type Path struct {
	parts []string
}

// Root returns the empty path ("/" as a pointer, "" as display text).
func Root() Path { return Path{} }

// Field appends an object key segment.
func (p Path) Field(name string) Path {
	return Path{parts: append(append([]string{}, p.parts...), name)}
}

// Index appends an array index segment.
func (p Path) Index(i int) Path {
	return Path{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders the path as an RFC 6901 JSON Pointer, e.g. "/items/2/name".
func (p Path) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, part := range p.parts {
		b.WriteByte('/')
		// escape '~' -> '~0', '/' -> '~1' per RFC 6901
		b.WriteString(strings.ReplaceAll(strings.ReplaceAll(part, "~", "~0"), "/", "~1"))
	}
	return b.String()
}

// String renders the display form used in log output, e.g. "items[2].name".
// Numeric segments are rendered as indexes; key segments are dot-joined.
func (p Path) String() string {
	b := &strings.Builder{}
	for _, part := range p.parts {
		if isIndexSegment(part) {
			b.WriteByte('[')
			b.WriteString(part)
			b.WriteByte(']')
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndexSegment(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParsePointer splits a JSON Pointer back into a Path, unescaping segments.
func ParsePointer(ptr string) Path {
	if ptr == "" || ptr == "/" {
		return Root()
	}
	raw := strings.Split(strings.TrimPrefix(ptr, "/"), "/")
	parts := make([]string, 0, len(raw))
	for _, seg := range raw {
		parts = append(parts, strings.ReplaceAll(strings.ReplaceAll(seg, "~1", "/"), "~0", "~"))
	}
	return Path{parts: parts}
}
