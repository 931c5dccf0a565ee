package gen

import (
	"slices"
	"strings"
	"sync"
	"unicode"
)

// ImportContext resolves fully-qualified Java type names to the form used in
// a generated unit and records the imports this requires. It is shared by all
// finders of one unit and is safe for concurrent use. Registering the same
// type twice is a no-op.
//
// A simple name goes to the first type resolved under it, unless types were
// reserved: then it goes to the smallest reserved type, whatever the order
// of resolution.
type ImportContext struct {
	pkg string

	mu       sync.Mutex
	simple   map[string]string // simple name -> top-level type
	reserved map[string]string // simple name -> preferred top-level type
	seen     map[string]struct{}
	imports  map[string]struct{}
}

// NewImportContext returns an ImportContext for a unit in the given package.
func NewImportContext(pkg string) *ImportContext {
	return &ImportContext{
		pkg:      pkg,
		simple:   make(map[string]string),
		reserved: make(map[string]string),
		seen:     make(map[string]struct{}),
		imports:  make(map[string]struct{}),
	}
}

// Import returns the display form of a type expression. Generic arguments,
// wildcards, arrays and varargs are resolved piecewise:
//
//	Import("java.util.List<org.example.Person>") // List<Person>
func (c *ImportContext) Import(typ string) string {
	return rewriteNames(typ, c.resolve)
}

// Reserve settles the owners of simple names before anything is imported.
// Of the types reserved under one simple name, the lexicographically
// smallest owns it; the others stay qualified.
func (c *ImportContext) Reserve(types ...string) {
	for _, typ := range types {
		rewriteNames(typ, func(name string) string {
			n, ok := splitName(name)
			if !ok {
				return name
			}
			c.mu.Lock()
			defer c.mu.Unlock()
			if prev, ok := c.reserved[n.simple]; !ok || n.top < prev {
				c.reserved[n.simple] = n.top
			}
			return name
		})
	}
}

// Seen returns the sorted top-level types resolved so far, including those
// left qualified.
func (c *ImportContext) Seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.seen))
	for t := range c.seen {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Imports returns the sorted list of imported types.
func (c *ImportContext) Imports() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.imports))
	for imp := range c.imports {
		out = append(out, imp)
	}
	slices.Sort(out)
	return out
}

// Package returns the package of the unit.
func (c *ImportContext) Package() string { return c.pkg }

// qualifiedName is a qualified name split at its top-level type.
type qualifiedName struct {
	pkg     string // org.example
	top     string // org.example.Outer
	simple  string // Outer
	display string // Outer.Inner
}

// splitName splits a qualified name. It fails for simple names, primitives
// and keywords.
func splitName(name string) (qualifiedName, bool) {
	segs := strings.Split(name, ".")
	top := -1
	for i, s := range segs {
		if s != "" && unicode.IsUpper(rune(s[0])) {
			top = i
			break
		}
	}
	if top <= 0 {
		return qualifiedName{}, false
	}
	return qualifiedName{
		pkg:     strings.Join(segs[:top], "."),
		top:     strings.Join(segs[:top+1], "."),
		simple:  segs[top],
		display: strings.Join(segs[top:], "."),
	}, true
}

// resolve returns the display name of a qualified name, importing its
// top-level type unless a different type owns its simple name.
func (c *ImportContext) resolve(name string) string {
	n, ok := splitName(name)
	if !ok {
		return name
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seen[n.top] = struct{}{}
	if owner, ok := c.reserved[n.simple]; ok && owner != n.top {
		return name
	}
	if prev, ok := c.simple[n.simple]; ok && prev != n.top {
		return name
	}
	c.simple[n.simple] = n.top
	if n.pkg != "java.lang" && n.pkg != c.pkg {
		c.imports[n.top] = struct{}{}
	}
	return n.display
}

// rewriteNames replaces every qualified name of a type expression with fn's
// result for it.
func rewriteNames(typ string, fn func(string) string) string {
	var b strings.Builder
	for i := 0; i < len(typ); {
		if !isIdentStart(typ[i]) {
			b.WriteByte(typ[i])
			i++
			continue
		}
		j := scanQualified(typ, i)
		b.WriteString(fn(typ[i:j]))
		i = j
	}
	return b.String()
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || b >= '0' && b <= '9'
}

// scanQualified returns the end of the dotted name starting at i. A dot is
// part of the name only when an identifier follows it, so "Order..." stops
// before the varargs marker.
func scanQualified(s string, i int) int {
	for {
		for i < len(s) && isIdentPart(s[i]) {
			i++
		}
		if i+1 < len(s) && s[i] == '.' && isIdentStart(s[i+1]) {
			i++
			continue
		}
		return i
	}
}
