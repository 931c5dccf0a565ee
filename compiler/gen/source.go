package gen

import (
	"fmt"
	"slices"
	"strings"
)

// source accumulates Java source text. It is append-only: callers may add
// lines and change the indentation depth, but never rewrite what was written.
type source struct {
	buf   strings.Builder
	depth int
}

// line writes text at the current depth. Empty text yields an empty line.
func (s *source) line(text string) {
	if text != "" {
		s.buf.WriteString(strings.Repeat("\t", s.depth))
		s.buf.WriteString(text)
	}
	s.buf.WriteByte('\n')
}

func (s *source) linef(format string, args ...any) {
	s.line(fmt.Sprintf(format, args...))
}

// open writes text and indents the following lines.
func (s *source) open(text string) {
	s.line(text)
	s.depth++
}

// close unindents and writes text.
func (s *source) close(text string) {
	s.depth--
	s.line(text)
}

// continued writes each item on its own continuation line, two levels deeper
// than the current depth, and ends the last item with suffix.
func (s *source) continued(items []string, sep, suffix string) {
	s.depth += 2
	for i, item := range items {
		if i == len(items)-1 {
			s.line(item + suffix)
		} else {
			s.line(item + sep)
		}
	}
	s.depth -= 2
}

func (s *source) String() string { return s.buf.String() }

// chain is an immutable method-call chain such as
// "return session" ".find(Person.class, id)".
type chain struct {
	head  string
	calls []string
}

// with returns a copy of the chain extended by call.
func (c chain) with(call string) chain {
	return chain{head: c.head, calls: append(slices.Clip(c.calls), call)}
}

// withf is with using a format.
func (c chain) withf(format string, args ...any) chain {
	return c.with(fmt.Sprintf(format, args...))
}

// render writes the chain as a statement: on one line when it has at most one
// call, otherwise one call per continuation line.
func (c chain) render(s *source) {
	if len(c.calls) <= 1 {
		s.line(c.head + strings.Join(c.calls, "") + ";")
		return
	}
	s.line(c.head)
	s.continued(c.calls, "", ";")
}
