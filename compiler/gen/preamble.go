package gen

import (
	"fmt"
	"strings"
	"unicode/utf16"
)

// preamble opens the method: modifiers, return type, name and parameters.
func (f *Finder) preamble(s *source) {
	if f.Spec.BelongsToRepository {
		s.line("@Override")
	}
	var b strings.Builder
	if f.Spec.BelongsToRepository {
		b.WriteString("public ")
	} else {
		b.WriteString("public static ")
	}
	if f.Spec.Nonnull && f.strategy.SingleResult(f) && !f.Spec.Reactive {
		b.WriteString("@" + f.imports.Import(TypeNonnull) + " ")
	}
	b.WriteString(f.ReturnType())
	b.WriteString(" ")
	b.WriteString(f.Spec.Method)
	b.WriteString("(")
	b.WriteString(f.parameters())
	b.WriteString(") {")
	s.open(b.String())
}

// ReturnType returns the display form of the return type. A reactive finder
// wraps the strategy's type, and only that type, in a Uni.
func (f *Finder) ReturnType() string {
	typ := f.strategy.ReturnType(f)
	if f.Spec.Reactive {
		return f.imports.Import(TypeUni) + "<" + typ + ">"
	}
	return typ
}

// parameters formats the parameter list.
func (f *Finder) parameters() string {
	params := make([]string, len(f.Spec.ParamNames))
	for i, name := range f.Spec.ParamNames {
		params[i] = f.imports.Import(f.Spec.ParamTypes[i]) + " " + name
	}
	return strings.Join(params, ", ")
}

// signatureKey lists the erased, fully-qualified parameter types of the
// finder. It identifies the declared method in @see references and in the
// named-query constant.
func (f *Finder) signatureKey() string {
	types := make([]string, len(f.Spec.ParamTypes))
	for i, t := range f.Spec.ParamTypes {
		types[i] = eraseGenerics(t)
	}
	return strings.Join(types, ",")
}

// javaString quotes s as a Java string literal. Non-ASCII runes become
// \u escapes, using surrogate pairs outside the basic plane.
func javaString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r > 0x7e:
			for _, u := range utf16.Encode([]rune{r}) {
				fmt.Fprintf(&b, `\u%04x`, u)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
