package gen

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ConstantName derives the named-query constant of a finder from its method
// name and the names of its ordinary parameters, e.g.
//
//	ConstantName("findByNameAndAge", []string{"name", "age"})
//	// FIND_BY_NAME_AND_AGE_BY_NAME_AND_AGE
//
// The _BY_ segment stays when there are no ordinary parameters: findByName()
// gives FIND_BY_NAME_BY_ and find(name) gives FIND_BY_NAME.
func ConstantName(method string, ordinary []string) string {
	name := upperUnderscore(method)
	parts := make([]string, len(ordinary))
	for i, p := range ordinary {
		parts[i] = upper(lastSegment(p))
	}
	return name + "_BY_" + strings.Join(parts, "_AND_")
}

// upperUnderscore converts a lower camel case identifier to upper snake case.
// An underscore goes before every upper-case rune that follows a rune that is
// not upper-case, so "findByID" becomes "FIND_BY_ID".
func upperUnderscore(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	wasLower := false
	for _, r := range s {
		isUpper := unicode.IsUpper(r)
		if wasLower && isUpper {
			b.WriteByte('_')
		}
		b.WriteRune(r)
		wasLower = !isUpper
	}
	return upper(b.String())
}

// upper upper-cases s with the root locale. A Caser is stateful, so a new one
// is created per call.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// lastSegment strips any qualifying prefix of an attribute path.
func lastSegment(path string) string {
	if i := strings.LastIndexAny(path, pathDelimiter+"."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// firstSegment returns the top-level attribute of a path.
func firstSegment(path string) string {
	if i := strings.Index(path, pathDelimiter); i > 0 {
		return path[:i]
	}
	return path
}

// displayPath renders an attribute path with dots.
func displayPath(path string) string {
	return strings.ReplaceAll(path, pathDelimiter, ".")
}

// pathDelimiter separates the segments of a parameter naming a nested
// attribute, e.g. "address$city". It keeps the parameter a valid identifier.
const pathDelimiter = "$"

var javaKeywords = names(
	"abstract", "assert", "boolean", "break", "byte", "case", "catch", "char",
	"class", "const", "continue", "default", "do", "double", "else", "enum",
	"extends", "false", "final", "finally", "float", "for", "goto", "if",
	"implements", "import", "instanceof", "int", "interface", "long", "native",
	"new", "null", "package", "private", "protected", "public", "return",
	"short", "static", "strictfp", "super", "switch", "synchronized", "this",
	"throw", "throws", "transient", "true", "try", "void", "volatile", "while", "_",
)

// isJavaIdentifier reports whether s can name a Java method or parameter.
// Nested attribute paths qualify since they are joined with pathDelimiter.
func isJavaIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if _, ok := javaKeywords[s]; ok {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_', r == '$':
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
