package gen

import "strings"

// javadoc writes the documentation comment of a finder. Only ordinary
// parameters are mentioned; each links to the entity attribute named by the
// first segment of its path while showing the whole dotted path.
func (f *Finder) javadoc(s *source) {
	entity := f.imports.Import(f.Spec.Entity)
	ordinary := f.ordinaryNames()
	links := make([]string, len(ordinary))
	for i, path := range ordinary {
		links[i] = "{@link " + entity + "#" + firstSegment(path) + " " + displayPath(path) + "}"
	}
	s.line("/**")
	if len(links) == 0 {
		s.line(" * Find {@link " + entity + "}.")
	} else {
		s.line(" * Find {@link " + entity + "} by " + serialJoin(links) + ".")
	}
	s.line(" *")
	s.line(" * @see " + f.Spec.Repository + "#" + f.Spec.Method + "(" + f.signatureKey() + ")")
	s.line(" **/")
}

// serialJoin joins items as English prose: "a", "a and b", "a, b, and c".
func serialJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}
