package gen

import "strings"

// Java types the generator refers to.
const (
	TypeEntityManager          = "jakarta.persistence.EntityManager"
	TypeSession                = "org.hibernate.Session"
	TypeStatelessSession       = "org.hibernate.StatelessSession"
	TypeMutinySession          = "org.hibernate.reactive.mutiny.Mutiny.Session"
	TypeMutinyStatelessSession = "org.hibernate.reactive.mutiny.Mutiny.StatelessSession"
	TypeSelectionQuery         = "org.hibernate.query.SelectionQuery"
	TypeUni                    = "io.smallrye.mutiny.Uni"
	TypeList                   = "java.util.List"
	TypeIdentifier             = "org.hibernate.reactive.common.Identifier"
	TypeNonnull                = "jakarta.annotation.Nonnull"
	TypeGenerated              = "jakarta.annotation.Generated"
)

// ParamKind classifies a finder parameter by its declared type.
type ParamKind uint8

// Parameter kinds. Every kind but ParamOrdinary is special.
const (
	ParamOrdinary ParamKind = iota
	ParamSession
	ParamPage
	ParamKeyedPage
	ParamOrder
	ParamLimit
	ParamLockMode
	ParamPageRequest
	ParamSort
)

var paramKindNames = [...]string{
	ParamOrdinary:    "ordinary",
	ParamSession:     "session",
	ParamPage:        "page",
	ParamKeyedPage:   "keyed page",
	ParamOrder:       "order",
	ParamLimit:       "limit",
	ParamLockMode:    "lock mode",
	ParamPageRequest: "page request",
	ParamSort:        "sort",
}

// String returns the kind name.
func (k ParamKind) String() string {
	if int(k) < len(paramKindNames) {
		return paramKindNames[k]
	}
	return "unknown"
}

// Special reports whether parameters of this kind are infrastructure rather
// than entity attribute paths.
func (k ParamKind) Special() bool { return k != ParamOrdinary }

// specialTypes maps erased type names to their kind.
var specialTypes = map[string]ParamKind{
	TypeEntityManager:                  ParamSession,
	TypeSession:                        ParamSession,
	TypeStatelessSession:               ParamSession,
	TypeMutinySession:                  ParamSession,
	TypeMutinyStatelessSession:         ParamSession,
	"org.hibernate.query.Page":         ParamPage,
	"org.hibernate.query.KeyedPage":    ParamKeyedPage,
	"org.hibernate.query.Order":        ParamOrder,
	"jakarta.data.Limit":               ParamLimit,
	"jakarta.data.Sort":                ParamSort,
	"jakarta.data.Order":               ParamSort,
	"jakarta.data.page.PageRequest":    ParamPageRequest,
	"jakarta.persistence.LockModeType": ParamLockMode,
	"org.hibernate.LockMode":           ParamLockMode,
}

// ClassifyParam classifies a parameter by its declared type name only.
// Generic arguments and array or varargs suffixes are ignored, except that a
// list of orders is itself an order parameter.
func ClassifyParam(typeName string) ParamKind {
	base, args := splitGeneric(eraseArray(strings.TrimSpace(typeName)))
	if kind, ok := specialTypes[base]; ok {
		return kind
	}
	if base == TypeList && args != "" {
		if kind := ClassifyParam(args); kind == ParamOrder || kind == ParamSort {
			return kind
		}
	}
	return ParamOrdinary
}

// IsSpecialParam reports whether a parameter of the given type is special.
func IsSpecialParam(typeName string) bool {
	return ClassifyParam(typeName).Special()
}

// IsSessionType reports whether the type name denotes a session handle.
func IsSessionType(typeName string) bool {
	return ClassifyParam(typeName) == ParamSession
}

// eraseArray removes trailing array and varargs markers.
func eraseArray(t string) string {
	for {
		switch {
		case strings.HasSuffix(t, "..."):
			t = strings.TrimSpace(strings.TrimSuffix(t, "..."))
		case strings.HasSuffix(t, "[]"):
			t = strings.TrimSpace(strings.TrimSuffix(t, "[]"))
		default:
			return t
		}
	}
}

// elementType strips one trailing array or varargs marker and reports whether
// there was one.
func elementType(t string) (string, bool) {
	t = strings.TrimSpace(t)
	for _, suffix := range [...]string{"...", "[]"} {
		if strings.HasSuffix(t, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(t, suffix)), true
		}
	}
	return t, false
}

// eraseGenerics removes every generic argument list of a type expression.
func eraseGenerics(t string) string {
	var b strings.Builder
	depth := 0
	for _, r := range t {
		switch {
		case r == '<':
			depth++
		case r == '>':
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// splitGeneric splits "a.B<C<D>>" into "a.B" and "C<D>".
func splitGeneric(t string) (base, args string) {
	i := strings.IndexByte(t, '<')
	if i < 0 {
		return t, ""
	}
	j := strings.LastIndexByte(t, '>')
	if j < i {
		return strings.TrimSpace(t[:i]), ""
	}
	return strings.TrimSpace(t[:i]), strings.TrimSpace(t[i+1 : j])
}

var primitives = names("boolean", "byte", "short", "int", "long", "char", "float", "double")

func isPrimitive(t string) bool {
	_, ok := primitives[strings.TrimSpace(t)]
	return ok
}

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}
