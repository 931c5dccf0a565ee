package gen

import (
	"fmt"
	"strings"
)

// Kind selects the strategy generating a finder.
type Kind uint8

// Finder kinds.
const (
	// KindID finds an entity by its identifier.
	KindID Kind = iota
	// KindNaturalID finds an entity by its natural identifier.
	KindNaturalID
	// KindCriteria finds entities by matching attribute values.
	KindCriteria
)

var kindNames = [...]string{
	KindID:        "id",
	KindNaturalID: "natural-id",
	KindCriteria:  "criteria",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind parses a kind name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown finder kind %q", s)
}

// OrderBy is a static ordering of a criteria finder.
type OrderBy struct {
	Path       string // Attribute path, segments separated by '$' or '.'
	Descending bool
	IgnoreCase bool
}

// FinderSpec describes one declared finder method.
type FinderSpec struct {
	// Repository is the fully-qualified name of the declaring type.
	Repository string
	Method     string
	// Entity is the fully-qualified entity type name.
	Entity string
	Kind   Kind

	// ParamNames and ParamTypes are parallel. Names of ordinary parameters
	// are attribute paths; '$' separates nested attributes.
	ParamNames []string
	ParamTypes []string

	OrderBys      []OrderBy
	FetchProfiles []string

	SessionType string
	SessionName string

	BelongsToRepository bool
	Reactive            bool
	EntityManager       bool
	WrapsExceptions     bool

	// SingleResult selects getSingleResult for criteria finders.
	SingleResult bool
	// Nonnull annotates blocking single-result return types.
	Nonnull bool
}

// Validate checks the preconditions shared by all finder kinds.
func (s *FinderSpec) Validate() error {
	switch {
	case s.Method == "":
		return NewFinderError("", "", "missing method name")
	case s.Entity == "":
		return NewFinderError(s.Method, "", "missing entity type")
	case s.Repository == "":
		return NewFinderError(s.Method, "", "missing declaring type")
	case len(s.ParamNames) != len(s.ParamTypes):
		return NewFinderError(s.Method, "", fmt.Sprintf("%d parameter names but %d parameter types", len(s.ParamNames), len(s.ParamTypes)))
	case s.Reactive && s.EntityManager:
		return NewFinderError(s.Method, "", "a reactive session cannot be an entity manager")
	case int(s.Kind) >= len(kindNames):
		return NewFinderError(s.Method, "", fmt.Sprintf("unknown kind %d", s.Kind))
	}
	if !isJavaIdentifier(s.Method) {
		return NewFinderError(s.Method, "", "method name is not a Java identifier")
	}
	seen := make(map[string]bool, len(s.ParamNames))
	last := len(s.ParamNames) - 1
	for i, name := range s.ParamNames {
		switch {
		case name == "":
			return NewFinderError(s.Method, fmt.Sprint(i), "missing parameter name")
		case !isJavaIdentifier(name):
			return NewFinderError(s.Method, name, "parameter name is not a Java identifier")
		case strings.TrimSpace(s.ParamTypes[i]) == "":
			return NewFinderError(s.Method, name, "missing parameter type")
		case i != last && strings.HasSuffix(strings.TrimSpace(s.ParamTypes[i]), "..."):
			return NewFinderError(s.Method, name, "varargs parameter must be last")
		case seen[name]:
			return NewFinderError(s.Method, name, "duplicate parameter")
		}
		seen[name] = true
	}
	for _, profile := range s.FetchProfiles {
		if profile == "" {
			return NewFinderError(s.Method, "", "empty fetch profile name")
		}
	}
	return nil
}

// Stateless reports whether the session is stateless.
func (s *FinderSpec) Stateless() bool {
	return s.SessionType == TypeStatelessSession || s.SessionType == TypeMutinyStatelessSession
}

// Stage is a step of finder generation. Stages are passed strictly in order.
type Stage uint8

// Generation stages.
const (
	StageInit Stage = iota
	StageParametersClassified
	StageDocumentationEmitted
	StageSignatureEmitted
	StageBodyDecorated
	StageClosed
)

var stageNames = [...]string{
	StageInit:                 "init",
	StageParametersClassified: "parameters classified",
	StageDocumentationEmitted: "documentation emitted",
	StageSignatureEmitted:     "signature emitted",
	StageBodyDecorated:        "body decorated",
	StageClosed:               "closed",
}

// String returns the stage name.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// Strategy supplies the kind-specific parts of a finder. The Finder calls
// them in a fixed order:
//
//	Check                       (before any output)
//	Prepare                     statements ahead of the returned chain
//	CreateQuery                 after the session unwrap
//	ApplySpecial                after fetch-profile activation
//	Terminal                    the executing call
type Strategy interface {
	Kind() Kind
	// SingleResult reports whether the finder returns one entity.
	SingleResult(*Finder) bool
	// ReturnType returns the blocking return type in display form.
	ReturnType(*Finder) string
	// NeedsNativeSession reports whether the chain uses native session API.
	NeedsNativeSession(*Finder) bool
	// Check validates kind-specific preconditions.
	Check(*Finder) error
	Prepare(*Finder, *source)
	CreateQuery(*Finder, chain, QueryState) (chain, QueryState)
	ApplySpecial(*Finder, chain, QueryState) (chain, QueryState)
	Terminal(*Finder, chain) chain
}

var strategies = [...]Strategy{
	KindID:        idFinder{},
	KindNaturalID: naturalIDFinder{},
	KindCriteria:  criteriaFinder{},
}

// Finder generates one finder method.
type Finder struct {
	Spec *FinderSpec

	kinds    []ParamKind
	imports  *ImportContext
	strategy Strategy
	stage    Stage
	constant string
}

// Method is a generated finder method.
type Method struct {
	Name string
	// Constant is the named-query constant name.
	Constant string
	// ConstantDecl declares the constant as a Java field.
	ConstantDecl string
	// Text is the doc comment and method declaration, unindented.
	Text string
}

// NewFinder validates and classifies a finder. Every precondition is checked
// here, so Generate cannot fail.
func NewFinder(spec *FinderSpec, imports *ImportContext) (*Finder, error) {
	if spec == nil {
		return nil, NewFinderError("", "", "nil finder")
	}
	if imports == nil {
		return nil, NewFinderError(spec.Method, "", "nil import context")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	f := &Finder{
		Spec:     spec,
		imports:  imports,
		strategy: strategies[spec.Kind],
		kinds:    make([]ParamKind, len(spec.ParamTypes)),
	}
	sessions := 0
	for i, t := range spec.ParamTypes {
		f.kinds[i] = ClassifyParam(t)
		if f.kinds[i] == ParamSession {
			sessions++
		}
	}
	switch {
	case sessions > 1:
		return nil, NewFinderError(spec.Method, "", "more than one session parameter")
	case sessions == 0 && !spec.BelongsToRepository:
		return nil, NewFinderError(spec.Method, "", "a static finder needs a session parameter")
	case sessions == 0 && spec.SessionName == "":
		return nil, NewFinderError(spec.Method, "", "missing session name")
	}
	if err := f.strategy.Check(f); err != nil {
		return nil, err
	}
	f.constant = ConstantName(spec.Method, f.ordinaryNames())
	f.advance(StageParametersClassified)
	return f, nil
}

// GenerateFinder validates spec and generates its method.
func GenerateFinder(spec *FinderSpec, imports *ImportContext) (*Method, error) {
	f, err := NewFinder(spec, imports)
	if err != nil {
		return nil, err
	}
	return f.Generate(), nil
}

// Stage returns the current generation stage.
func (f *Finder) Stage() Stage { return f.stage }

// ConstantName returns the named-query constant of the finder.
func (f *Finder) ConstantName() string { return f.constant }

// ParamKinds returns the classification of every parameter.
func (f *Finder) ParamKinds() []ParamKind {
	return append([]ParamKind(nil), f.kinds...)
}

// Generate emits the method. It must be called once.
func (f *Finder) Generate() *Method {
	var s source
	f.javadoc(&s)
	f.advance(StageDocumentationEmitted)

	f.preamble(&s)
	f.advance(StageSignatureEmitted)

	f.openGuard(&s)
	f.strategy.Prepare(f, &s)
	c, st := chain{head: "return " + f.receiver()}, f.initialState()
	c, st = f.unwrapSession(c, st)
	c, st = f.strategy.CreateQuery(f, c, st)
	c, st = f.enableFetchProfiles(c, st)
	c, _ = f.strategy.ApplySpecial(f, c, st)
	c = f.strategy.Terminal(f, c)
	c = f.translateFailures(c)
	c.render(&s)
	f.closeGuard(&s)
	f.advance(StageBodyDecorated)

	s.close("}")
	f.advance(StageClosed)

	return &Method{
		Name:         f.Spec.Method,
		Constant:     f.constant,
		ConstantDecl: f.constantDecl(),
		Text:         s.String(),
	}
}

// advance moves to the next stage.
func (f *Finder) advance(next Stage) {
	if next != f.stage+1 {
		panic(fmt.Sprintf("findergen: finder %s cannot move from stage %q to %q", f.Spec.Method, f.stage, next))
	}
	f.stage = next
}

// constantDecl declares the named-query constant referring to the declared
// method.
func (f *Finder) constantDecl() string {
	return fmt.Sprintf("public static final String %s = %s;", f.constant,
		javaString("!"+f.Spec.Repository+"."+f.Spec.Method+"("+f.signatureKey()+")"))
}

// receiver is the session expression the chain starts from.
func (f *Finder) receiver() string {
	for i, k := range f.kinds {
		if k == ParamSession {
			return f.Spec.ParamNames[i]
		}
	}
	return f.Spec.SessionName
}

// ordinaryNames returns the names of the ordinary parameters in order.
func (f *Finder) ordinaryNames() []string {
	var out []string
	for i, k := range f.kinds {
		if !k.Special() {
			out = append(out, f.Spec.ParamNames[i])
		}
	}
	return out
}

// ordinaryIndexes returns the indexes of the ordinary parameters.
func (f *Finder) ordinaryIndexes() []int {
	var out []int
	for i, k := range f.kinds {
		if !k.Special() {
			out = append(out, i)
		}
	}
	return out
}

// entityClass is the class literal of the entity.
func (f *Finder) entityClass() string {
	return f.imports.Import(f.Spec.Entity) + ".class"
}

// rejectSpecial fails for special parameters other than the session.
func (f *Finder) rejectSpecial() error {
	for i, k := range f.kinds {
		if k.Special() && k != ParamSession {
			return NewFinderError(f.Spec.Method, f.Spec.ParamNames[i],
				fmt.Sprintf("%s parameters are not supported by %s finders", k, f.strategy.Kind()))
		}
	}
	return nil
}
