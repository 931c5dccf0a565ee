package gen

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wsous/hibernate-orm-fork/compiler/load"
)

// Repository is the input of one generated unit: a repository interface to
// implement, or a holder of static finder helpers.
type Repository struct {
	Package string
	// Name is the simple name of the declaring type.
	Name    string
	Static  bool
	Session load.Session
	Finders []*FinderSpec
}

// QualifiedName returns the fully-qualified name of the declaring type.
func (r *Repository) QualifiedName() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "." + r.Name
}

// UnitName returns the simple name of the generated class.
func (r *Repository) UnitName() string { return r.Name + "_" }

// Path returns the path of the generated unit relative to the target.
func (r *Repository) Path() string {
	dir := filepath.FromSlash(strings.ReplaceAll(r.Package, ".", "/"))
	return filepath.Join(dir, r.UnitName()+".java")
}

// NewRepositories converts a loaded descriptor into generator input.
func NewRepositories(f *load.File) ([]*Repository, error) {
	repos := make([]*Repository, 0, len(f.Repositories))
	for _, lr := range f.Repositories {
		r := &Repository{
			Package: lr.Package,
			Name:    lr.Name,
			Static:  lr.Static,
			Session: lr.Session,
		}
		for _, lf := range lr.Finders {
			spec, err := newFinderSpec(r, lr, lf)
			if err != nil {
				return nil, fmt.Errorf("repository %s: %w", r.QualifiedName(), err)
			}
			r.Finders = append(r.Finders, spec)
		}
		repos = append(repos, r)
	}
	return repos, nil
}

func newFinderSpec(r *Repository, lr *load.Repository, lf *load.Finder) (*FinderSpec, error) {
	kind, err := ParseKind(lf.Kind)
	if err != nil {
		return nil, NewFinderError(lf.Name, "", err.Error())
	}
	// A session parameter takes precedence over the repository session.
	session := r.Session.Type
	for _, p := range lf.Params {
		if IsSessionType(p.Type) {
			session = eraseGenerics(p.Type)
		}
	}
	spec := &FinderSpec{
		Repository:          r.QualifiedName(),
		Method:              lf.Name,
		Entity:              qualify(r.Package, lf.Entity),
		Kind:                kind,
		FetchProfiles:       lf.FetchProfiles,
		SessionType:         session,
		SessionName:         r.Session.Name,
		BelongsToRepository: !r.Static,
		Reactive:            session == TypeMutinySession || session == TypeMutinyStatelessSession,
		EntityManager:       session == TypeEntityManager,
		WrapsExceptions:     lr.JakartaData,
		SingleResult:        lf.Single,
	}
	for _, p := range lf.Params {
		spec.ParamNames = append(spec.ParamNames, p.Name)
		spec.ParamTypes = append(spec.ParamTypes, p.Type)
	}
	for _, o := range lf.OrderBy {
		spec.OrderBys = append(spec.OrderBys, OrderBy{Path: o.Path, Descending: o.Desc, IgnoreCase: o.IgnoreCase})
	}
	return spec, nil
}

// qualify prefixes a simple type name with the repository package.
func qualify(pkg, typ string) string {
	if pkg == "" || strings.Contains(typ, ".") {
		return typ
	}
	return pkg + "." + typ
}

// Unit is a generated compilation unit.
type Unit struct {
	Repository *Repository
	Methods    []*Method
	// Failures holds one error per finder that could not be generated.
	Failures []error
	Source   []byte
}

// Path returns the path of the unit relative to the target.
func (u *Unit) Path() string { return u.Repository.Path() }

// GenerateUnit generates the implementation class of a repository. A finder
// failing its preconditions is left out and reported in Unit.Failures; the
// other finders are unaffected.
//
// A first pass collects every type the unit refers to, and the second
// reserves their simple names up front. A finder's text then depends on the
// other finders of the unit but not on their order.
func GenerateUnit(cfg *Config, r *Repository) *Unit {
	scratch := NewImportContext(r.Package)
	generateUnit(cfg, r, scratch)

	imports := NewImportContext(r.Package)
	imports.Reserve(scratch.Seen()...)
	return generateUnit(cfg, r, imports)
}

func generateUnit(cfg *Config, r *Repository, imports *ImportContext) *Unit {
	u := &Unit{Repository: r}
	taken := make(map[string]string)
	for _, spec := range r.Finders {
		spec = adjust(cfg, spec)
		f, err := NewFinder(spec, imports)
		if err != nil {
			u.Failures = append(u.Failures, NewGenerationError(r.UnitName(), spec.Method, "", err))
			continue
		}
		if prev, ok := taken[f.ConstantName()]; ok {
			u.Failures = append(u.Failures, NewGenerationError(r.UnitName(), spec.Method, "",
				&CollisionError{Constant: f.ConstantName(), Method: spec.Method, Previous: prev}))
			continue
		}
		taken[f.ConstantName()] = spec.Method
		u.Methods = append(u.Methods, f.Generate())
	}
	u.Source = u.render(cfg, imports)
	return u
}

// adjust applies configured features to a copy of spec.
func adjust(cfg *Config, spec *FinderSpec) *FinderSpec {
	cp := *spec
	if cfg.FeatureEnabled(FeatureNonnull.Name) {
		cp.Nonnull = true
	}
	if cfg.FeatureEnabled(FeatureDataExceptions.Name) {
		cp.WrapsExceptions = true
	}
	return &cp
}

// render assembles the unit. The body is rendered first since it registers
// the imports.
func (u *Unit) render(cfg *Config, imports *ImportContext) []byte {
	r := u.Repository
	var body source
	body.depth = 1
	for _, m := range u.Methods {
		body.line(m.ConstantDecl)
	}
	if !r.Static {
		session := imports.Import(r.Session.Type)
		if len(u.Methods) > 0 {
			body.line("")
		}
		body.line("protected final " + session + " " + r.Session.Name + ";")
		body.line("")
		body.open("public " + r.UnitName() + "(" + session + " " + r.Session.Name + ") {")
		body.line("this." + r.Session.Name + " = " + r.Session.Name + ";")
		body.close("}")
		body.line("")
		body.open("public " + session + " session() {")
		body.line("return " + r.Session.Name + ";")
		body.close("}")
	}
	for _, m := range u.Methods {
		body.line("")
		for _, l := range strings.Split(strings.TrimSuffix(m.Text, "\n"), "\n") {
			body.line(l)
		}
	}
	generated := imports.Import(TypeGenerated)

	var s source
	if cfg.Header != "" {
		for _, l := range strings.Split(strings.TrimSuffix(cfg.Header, "\n"), "\n") {
			s.line(l)
		}
	}
	if r.Package != "" {
		s.line("package " + r.Package + ";")
		s.line("")
	}
	if imps := imports.Imports(); len(imps) > 0 {
		for _, imp := range imps {
			s.line("import " + imp + ";")
		}
		s.line("")
	}
	s.line("/**")
	if r.Static {
		s.line(" * Finder helpers declared by {@link " + r.Name + "}.")
	} else {
		s.line(" * Implements repository {@link " + r.Name + "}.")
	}
	s.line(" **/")
	s.line("@" + generated + "(\"findergen\")")
	if r.Static {
		s.line("public abstract class " + r.UnitName() + " {")
	} else {
		s.line("public class " + r.UnitName() + " implements " + r.Name + " {")
	}
	s.line("")
	s.buf.WriteString(body.String())
	s.line("}")
	return []byte(s.String())
}
