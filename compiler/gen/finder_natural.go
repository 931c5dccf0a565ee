package gen

import (
	"fmt"
	"strings"
)

// naturalIDFinder finds an entity by its natural identifier:
//
//	session.byNaturalId(Person.class).using(Person_.ssn, ssn).load()
//	session.find(Person.class, Identifier.id(Person_.ssn, ssn))  // reactive
type naturalIDFinder struct{}

func (naturalIDFinder) Kind() Kind { return KindNaturalID }

func (naturalIDFinder) SingleResult(*Finder) bool { return true }

func (naturalIDFinder) ReturnType(f *Finder) string { return f.imports.Import(f.Spec.Entity) }

func (naturalIDFinder) NeedsNativeSession(f *Finder) bool { return !f.Spec.Reactive }

func (naturalIDFinder) Check(f *Finder) error {
	if err := f.rejectSpecial(); err != nil {
		return err
	}
	spec := f.Spec
	switch {
	case len(f.ordinaryIndexes()) == 0:
		return NewFinderError(spec.Method, "", "a natural id finder takes at least one attribute parameter")
	case len(spec.OrderBys) > 0:
		return NewFinderError(spec.Method, "", "a natural id finder cannot be ordered")
	case spec.Stateless():
		return NewFinderError(spec.Method, "", "a natural id finder needs a stateful session")
	case spec.Reactive && len(spec.FetchProfiles) > 0:
		return NewFinderError(spec.Method, "", "fetch profiles need a blocking session for natural id finders")
	}
	for _, i := range f.ordinaryIndexes() {
		if name := spec.ParamNames[i]; strings.Contains(name, pathDelimiter) {
			return NewFinderError(spec.Method, name, "a natural id attribute must be a top-level attribute")
		}
	}
	return nil
}

func (naturalIDFinder) Prepare(*Finder, *source) {}

func (naturalIDFinder) CreateQuery(f *Finder, c chain, st QueryState) (chain, QueryState) {
	if f.Spec.Reactive {
		return c, st
	}
	return c.withf(".byNaturalId(%s)", f.entityClass()), st
}

func (naturalIDFinder) ApplySpecial(_ *Finder, c chain, st QueryState) (chain, QueryState) {
	return c, st
}

func (naturalIDFinder) Terminal(f *Finder, c chain) chain {
	metamodel := f.imports.Import(f.Spec.Entity + "_")
	if f.Spec.Reactive {
		identifier := f.imports.Import(TypeIdentifier)
		ids := make([]string, 0, len(f.kinds))
		for _, i := range f.ordinaryIndexes() {
			name := f.Spec.ParamNames[i]
			ids = append(ids, fmt.Sprintf("%s.id(%s.%s, %s)", identifier, metamodel, name, name))
		}
		id := ids[0]
		if len(ids) > 1 {
			id = identifier + ".composite(" + strings.Join(ids, ", ") + ")"
		}
		return c.withf(".find(%s, %s)", f.entityClass(), id)
	}
	for _, i := range f.ordinaryIndexes() {
		name := f.Spec.ParamNames[i]
		c = c.withf(".using(%s.%s, %s)", metamodel, name, name)
	}
	return c.with(".load()")
}
