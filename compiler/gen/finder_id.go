package gen

// idFinder finds an entity by identifier:
//
//	session.find(Person.class, id)
//	session.byId(Person.class).enableFetchProfile("p").load(id)
type idFinder struct{}

func (idFinder) Kind() Kind { return KindID }

func (idFinder) SingleResult(*Finder) bool { return true }

func (idFinder) ReturnType(f *Finder) string { return f.imports.Import(f.Spec.Entity) }

// NeedsNativeSession reports whether byId is used.
func (idFinder) NeedsNativeSession(f *Finder) bool { return len(f.Spec.FetchProfiles) > 0 }

func (idFinder) Check(f *Finder) error {
	if err := f.rejectSpecial(); err != nil {
		return err
	}
	spec := f.Spec
	switch {
	case len(f.ordinaryIndexes()) != 1:
		return NewFinderError(spec.Method, "", "an id finder takes exactly one identifier parameter")
	case len(spec.OrderBys) > 0:
		return NewFinderError(spec.Method, "", "an id finder cannot be ordered")
	case len(spec.FetchProfiles) > 0 && spec.Reactive:
		return NewFinderError(spec.Method, "", "fetch profiles need a blocking session for id finders")
	case len(spec.FetchProfiles) > 0 && spec.Stateless():
		return NewFinderError(spec.Method, "", "fetch profiles need a stateful session for id finders")
	}
	return nil
}

func (idFinder) Prepare(*Finder, *source) {}

func (idFinder) CreateQuery(f *Finder, c chain, st QueryState) (chain, QueryState) {
	if len(f.Spec.FetchProfiles) == 0 {
		return c, st
	}
	return c.withf(".byId(%s)", f.entityClass()), st
}

func (idFinder) ApplySpecial(_ *Finder, c chain, st QueryState) (chain, QueryState) { return c, st }

func (idFinder) Terminal(f *Finder, c chain) chain {
	id := f.Spec.ParamNames[f.ordinaryIndexes()[0]]
	switch {
	case len(f.Spec.FetchProfiles) > 0:
		return c.withf(".load(%s)", id)
	case f.Spec.Stateless():
		return c.withf(".get(%s, %s)", f.entityClass(), id)
	default:
		return c.withf(".find(%s, %s)", f.entityClass(), id)
	}
}
