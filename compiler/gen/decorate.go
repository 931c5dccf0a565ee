package gen

// QueryState tells whether the object at the end of a call chain already
// exposes the native API (fetch profiles, pages, orders) or still needs to be
// unwrapped to a selection query first.
type QueryState uint8

const (
	// StateRaw is a plain persistence-API object.
	StateRaw QueryState = iota
	// StateUnwrapped is a native object.
	StateUnwrapped
)

// String returns the state name.
func (s QueryState) String() string {
	if s == StateUnwrapped {
		return "unwrapped"
	}
	return "raw"
}

// initialState is the state of the bare session handle.
func (f *Finder) initialState() QueryState {
	if f.Spec.EntityManager {
		return StateRaw
	}
	return StateUnwrapped
}

// unwrapSession converts an entity-manager style session to the native
// session when the strategy needs the native session API.
func (f *Finder) unwrapSession(c chain, st QueryState) (chain, QueryState) {
	if !f.Spec.EntityManager || !f.strategy.NeedsNativeSession(f) {
		return c, st
	}
	return c.withf(".unwrap(%s.class)", f.imports.Import(TypeSession)), StateUnwrapped
}

// unwrapQuery coerces a raw query to a selection query. An unwrapped chain is
// returned unchanged.
func (f *Finder) unwrapQuery(c chain, st QueryState) (chain, QueryState) {
	if st == StateUnwrapped {
		return c, st
	}
	return c.withf(".unwrap(%s.class)", f.imports.Import(TypeSelectionQuery)), StateUnwrapped
}

// enableFetchProfiles activates every configured fetch profile.
func (f *Finder) enableFetchProfiles(c chain, st QueryState) (chain, QueryState) {
	if len(f.Spec.FetchProfiles) == 0 {
		return c, st
	}
	c, st = f.unwrapQuery(c, st)
	for _, profile := range f.Spec.FetchProfiles {
		c = c.withf(".enableFetchProfile(%s)", javaString(profile))
	}
	return c, st
}

// translation maps a checked persistence exception to its unchecked
// data-access equivalent.
type translation struct {
	from, to string
}

// translations returns the exception translations of the finder, most
// specific first.
func (f *Finder) translations() []translation {
	var ts []translation
	if f.strategy.SingleResult(f) {
		ts = append(ts,
			translation{"jakarta.persistence.NoResultException", "jakarta.data.exceptions.EmptyResultException"},
			translation{"jakarta.persistence.NonUniqueResultException", "jakarta.data.exceptions.NonUniqueResultException"},
		)
	}
	return append(ts, translation{"jakarta.persistence.PersistenceException", "jakarta.data.exceptions.DataException"})
}

// blockingGuard reports whether exceptions are translated by a try block.
// Reactive finders translate failures of the returned Uni instead.
func (f *Finder) blockingGuard() bool {
	return f.Spec.WrapsExceptions && !f.Spec.Reactive
}

// openGuard opens the try block spanning the whole method body.
func (f *Finder) openGuard(s *source) {
	if f.blockingGuard() {
		s.open("try {")
	}
}

// closeGuard closes the try block and writes its catch clauses.
func (f *Finder) closeGuard(s *source) {
	if !f.blockingGuard() {
		return
	}
	s.close("}")
	for _, t := range f.translations() {
		s.open("catch (" + f.imports.Import(t.from) + " exception) {")
		s.line("throw new " + f.imports.Import(t.to) + "(exception.getMessage(), exception);")
		s.close("}")
	}
}

// translateFailures appends failure transformations to a reactive chain.
func (f *Finder) translateFailures(c chain) chain {
	if !f.Spec.WrapsExceptions || !f.Spec.Reactive {
		return c
	}
	for _, t := range f.translations() {
		c = c.withf(".onFailure(%s.class)", f.imports.Import(t.from)).
			withf(".transform(exception -> new %s(exception.getMessage(), exception))", f.imports.Import(t.to))
	}
	return c
}
