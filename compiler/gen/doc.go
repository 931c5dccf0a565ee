// Package gen generates the Java implementation of Hibernate and Jakarta Data
// finder methods.
//
// A finder method is declared on a repository interface (or on a class holding
// static helpers) and looks up entity instances by identifier, by natural
// identifier, or by matching attributes through a criteria query. The package
// turns each declaration into the text of a complete method: Javadoc, a
// metadata constant, the signature and a body issuing the query.
//
// # Pipeline
//
// Each finder moves through a fixed sequence of stages:
//
//	NewFinder        parameters classified, preconditions checked
//	   ↓
//	Generate         Javadoc, signature, body
//	   ↓
//	GenerateUnit     methods of one repository assembled into a class
//	   ↓
//	Writer.Write     units written below Config.Target in parallel
//
// All preconditions are checked by NewFinder, so Generate never fails and a
// rejected finder produces no text at all. GenerateUnit leaves rejected
// finders out of the unit and reports them in Unit.Failures.
//
// # Strategies
//
// The body of a finder depends on its Kind:
//
//   - KindID: Session.find, StatelessSession.get or, with fetch profiles,
//     Session.byId(...).load(id)
//   - KindNaturalID: Session.byNaturalId(...).using(...).load()
//   - KindCriteria: a CriteriaQuery with one equality predicate per ordinary
//     parameter
//
// The query expression is decorated by a chain of stages, each taking and
// returning the state of the query (raw JPA or unwrapped Hibernate). Session
// unwrapping, fetch profiles, pagination, ordering and exception translation
// are such stages.
//
// # Error Handling
//
//   - FinderError: a finder declaration fails its preconditions
//   - ConfigError: invalid generator configuration
//   - GenerationError: a finder of a unit could not be generated
//   - CollisionError: two finders of a unit share a metadata constant
//
// # Configuration
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./build/generated"),
//	    gen.WithFeatures(gen.FeatureIncremental),
//	    gen.WithWorkers(4),
//	)
//	report, err := gen.Generate(ctx, cfg, repos)
package gen
