// Package inject resolves object graphs from declared build recipes.
//
// A Registry maps contracts (interface or struct types) to Specifications:
// the concrete type to build, its lifetime Scope and how to build it. A
// Resolver walks the constructor plan of a Specification, builds every
// dependency first and caches instances by scope.
//
// # Registering
//
// The plan of a Specification is the parameter list of its constructor:
//
//	reg := inject.NewRegistry()
//	err := inject.ConfigureSingleton[Clock, *SystemClock](reg,
//	    inject.WithFactory(func() *SystemClock { return &SystemClock{} }),
//	)
//	err = inject.ConfigureTransient[Reporter, *CSVReporter](reg,
//	    inject.WithConstructor(NewCSVReporter), // func(Clock) *CSVReporter
//	)
//
// When several constructors are offered with WithConstructors the one with
// the fewest parameters wins. Without options the plan is taken from the
// struct fields tagged `inject:""`.
//
// A concrete type satisfies a contract when it implements the contract
// interface, is the contract type itself or embeds the contract struct.
//
// # Resolving
//
//	resolver := inject.NewResolver(reg, inject.WithLogger(logger))
//	reporter, err := inject.Create[Reporter](resolver)
//
// Transient contracts are built for every reference. Scoped contracts are
// built once per Create call. Singletons are built once per Resolver, even
// under concurrent first use.
//
// # Errors
//
// Every error is an *Error carrying a code. Match them with errors.Is against
// the sentinels:
//
//	if errors.Is(err, inject.ErrMissingDependencySentinel) {
//	    // a constructor parameter was never registered
//	}
package inject
