package inject

// Configure registers T as the transient implementation of contract C.
func Configure[C, T any](r *Registry, opts ...Option) error {
	return ConfigureTransient[C, T](r, opts...)
}

// ConfigureTransient registers T as the implementation of C, building a new
// instance for every reference.
//
// Example:
//
//	inject.ConfigureTransient[Reporter, *CSVReporter](reg, inject.WithConstructor(NewCSVReporter))
func ConfigureTransient[C, T any](r *Registry, opts ...Option) error {
	return r.Register(TypeOf[C](), TypeOf[T](), Transient, opts...)
}

// ConfigureScoped registers T as the implementation of C, sharing one
// instance within each Create call.
func ConfigureScoped[C, T any](r *Registry, opts ...Option) error {
	return r.Register(TypeOf[C](), TypeOf[T](), Scoped, opts...)
}

// ConfigureSingleton registers T as the implementation of C, sharing one
// instance for the lifetime of the resolver.
func ConfigureSingleton[C, T any](r *Registry, opts ...Option) error {
	return r.Register(TypeOf[C](), TypeOf[T](), Singleton, opts...)
}

// IsConfigured reports whether contract C is registered.
func IsConfigured[C any](r *Registry) bool {
	return r.IsRegistered(TypeOf[C]())
}

// SpecificationOf returns the Specification registered for contract C.
func SpecificationOf[C any](r *Registry) (*Specification, bool) {
	return r.Lookup(TypeOf[C]())
}
