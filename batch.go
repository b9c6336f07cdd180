package inject

// Binding holds one contract registration for batch registration.
type Binding struct {
	register func(*Registry) error
}

// Bind creates a Binding of T as the implementation of contract C.
// This is a convenience function for RegisterAll.
//
// Example:
//
//	inject.RegisterAll(reg,
//	    inject.Bind[Clock, *SystemClock](inject.Singleton, inject.WithFactory(NewSystemClock)),
//	    inject.Bind[Reporter, *CSVReporter](inject.Transient, inject.WithConstructor(NewCSVReporter)),
//	)
func Bind[C, T any](scope Scope, opts ...Option) Binding {
	return Binding{
		register: func(r *Registry) error {
			return r.Register(TypeOf[C](), TypeOf[T](), scope, opts...)
		},
	}
}

// RegisterAll registers bindings in order and stops at the first failure.
// Bindings registered before the failure stay registered.
func RegisterAll(reg *Registry, bindings ...Binding) error {
	for _, b := range bindings {
		if b.register == nil {
			continue
		}

		if err := b.register(reg); err != nil {
			return err
		}
	}
	return nil
}
