package inject

import (
	"testing"
)

// Benchmark registration.
func BenchmarkRegister_Constructor(b *testing.B) {
	for i := 0; i < b.N; i++ {
		reg := NewRegistry()
		_ = ConfigureTransient[IComplex, *Complex](reg, WithConstructor(NewComplex))
	}
}

func BenchmarkRegister_Fields(b *testing.B) {
	for i := 0; i < b.N; i++ {
		reg := NewRegistry()
		_ = ConfigureTransient[*Report, *Report](reg)
	}
}

func benchmarkGraph(b *testing.B, scope Scope) *Resolver {
	b.Helper()

	reg := NewRegistry()
	_ = reg.Register(TypeOf[IBasic](), TypeOf[*Basic](), scope, WithConstructor(NewBasic))
	_ = reg.Register(TypeOf[IComplex](), TypeOf[*Complex](), scope, WithConstructor(NewComplex))
	_ = reg.Register(TypeOf[IMoreComplex](), TypeOf[*MoreComplex](), scope, WithConstructor(NewMoreComplex))

	return NewResolver(reg)
}

// Benchmark resolution.
func BenchmarkCreate_Singleton_Cached(b *testing.B) {
	r := benchmarkGraph(b, Singleton)

	// Warm up cache
	_, _ = Create[IMoreComplex](r)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Create[IMoreComplex](r)
	}
}

func BenchmarkCreate_Scoped(b *testing.B) {
	r := benchmarkGraph(b, Scoped)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Create[IMoreComplex](r)
	}
}

func BenchmarkCreate_Transient(b *testing.B) {
	r := benchmarkGraph(b, Transient)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = Create[IMoreComplex](r)
	}
}

func BenchmarkCreate_Singleton_Parallel(b *testing.B) {
	r := benchmarkGraph(b, Singleton)
	_, _ = Create[IMoreComplex](r)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = Create[IMoreComplex](r)
		}
	})
}

func BenchmarkValidate(b *testing.B) {
	r := benchmarkGraph(b, Transient)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = r.Registry().Validate()
	}
}
