package inject

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Lazy wraps a dependency that is created on first access.
// This is useful for deferring expensive builds until they're actually needed.
type Lazy[T any] struct {
	injector Injector
	once     sync.Once
	value    T
	err      error
	resolved atomic.Bool
}

// NewLazy creates a new lazy dependency wrapper.
func NewLazy[T any](inj Injector) *Lazy[T] {
	return &Lazy[T]{injector: inj}
}

// Get creates the dependency and returns it.
// Creation happens only once; subsequent calls return the first result,
// including its error.
func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = Create[T](l.injector)
		l.resolved.Store(true)
	})

	return l.value, l.err
}

// MustGet creates the dependency and returns it, panicking on error.
func (l *Lazy[T]) MustGet() T {
	value, err := l.Get()
	if err != nil {
		panic(fmt.Sprintf("lazy dependency %s failed: %v", l.Contract(), err))
	}

	return value
}

// IsResolved returns true once Get has run.
func (l *Lazy[T]) IsResolved() bool {
	return l.resolved.Load()
}

// Contract returns the contract identity of the dependency.
func (l *Lazy[T]) Contract() string {
	return typeName(TypeOf[T]())
}

// Provider creates a dependency on each access.
// Each call is a separate resolution call tree, so scoped dependencies are
// never shared between two Provide calls.
type Provider[T any] struct {
	injector Injector
}

// NewProvider creates a new provider.
func NewProvider[T any](inj Injector) *Provider[T] {
	return &Provider[T]{injector: inj}
}

// Provide creates and returns an instance of the dependency.
func (p *Provider[T]) Provide() (T, error) {
	return Create[T](p.injector)
}

// MustProvide creates and returns an instance, panicking on error.
func (p *Provider[T]) MustProvide() T {
	value, err := p.Provide()
	if err != nil {
		panic(fmt.Sprintf("provider %s failed: %v", p.Contract(), err))
	}

	return value
}

// Contract returns the contract identity of the dependency.
func (p *Provider[T]) Contract() string {
	return typeName(TypeOf[T]())
}
