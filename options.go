package inject

import (
	"errors"
	"reflect"
)

// Option configures how a registration builds its instances.
type Option interface {
	apply(*registration)
}

// registration collects options before they are turned into a Specification.
type registration struct {
	factory      func() (any, error)
	factoryOut   reflect.Type
	explicit     any
	candidates   []any
	explicitSeen bool
	err          error
}

// optionFunc is a function adapter for Option
type optionFunc func(*registration)

func (f optionFunc) apply(r *registration) { f(r) }

func (r *registration) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// WithFactory builds instances by calling fn with no arguments.
//
// Example:
//
//	inject.ConfigureSingleton[Clock, *SystemClock](reg,
//	    inject.WithFactory(func() *SystemClock { return &SystemClock{} }),
//	)
func WithFactory[T any](fn func() T) Option {
	return optionFunc(func(r *registration) {
		if fn == nil {
			r.fail(errors.New("factory cannot be nil"))
			return
		}

		r.setFactory(TypeOf[T](), func() (any, error) {
			return fn(), nil
		})
	})
}

// WithFactoryE is WithFactory for factories that can fail.
func WithFactoryE[T any](fn func() (T, error)) Option {
	return optionFunc(func(r *registration) {
		if fn == nil {
			r.fail(errors.New("factory cannot be nil"))
			return
		}

		r.setFactory(TypeOf[T](), func() (any, error) {
			return fn()
		})
	})
}

func (r *registration) setFactory(out reflect.Type, fn func() (any, error)) {
	if r.factory != nil {
		r.fail(errors.New("multiple factories provided"))
		return
	}

	r.factory = fn
	r.factoryOut = out
}

// WithConstructor fixes the constructor used to build instances. Its
// parameter types, in order, become the constructor plan.
//
// Example:
//
//	inject.ConfigureTransient[Reporter, *CSVReporter](reg,
//	    inject.WithConstructor(NewCSVReporter), // func(Store, Clock) *CSVReporter
//	)
func WithConstructor(fn any) Option {
	return optionFunc(func(r *registration) {
		if r.explicitSeen {
			r.fail(errors.New("multiple explicit constructors provided"))
			return
		}

		r.explicit = fn
		r.explicitSeen = true
	})
}

// WithConstructors offers candidate constructors. The one with the fewest
// parameters is used; on a tie the one listed first wins.
func WithConstructors(fns ...any) Option {
	return optionFunc(func(r *registration) {
		if len(fns) == 0 {
			r.fail(errors.New("no candidate constructors provided"))
			return
		}

		r.candidates = append(r.candidates, fns...)
	})
}
