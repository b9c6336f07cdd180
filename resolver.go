package inject

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"
)

// Injector produces instances for contract identities.
type Injector interface {
	Resolve(contract reflect.Type) (any, error)
}

// Resolver builds instances from the specifications of a Registry and caches
// them by scope. A Resolver may be shared between goroutines once its
// registry is populated.
type Resolver struct {
	registry   *Registry
	singletons *singletonCache
	hooks      *hookChain
	logger     *zap.Logger
	guarded    bool
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used to trace builds. The default discards.
func WithLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHooks adds build hooks, called in the order given.
func WithHooks(hooks ...Hook) ResolverOption {
	return func(r *Resolver) {
		r.hooks.hooks = append(r.hooks.hooks, hooks...)
	}
}

// WithUnguardedRecursion disables cycle detection. A cyclic set of
// specifications then recurses until the stack is exhausted, unless a build
// hook or constructor ends it with an error. A singleton re-entered on its own
// build stack is constructed again rather than waiting on itself.
func WithUnguardedRecursion() ResolverOption {
	return func(r *Resolver) {
		r.guarded = false
	}
}

// NewResolver creates a resolver over reg.
func NewResolver(reg *Registry, opts ...ResolverOption) *Resolver {
	if reg == nil {
		reg = NewRegistry()
	}

	r := &Resolver{
		registry:   reg,
		singletons: newSingletonCache(),
		hooks:      &hookChain{},
		logger:     zap.NewNop(),
		guarded:    true,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// New creates a registry, lets configure populate it and returns a resolver
// over it.
//
// Example:
//
//	r, err := inject.New(func(reg *inject.Registry) error {
//	    return inject.ConfigureSingleton[Clock, *SystemClock](reg)
//	})
func New(configure func(*Registry) error, opts ...ResolverOption) (*Resolver, error) {
	reg := NewRegistry()

	if configure != nil {
		if err := configure(reg); err != nil {
			return nil, err
		}
	}

	return NewResolver(reg, opts...), nil
}

// Registry returns the registry the resolver reads from.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Singletons returns the number of cached singleton instances.
func (r *Resolver) Singletons() int {
	return r.singletons.len()
}

// Resolve builds an instance of contract. Each call is one resolution call
// tree: scoped instances are shared within it and never across calls.
func (r *Resolver) Resolve(contract reflect.Type) (any, error) {
	v, err := r.create(contract)
	if err != nil {
		return nil, err
	}

	return v.Interface(), nil
}

func (r *Resolver) create(contract reflect.Type) (reflect.Value, error) {
	res := newResolution()

	spec, ok := r.registry.Lookup(contract)
	if !ok {
		return reflect.Value{}, ErrUnregisteredContract(contract)
	}

	if r.guarded {
		if cycle := r.registry.cycleFrom(contract); cycle != nil && !r.cachedOnCycle(cycle) {
			return reflect.Value{}, ErrCyclicDependency(cycle)
		}
	}

	v, err := r.build(res, spec)
	if err != nil {
		r.logger.Debug("resolution failed",
			zap.Stringer("contract", contract),
			zap.Error(err),
		)

		return reflect.Value{}, err
	}

	if !v.Type().AssignableTo(contract) {
		return reflect.Value{}, ErrTypeMismatch(contract, v.Interface())
	}

	return v, nil
}

// cachedOnCycle reports whether a singleton on cycle is already cached. Its
// plan is never expanded again, so the build stack guard alone decides.
func (r *Resolver) cachedOnCycle(cycle []reflect.Type) bool {
	for _, contract := range cycle[:len(cycle)-1] {
		spec, ok := r.registry.Lookup(contract)
		if !ok || spec.scope != Singleton {
			continue
		}

		if _, ok := r.singletons.get(contract); ok {
			return true
		}
	}

	return false
}

// build returns an instance for spec, consulting the cache its scope uses.
func (r *Resolver) build(res *resolution, spec *Specification) (reflect.Value, error) {
	// Only reachable unguarded: the singleton flight for contract is held by
	// this goroutine further up the stack.
	reentered := slices.Contains(res.stack, spec.contract)

	if err := res.enter(spec.contract, r.guarded); err != nil {
		return reflect.Value{}, err
	}
	defer res.leave()

	switch spec.scope {
	case Singleton:
		if reentered {
			return r.construct(res, spec)
		}

		return r.singletons.getOrBuild(spec.contract, func() (reflect.Value, error) {
			return r.construct(res, spec)
		})

	case Scoped:
		if v, ok := res.scoped[spec.contract]; ok {
			return v, nil
		}

		v, err := r.construct(res, spec)
		if err != nil {
			return reflect.Value{}, err
		}

		res.scoped[spec.contract] = v

		return v, nil

	default:
		return r.construct(res, spec)
	}
}

// construct builds a new instance, running hooks around it.
func (r *Resolver) construct(res *resolution, spec *Specification) (reflect.Value, error) {
	ctx := context.Background()

	if err := r.hooks.beforeBuild(ctx, spec); err != nil {
		return reflect.Value{}, err
	}

	start := time.Now()
	v, err := r.instantiate(res, spec)

	var instance any
	if err == nil {
		instance = v.Interface()
	}

	if hookErr := r.hooks.afterBuild(ctx, spec, instance, err); hookErr != nil {
		return reflect.Value{}, hookErr
	}

	if err != nil {
		return reflect.Value{}, err
	}

	r.logger.Debug("built instance",
		zap.Stringer("contract", spec.contract),
		zap.Stringer("concrete", spec.concrete),
		zap.Stringer("scope", spec.scope),
		zap.Duration("elapsed", time.Since(start)),
	)

	return v, nil
}

// instantiate calls the factory or assembles the constructor plan.
func (r *Resolver) instantiate(res *resolution, spec *Specification) (reflect.Value, error) {
	var v reflect.Value

	switch spec.style {
	case ViaFactory:
		instance, err := spec.factory()
		if err != nil {
			return reflect.Value{}, NewBuildError(spec.contract, err)
		}

		v = reflect.ValueOf(instance)

	case ViaConstructor:
		args := make([]reflect.Value, len(spec.constructor.params))

		for i, param := range spec.constructor.params {
			dep, ok := r.registry.Lookup(param)
			if !ok {
				return reflect.Value{}, ErrMissingDependency(param, spec.concrete)
			}

			arg, err := r.build(res, dep)
			if err != nil {
				return reflect.Value{}, err
			}

			args[i] = arg
		}

		built, err := spec.constructor.call(args)
		if err != nil {
			return reflect.Value{}, NewBuildError(spec.contract, err)
		}

		v = built

	default:
		return reflect.Value{}, NewBuildError(spec.contract, fmt.Errorf("unknown build style %d", spec.style))
	}

	if !v.IsValid() {
		// A factory returned a nil interface
		return reflect.Zero(spec.contract), nil
	}

	return upcast(v, spec.path, spec.contract), nil
}

// Create builds an instance of T.
//
// Example:
//
//	svc, err := inject.Create[Reporter](resolver)
func Create[T any](inj Injector) (T, error) {
	var zero T

	contract := TypeOf[T]()
	if inj == nil {
		return zero, ErrUnregisteredContract(contract)
	}

	instance, err := inj.Resolve(contract)
	if err != nil {
		return zero, err
	}

	if instance == nil {
		return zero, nil
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, ErrTypeMismatch(contract, instance)
	}

	return typed, nil
}

// MustCreate builds an instance of T or panics - use only during startup.
func MustCreate[T any](inj Injector) T {
	instance, err := Create[T](inj)
	if err != nil {
		panic(fmt.Sprintf("failed to create %s: %v", TypeOf[T](), err))
	}

	return instance
}
