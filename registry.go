package inject

import (
	"reflect"
	"slices"
	"strings"
	"sync"

	"go.uber.org/multierr"
)

// Registry maps contract identities to the Specification used to build them.
// Registering a contract again replaces its Specification wholesale.
//
// A Registry is expected to be populated during a single-threaded
// composition phase before resolution begins.
type Registry struct {
	specs   map[reflect.Type]*Specification
	acyclic map[reflect.Type]bool // memoized cycle checks, reset on Register
	mu      sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs:   make(map[reflect.Type]*Specification),
		acyclic: make(map[reflect.Type]bool),
	}
}

// Register validates that concrete satisfies contract and stores how to build
// it. Without options, the plan comes from concrete's `inject` tagged fields.
// Nothing is constructed.
func (r *Registry) Register(contract, concrete reflect.Type, scope Scope, opts ...Option) error {
	if contract == nil || concrete == nil {
		return ErrInvalidRegistration(contract, "contract and concrete types are required")
	}

	if !scope.Valid() {
		return ErrInvalidRegistration(contract, "unknown scope "+scope.String())
	}

	path, ok := satisfies(contract, concrete)
	if !ok {
		return ErrInvalidMapping(contract, concrete)
	}

	reg := &registration{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(reg)
		}
	}

	if reg.err != nil {
		return ErrInvalidRegistration(contract, reg.err.Error())
	}

	spec, err := newSpecification(contract, concrete, scope, path, reg)
	if err != nil {
		return ErrInvalidRegistration(contract, err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.specs[contract] = spec
	clear(r.acyclic)

	return nil
}

// IsRegistered reports whether contract has a Specification.
func (r *Registry) IsRegistered(contract reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.specs[contract]

	return ok
}

// Lookup returns the Specification registered for contract.
func (r *Registry) Lookup(contract reflect.Type) (*Specification, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[contract]

	return spec, ok
}

// Contracts returns all registered contracts sorted by name.
func (r *Registry) Contracts() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedContracts()
}

// Inspect returns diagnostic information about a contract's Specification.
func (r *Registry) Inspect(contract reflect.Type) (SpecInfo, bool) {
	spec, ok := r.Lookup(contract)
	if !ok {
		return SpecInfo{Contract: typeName(contract)}, false
	}

	return spec.Info(), true
}

// Graph returns the dependency graph formed by the constructor plans.
func (r *Registry) Graph() *DependencyGraph {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.graph()
}

// Validate checks the whole registry without building anything: every plan
// entry must be registered and no plan may depend on itself. All problems are
// returned together.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs error

	for _, contract := range r.sortedContracts() {
		spec := r.specs[contract]
		if spec.constructor == nil {
			continue
		}

		for _, param := range spec.constructor.params {
			if _, ok := r.specs[param]; !ok {
				errs = multierr.Append(errs, ErrMissingDependency(param, spec.concrete))
			}
		}
	}

	if _, err := r.graph().TopologicalSort(); err != nil {
		errs = multierr.Append(errs, err)
	}

	return errs
}

// cycleFrom returns the dependency cycle reachable from contract, first and
// last element equal, or nil. Acyclic results are memoized until the next
// Register.
func (r *Registry) cycleFrom(contract reflect.Type) []reflect.Type {
	r.mu.RLock()
	ok := r.acyclic[contract]
	r.mu.RUnlock()

	if ok {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cycle := r.graph().CycleFrom(contract); cycle != nil {
		return cycle
	}

	r.acyclic[contract] = true

	return nil
}

// graph must be called with mu held.
func (r *Registry) graph() *DependencyGraph {
	g := NewDependencyGraph()

	for _, contract := range r.sortedContracts() {
		g.AddNode(contract, r.specs[contract].Plan())
	}

	return g
}

// sortedContracts must be called with mu held.
func (r *Registry) sortedContracts() []reflect.Type {
	contracts := make([]reflect.Type, 0, len(r.specs))
	for contract := range r.specs {
		contracts = append(contracts, contract)
	}

	slices.SortFunc(contracts, func(a, b reflect.Type) int {
		if c := strings.Compare(a.String(), b.String()); c != 0 {
			return c
		}

		return strings.Compare(a.PkgPath(), b.PkgPath())
	})

	return contracts
}
