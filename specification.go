package inject

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// Specification describes how to build instances satisfying one contract.
// It is immutable once stored in a Registry.
type Specification struct {
	contract    reflect.Type
	concrete    reflect.Type
	scope       Scope
	style       BuildStyle
	constructor *constructorInfo
	factory     func() (any, error)
	path        []int // embedded field path when concrete derives from contract
}

// SpecInfo contains diagnostic information about a Specification.
type SpecInfo struct {
	Contract    string
	Concrete    string
	Scope       string
	BuildStyle  string
	Constructor string
	Plan        []string
}

// newSpecification turns collected options into a Specification.
func newSpecification(contract, concrete reflect.Type, scope Scope, path []int, reg *registration) (*Specification, error) {
	spec := &Specification{
		contract: contract,
		concrete: concrete,
		scope:    scope,
		path:     path,
	}

	usesConstructor := reg.explicitSeen || len(reg.candidates) > 0

	if reg.factory != nil {
		if usesConstructor {
			return nil, errors.New("factory and constructor options are mutually exclusive")
		}

		if !reg.factoryOut.AssignableTo(concrete) {
			return nil, fmt.Errorf("factory returns %s, not assignable to %s", reg.factoryOut, concrete)
		}

		spec.style = ViaFactory
		spec.factory = reg.factory

		return spec, nil
	}

	if concrete.Kind() == reflect.Interface {
		return nil, fmt.Errorf("concrete type %s is an interface; supply a factory", concrete)
	}

	spec.style = ViaConstructor

	switch {
	case reg.explicitSeen && len(reg.candidates) > 0:
		return nil, errors.New("explicit constructor and candidate constructors are mutually exclusive")

	case reg.explicitSeen:
		info, err := analyzeConstructor(reg.explicit, concrete)
		if err != nil {
			return nil, err
		}

		spec.constructor = info

	case len(reg.candidates) > 0:
		candidates := make([]*constructorInfo, 0, len(reg.candidates))
		for i, fn := range reg.candidates {
			info, err := analyzeConstructor(fn, concrete)
			if err != nil {
				return nil, fmt.Errorf("candidate %d: %w", i, err)
			}

			candidates = append(candidates, info)
		}

		spec.constructor = selectConstructor(candidates)

	default:
		info, err := fieldConstructor(concrete)
		if err != nil {
			return nil, err
		}

		spec.constructor = info
	}

	return spec, nil
}

// Contract returns the contract identity the specification is registered under.
func (s *Specification) Contract() reflect.Type { return s.contract }

// Concrete returns the type that is instantiated.
func (s *Specification) Concrete() reflect.Type { return s.concrete }

// Scope returns the lifetime policy.
func (s *Specification) Scope() Scope { return s.scope }

// BuildStyle reports whether instances come from a factory or a constructor.
func (s *Specification) BuildStyle() BuildStyle { return s.style }

// Plan returns the ordered parameter contracts of the selected constructor.
// It is empty for factory specifications.
func (s *Specification) Plan() []reflect.Type {
	if s.constructor == nil {
		return nil
	}

	return slices.Clone(s.constructor.params)
}

// Info returns a diagnostic snapshot of the specification.
func (s *Specification) Info() SpecInfo {
	info := SpecInfo{
		Contract:   typeName(s.contract),
		Concrete:   typeName(s.concrete),
		Scope:      s.scope.String(),
		BuildStyle: s.style.String(),
	}

	if s.constructor != nil {
		info.Constructor = s.constructor.name

		info.Plan = make([]string, len(s.constructor.params))
		for i, p := range s.constructor.params {
			info.Plan[i] = typeName(p)
		}
	}

	return info
}
