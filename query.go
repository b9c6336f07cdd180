package inject

import (
	"reflect"
	"slices"
)

// SpecQuery defines criteria for querying specifications.
type SpecQuery struct {
	// Scope filters by lifetime. Zero matches all scopes.
	Scope Scope

	// BuildStyle filters by how instances are built. Nil matches both.
	BuildStyle *BuildStyle

	// DependsOn keeps specifications whose constructor plan contains this
	// contract. Nil matches all specifications.
	DependsOn reflect.Type
}

// Query returns diagnostic information about the specifications matching
// the query, sorted by contract name.
//
// Example:
//
//	// Find every singleton built by a factory
//	factory := inject.ViaFactory
//	infos := inject.Query(reg, inject.SpecQuery{
//	    Scope:      inject.Singleton,
//	    BuildStyle: &factory,
//	})
func Query(reg *Registry, query SpecQuery) []SpecInfo {
	var results []SpecInfo

	for _, contract := range reg.Contracts() {
		spec, ok := reg.Lookup(contract)
		if !ok {
			continue
		}

		// Filter by scope
		if query.Scope != 0 && spec.Scope() != query.Scope {
			continue
		}

		// Filter by build style
		if query.BuildStyle != nil && spec.BuildStyle() != *query.BuildStyle {
			continue
		}

		// Filter by dependency
		if query.DependsOn != nil && !slices.Contains(spec.Plan(), query.DependsOn) {
			continue
		}

		results = append(results, spec.Info())
	}

	return results
}

// QueryContracts returns the contracts of the specifications matching the query.
func QueryContracts(reg *Registry, query SpecQuery) []string {
	results := Query(reg, query)
	names := make([]string, len(results))
	for i, info := range results {
		names[i] = info.Contract
	}
	return names
}

// FindByScope returns all specifications with a specific scope.
func FindByScope(reg *Registry, scope Scope) []SpecInfo {
	return Query(reg, SpecQuery{Scope: scope})
}

// FindDependents returns all specifications whose plan contains contract.
func FindDependents(reg *Registry, contract reflect.Type) []SpecInfo {
	return Query(reg, SpecQuery{DependsOn: contract})
}
