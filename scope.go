package inject

import (
	"fmt"
	"strings"
)

// Scope is the lifetime policy of a registered contract.
type Scope int

const (
	// Transient builds a new instance for every reference in the graph.
	Transient Scope = iota + 1
	// Scoped shares one instance across a single Create call tree.
	Scoped
	// Singleton shares one instance for the lifetime of the Resolver.
	Singleton
)

// String returns the lowercase scope name.
func (s Scope) String() string {
	switch s {
	case Transient:
		return "transient"
	case Scoped:
		return "scoped"
	case Singleton:
		return "singleton"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined scopes.
func (s Scope) Valid() bool {
	return s >= Transient && s <= Singleton
}

// ParseScope parses a scope name, ignoring case.
func ParseScope(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "transient":
		return Transient, nil
	case "scoped":
		return Scoped, nil
	case "singleton":
		return Singleton, nil
	default:
		return 0, fmt.Errorf("unknown scope %q", name)
	}
}

// BuildStyle tells the resolver how a specification produces instances.
type BuildStyle int

const (
	// ViaConstructor assembles the constructor plan and calls the constructor.
	ViaConstructor BuildStyle = iota
	// ViaFactory calls a zero-argument factory.
	ViaFactory
)

func (b BuildStyle) String() string {
	if b == ViaFactory {
		return "factory"
	}

	return "constructor"
}
