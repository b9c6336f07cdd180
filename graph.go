package inject

import (
	"reflect"
	"slices"
)

// DependencyGraph records which contracts each contract's constructor plan
// depends on.
type DependencyGraph struct {
	nodes map[reflect.Type][]reflect.Type
	order []reflect.Type // Preserve insertion order
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[reflect.Type][]reflect.Type),
	}
}

// AddNode adds a contract with its dependencies. Adding a contract twice
// replaces its dependencies but keeps its original position.
func (g *DependencyGraph) AddNode(contract reflect.Type, dependencies []reflect.Type) {
	if _, exists := g.nodes[contract]; !exists {
		g.order = append(g.order, contract)
	}

	g.nodes[contract] = dependencies
}

// GetDependencies returns the dependencies of a contract.
func (g *DependencyGraph) GetDependencies(contract reflect.Type) []reflect.Type {
	return g.nodes[contract]
}

// HasNode checks if a contract exists in the graph.
func (g *DependencyGraph) HasNode(contract reflect.Type) bool {
	_, ok := g.nodes[contract]

	return ok
}

// TopologicalSort returns contracts so that every contract follows its
// dependencies. Independent contracts keep insertion order. Dependencies
// without a node are skipped.
func (g *DependencyGraph) TopologicalSort() ([]reflect.Type, error) {
	w := newGraphWalk(g)

	for _, contract := range g.order {
		if err := w.visit(contract); err != nil {
			return nil, err
		}
	}

	return w.result, nil
}

// CycleFrom returns the first cycle reachable from start, beginning and
// ending with the same contract, or nil when the subgraph is acyclic.
func (g *DependencyGraph) CycleFrom(start reflect.Type) []reflect.Type {
	w := newGraphWalk(g)
	if err := w.visit(start); err != nil {
		return w.cycle
	}

	return nil
}

// graphWalk holds the state of one depth-first traversal.
type graphWalk struct {
	graph    *DependencyGraph
	visited  map[reflect.Type]bool
	visiting map[reflect.Type]bool
	stack    []reflect.Type
	result   []reflect.Type
	cycle    []reflect.Type
}

func newGraphWalk(g *DependencyGraph) *graphWalk {
	return &graphWalk{
		graph:    g,
		visited:  make(map[reflect.Type]bool),
		visiting: make(map[reflect.Type]bool),
		result:   make([]reflect.Type, 0, len(g.nodes)),
	}
}

// visit performs DFS traversal.
func (w *graphWalk) visit(contract reflect.Type) error {
	if w.visited[contract] {
		return nil
	}

	if w.visiting[contract] {
		start := slices.Index(w.stack, contract)
		w.cycle = append(slices.Clone(w.stack[start:]), contract)

		return ErrCyclicDependency(w.cycle)
	}

	deps, ok := w.graph.nodes[contract]
	if !ok {
		// Unregistered dependency, reported separately
		return nil
	}

	w.visiting[contract] = true
	w.stack = append(w.stack, contract)

	for _, dep := range deps {
		if err := w.visit(dep); err != nil {
			return err
		}
	}

	w.stack = w.stack[:len(w.stack)-1]
	w.visiting[contract] = false
	w.visited[contract] = true
	w.result = append(w.result, contract)

	return nil
}
