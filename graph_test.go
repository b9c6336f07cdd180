package inject

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	nodeA struct{ id int }
	nodeB struct{ id int }
	nodeC struct{ id int }
	nodeD struct{ id int }
)

var (
	typeA = TypeOf[nodeA]()
	typeB = TypeOf[nodeB]()
	typeC = TypeOf[nodeC]()
	typeD = TypeOf[nodeD]()
)

func TestDependencyGraph_TopologicalSort_Simple(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeA, nil)
	g.AddNode(typeB, []reflect.Type{typeA})
	g.AddNode(typeC, []reflect.Type{typeB})

	result, err := g.TopologicalSort()
	require.NoError(t, err)

	// Should be in dependency order: a, b, c
	assert.Equal(t, []reflect.Type{typeA, typeB, typeC}, result)
}

func TestDependencyGraph_TopologicalSort_Complex(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeD, []reflect.Type{typeB, typeC})
	g.AddNode(typeB, []reflect.Type{typeA})
	g.AddNode(typeC, []reflect.Type{typeA})
	g.AddNode(typeA, nil)

	result, err := g.TopologicalSort()
	require.NoError(t, err)
	require.Len(t, result, 4)

	aIdx := slices.Index(result, typeA)
	bIdx := slices.Index(result, typeB)
	cIdx := slices.Index(result, typeC)
	dIdx := slices.Index(result, typeD)

	assert.Less(t, aIdx, bIdx)
	assert.Less(t, aIdx, cIdx)
	assert.Less(t, bIdx, dIdx)
	assert.Less(t, cIdx, dIdx)
}

func TestDependencyGraph_TopologicalSort_CircularDependency(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeA, []reflect.Type{typeB})
	g.AddNode(typeB, []reflect.Type{typeA})

	_, err := g.TopologicalSort()
	require.ErrorIs(t, err, ErrCyclicDependencySentinel)
	assert.Contains(t, err.Error(), "inject.nodeA -> inject.nodeB -> inject.nodeA")
}

func TestDependencyGraph_TopologicalSort_SelfReference(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeA, []reflect.Type{typeA})

	_, err := g.TopologicalSort()
	assert.ErrorIs(t, err, ErrCyclicDependencySentinel)
}

func TestDependencyGraph_TopologicalSort_SkipsMissingNodes(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeB, []reflect.Type{typeA})

	result, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{typeB}, result)
}

func TestDependencyGraph_AddNode_Replace(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeA, nil)
	g.AddNode(typeB, nil)
	g.AddNode(typeA, []reflect.Type{typeB})

	assert.Equal(t, []reflect.Type{typeB}, g.GetDependencies(typeA))

	result, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []reflect.Type{typeB, typeA}, result)
}

func TestDependencyGraph_HasNode(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeA, nil)

	assert.True(t, g.HasNode(typeA))
	assert.False(t, g.HasNode(typeB))
	assert.Nil(t, g.GetDependencies(typeB))
}

func TestDependencyGraph_CycleFrom(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeA, []reflect.Type{typeB})
	g.AddNode(typeB, []reflect.Type{typeC})
	g.AddNode(typeC, []reflect.Type{typeB})
	g.AddNode(typeD, nil)

	assert.Equal(t, []reflect.Type{typeB, typeC, typeB}, g.CycleFrom(typeA))
	assert.Nil(t, g.CycleFrom(typeD))
	assert.Nil(t, g.CycleFrom(TypeOf[IBasic]()))
}

func TestDependencyGraph_CycleError(t *testing.T) {
	g := NewDependencyGraph()
	g.AddNode(typeA, []reflect.Type{typeB})
	g.AddNode(typeB, []reflect.Type{typeC})
	g.AddNode(typeC, []reflect.Type{typeA})

	_, err := g.TopologicalSort()

	var injErr *Error
	require.True(t, errors.As(err, &injErr))
	assert.Equal(t, []string{"inject.nodeA", "inject.nodeB", "inject.nodeC", "inject.nodeA"}, injErr.Ctx["cycle"])
}
