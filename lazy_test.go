package inject

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLazy_Get(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	require.NoError(t, ConfigureTransient[IBasic, *Basic](reg, WithFactory(func() *Basic {
		calls++
		return NewBasic()
	})))

	lazy := NewLazy[IBasic](NewResolver(reg))

	assert.False(t, lazy.IsResolved())
	assert.Equal(t, 0, calls)

	first, err := lazy.Get()
	require.NoError(t, err)
	second, err := lazy.Get()
	require.NoError(t, err)

	assert.True(t, lazy.IsResolved())
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "inject.IBasic", lazy.Contract())
}

func TestLazy_Error(t *testing.T) {
	lazy := NewLazy[IBasic](NewResolver(nil))

	_, err := lazy.Get()
	assert.ErrorIs(t, err, ErrUnregisteredContractSentinel)
	assert.True(t, lazy.IsResolved())

	assert.Panics(t, func() { lazy.MustGet() })
}

func TestLazy_Concurrent(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, ConfigureTransient[IBasic, *Basic](reg, WithConstructor(NewBasic)))

	lazy := NewLazy[IBasic](NewResolver(reg))

	results := make([]IBasic, 20)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i] = lazy.MustGet()
		}()
	}

	wg.Wait()

	for _, result := range results[1:] {
		assert.Same(t, results[0], result)
	}
}

func TestProvider_Provide(t *testing.T) {
	r := newComplexGraph(t, Scoped)

	provider := NewProvider[IMoreComplex](r)

	first, err := provider.Provide()
	require.NoError(t, err)
	second := provider.MustProvide()

	assert.NotSame(t, first, second)
	assert.NotSame(t, first.Basic(), second.Basic())
	assert.Same(t, first.Basic(), first.Complex().Basic())
	assert.Equal(t, "inject.IMoreComplex", provider.Contract())
}

func TestProvider_Error(t *testing.T) {
	provider := NewProvider[IBasic](NewResolver(nil))

	_, err := provider.Provide()
	assert.ErrorIs(t, err, ErrUnregisteredContractSentinel)
	assert.Panics(t, func() { provider.MustProvide() })
}
