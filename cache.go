package inject

import (
	"reflect"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// singletonCache holds process-lifetime instances for one Resolver.
// Concurrent first resolutions of a contract share a single construction.
type singletonCache struct {
	instances map[reflect.Type]reflect.Value
	keys      map[reflect.Type]string
	flight    singleflight.Group
	mu        sync.RWMutex
}

func newSingletonCache() *singletonCache {
	return &singletonCache{
		instances: make(map[reflect.Type]reflect.Value),
		keys:      make(map[reflect.Type]string),
	}
}

func (c *singletonCache) get(contract reflect.Type) (reflect.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.instances[contract]

	return v, ok
}

func (c *singletonCache) set(contract reflect.Type, v reflect.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.instances[contract] = v
}

func (c *singletonCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.instances)
}

// flightKey maps a contract to a stable singleflight key. Type names are not
// unique across packages, so keys are assigned by identity.
func (c *singletonCache) flightKey(contract reflect.Type) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	key, ok := c.keys[contract]
	if !ok {
		key = strconv.Itoa(len(c.keys))
		c.keys[contract] = key
	}

	return key
}

// getOrBuild returns the cached instance or runs build once across all
// concurrent callers, storing the result before any caller sees it.
func (c *singletonCache) getOrBuild(contract reflect.Type, build func() (reflect.Value, error)) (reflect.Value, error) {
	if v, ok := c.get(contract); ok {
		return v, nil
	}

	result, err, _ := c.flight.Do(c.flightKey(contract), func() (any, error) {
		// Double-check after winning the flight
		if v, ok := c.get(contract); ok {
			return v, nil
		}

		v, err := build()
		if err != nil {
			return nil, err
		}

		c.set(contract, v)

		return v, nil
	})
	if err != nil {
		return reflect.Value{}, err
	}

	return result.(reflect.Value), nil
}

// resolution is the state of one Create call tree: its scoped instances and
// the contracts currently being built. It is never shared between calls.
type resolution struct {
	scoped map[reflect.Type]reflect.Value
	stack  []reflect.Type
}

func newResolution() *resolution {
	return &resolution{
		scoped: make(map[reflect.Type]reflect.Value),
	}
}

// enter pushes contract on the build stack, failing if it is already there.
func (r *resolution) enter(contract reflect.Type, guarded bool) error {
	if guarded {
		if i := slices.Index(r.stack, contract); i >= 0 {
			cycle := append(slices.Clone(r.stack[i:]), contract)
			return ErrCyclicDependency(cycle)
		}
	}

	r.stack = append(r.stack, contract)

	return nil
}

func (r *resolution) leave() {
	r.stack = r.stack[:len(r.stack)-1]
}
