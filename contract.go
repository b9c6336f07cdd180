package inject

import (
	"reflect"
	"slices"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// TypeOf returns the contract identity of T. Unlike reflect.TypeOf it works
// for interface types, which have no dynamic value to inspect.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// typeName returns a human-readable name for a contract or concrete type.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}

// satisfies reports whether concrete can stand in for contract. Interface
// contracts need concrete to implement them. Other contracts need concrete to
// be the same type or to embed it; the returned path locates the embedded
// field so the built value can be narrowed to the contract.
func satisfies(contract, concrete reflect.Type) ([]int, bool) {
	if contract == concrete {
		return nil, true
	}

	if contract.Kind() == reflect.Interface {
		return nil, concrete.Implements(contract)
	}

	return embedPath(concrete, contract)
}

// embedPath finds contract among the anonymous fields of concrete, walking
// value-embedded structs breadth first so the shallowest match wins.
func embedPath(concrete, contract reflect.Type) ([]int, bool) {
	root := concrete
	addressable := false

	if root.Kind() == reflect.Pointer {
		root = root.Elem()
		addressable = true
	}

	if root.Kind() != reflect.Struct {
		return nil, false
	}

	return findEmbedded(root, contract, addressable, nil)
}

func findEmbedded(st, contract reflect.Type, addressable bool, prefix []int) ([]int, bool) {
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.Anonymous || !field.IsExported() {
			continue
		}

		if field.Type == contract {
			return append(slices.Clone(prefix), i), true
		}

		// *Base is reachable from an addressable struct embedding Base.
		if addressable && contract.Kind() == reflect.Pointer && field.Type == contract.Elem() {
			return append(slices.Clone(prefix), i), true
		}
	}

	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.Anonymous || !field.IsExported() || field.Type.Kind() != reflect.Struct {
			continue
		}

		if path, ok := findEmbedded(field.Type, contract, addressable, append(slices.Clone(prefix), i)); ok {
			return path, true
		}
	}

	return nil, false
}

// upcast narrows a built concrete value to the embedded contract value at path.
func upcast(v reflect.Value, path []int, contract reflect.Type) reflect.Value {
	if len(path) == 0 {
		return v
	}

	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Zero(contract)
		}

		v = v.Elem()
	}

	field := v.FieldByIndex(path)
	if field.Type() != contract {
		field = field.Addr()
	}

	return field
}
