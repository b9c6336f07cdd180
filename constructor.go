package inject

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

// injectTag marks struct fields that take part in an automatic constructor plan.
//
// Example:
//
//	type ReportService struct {
//	    Store  Store   `inject:""`
//	    Clock  Clock   `inject:""`
//	    Prefix string  // left at its zero value
//	}
const injectTag = "inject"

// constructorInfo holds an analyzed constructor: its ordered parameter
// contracts and a uniform way to invoke it.
type constructorInfo struct {
	name   string
	params []reflect.Type
	call   func(args []reflect.Value) (reflect.Value, error)
}

// arity returns the number of parameters the constructor takes.
func (c *constructorInfo) arity() int {
	return len(c.params)
}

// analyzeConstructor inspects a constructor function producing concrete. The
// function must return the concrete value, optionally followed by an error.
func analyzeConstructor(constructor any, concrete reflect.Type) (*constructorInfo, error) {
	if constructor == nil {
		return nil, errors.New("constructor cannot be nil")
	}

	fnValue := reflect.ValueOf(constructor)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return nil, fmt.Errorf("constructor must be a function, got %T", constructor)
	}

	if fnType.IsVariadic() {
		return nil, errors.New("variadic constructors are not supported")
	}

	hasError := false

	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return nil, errors.New("second return value must be error")
		}

		hasError = true
	default:
		return nil, fmt.Errorf("constructor must return (T) or (T, error), got %d return values", fnType.NumOut())
	}

	out := fnType.Out(0)
	if !out.AssignableTo(concrete) {
		return nil, fmt.Errorf("constructor returns %s, not assignable to %s", out, concrete)
	}

	params := make([]reflect.Type, fnType.NumIn())
	for i := range params {
		params[i] = fnType.In(i)
	}

	return &constructorInfo{
		name:   funcName(fnValue),
		params: params,
		call: func(args []reflect.Value) (reflect.Value, error) {
			results := fnValue.Call(args)

			if hasError {
				if errResult := results[1]; !errResult.IsNil() {
					return reflect.Value{}, errResult.Interface().(error)
				}
			}

			return convertTo(results[0], concrete), nil
		},
	}, nil
}

// selectConstructor picks the candidate with the fewest parameters. Ties go
// to the candidate declared first.
func selectConstructor(candidates []*constructorInfo) *constructorInfo {
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		if candidate.arity() < best.arity() {
			best = candidate
		}
	}

	return best
}

// fieldConstructor derives a constructor from the concrete struct's fields
// tagged `inject`, in declaration order. A struct without tagged fields gets
// a zero-arity constructor.
func fieldConstructor(concrete reflect.Type) (*constructorInfo, error) {
	structType := concrete
	isPtr := structType.Kind() == reflect.Pointer
	if isPtr {
		structType = structType.Elem()
	}

	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%s is not a struct; supply a constructor or a factory", concrete)
	}

	var (
		params  []reflect.Type
		indices []int
	)

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if _, ok := field.Tag.Lookup(injectTag); !ok {
			continue
		}

		if !field.IsExported() {
			return nil, fmt.Errorf("field %s.%s tagged %q must be exported", structType.Name(), field.Name, injectTag)
		}

		params = append(params, field.Type)
		indices = append(indices, i)
	}

	return &constructorInfo{
		name:   "fields of " + concrete.String(),
		params: params,
		call: func(args []reflect.Value) (reflect.Value, error) {
			ptr := reflect.New(structType)
			value := ptr.Elem()

			for i, index := range indices {
				value.Field(index).Set(args[i])
			}

			if isPtr {
				return ptr, nil
			}

			return value, nil
		},
	}, nil
}

// convertTo widens v to typ when the two differ only by naming.
func convertTo(v reflect.Value, typ reflect.Type) reflect.Value {
	if v.Type() == typ {
		return v
	}

	out := reflect.New(typ).Elem()
	out.Set(v)

	return out
}

func funcName(fn reflect.Value) string {
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return f.Name()
	}

	return fn.Type().String()
}
