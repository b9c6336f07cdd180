package inject

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deep derives from Basic through BasicSub.
type Deep struct {
	BasicSub

	Depth int
}

type pointerEmbed struct {
	*Basic
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, reflect.Interface, TypeOf[IBasic]().Kind())
	assert.Equal(t, reflect.TypeOf(&Basic{}), TypeOf[*Basic]())
	assert.Equal(t, "inject.IBasic", TypeOf[IBasic]().String())
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		name     string
		contract reflect.Type
		concrete reflect.Type
		wantPath []int
		wantOK   bool
	}{
		{"same type", TypeOf[*Basic](), TypeOf[*Basic](), nil, true},
		{"implements interface", TypeOf[IBasic](), TypeOf[*Basic](), nil, true},
		{"derived implements interface", TypeOf[IBasic](), TypeOf[*BasicSub](), nil, true},
		{"value does not implement", TypeOf[IBasic](), TypeOf[Basic](), nil, false},
		{"pointer base from pointer derived", TypeOf[*Basic](), TypeOf[*BasicSub](), []int{0}, true},
		{"value base from value derived", TypeOf[Basic](), TypeOf[BasicSub](), []int{0}, true},
		{"value base from pointer derived", TypeOf[Basic](), TypeOf[*BasicSub](), []int{0}, true},
		{"pointer base from value derived", TypeOf[*Basic](), TypeOf[BasicSub](), nil, false},
		{"grandparent", TypeOf[*Basic](), TypeOf[*Deep](), []int{0, 0}, true},
		{"pointer embed", TypeOf[*Basic](), TypeOf[pointerEmbed](), []int{0}, true},
		{"unrelated", TypeOf[*Basic](), TypeOf[*ASecondBasic](), nil, false},
		{"named field is not embedding", TypeOf[IComplex](), TypeOf[*Basic](), nil, false},
		{"non struct", TypeOf[*Basic](), TypeOf[int](), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := satisfies(tt.contract, tt.concrete)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPath, path)
		})
	}
}

func TestUpcast(t *testing.T) {
	deep := &Deep{BasicSub: BasicSub{Basic: Basic{kind: "deep"}}}

	v := upcast(reflect.ValueOf(deep), []int{0, 0}, TypeOf[*Basic]())

	basic, ok := v.Interface().(*Basic)
	require.True(t, ok)
	assert.Same(t, &deep.Basic, basic)
	assert.Equal(t, "deep", basic.Kind())
}

func TestUpcast_NilPointer(t *testing.T) {
	v := upcast(reflect.ValueOf((*BasicSub)(nil)), []int{0}, TypeOf[*Basic]())

	assert.True(t, v.IsNil())
}

func TestUpcast_NoPath(t *testing.T) {
	basic := NewBasic()

	v := upcast(reflect.ValueOf(basic), nil, TypeOf[*Basic]())

	assert.Same(t, basic, v.Interface())
}

func TestCreate_Grandparent(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, ConfigureSingleton[*Basic, *Deep](reg, WithFactory(func() *Deep {
		return &Deep{BasicSub: BasicSub{Basic: Basic{kind: "deep"}}, Depth: 3}
	})))
	r := NewResolver(reg)

	basic, err := Create[*Basic](r)
	require.NoError(t, err)
	assert.Equal(t, "deep", basic.Kind())
}
