package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelang/forge/lang/value"
)

func TestNumberDisplay(t *testing.T) {
	require.Equal(t, "3", value.Number(3).Display())
	require.Equal(t, "3.5", value.Number(3.5).Display())
	require.Equal(t, "-2", value.Number(-2).Display())
}

func TestTruth(t *testing.T) {
	require.True(t, value.Truth(value.Boolean(true)))
	require.False(t, value.Truth(value.Boolean(false)))
	require.True(t, value.Truth(value.Number(1)))
	require.False(t, value.Truth(value.Number(0)))
	require.True(t, value.Truth(value.String("x")))
	require.False(t, value.Truth(value.String("")))
	require.False(t, value.Truth(value.Nil))
	require.True(t, value.Truth(value.NewArray([]value.Value{value.Number(1)})))
	require.False(t, value.Truth(value.NewArray(nil)))
}

func TestEqualByValue(t *testing.T) {
	require.True(t, value.Equal(value.Number(1), value.Number(1)))
	require.False(t, value.Equal(value.Number(1), value.Number(2)))
	require.True(t, value.Equal(value.String("a"), value.String("a")))
	require.True(t, value.Equal(value.Nil, value.Null{}))
}

func TestEqualArraysByIdentity(t *testing.T) {
	a := value.NewArray([]value.Value{value.Number(1)})
	b := value.NewArray([]value.Value{value.Number(1)})
	require.True(t, value.Equal(a, a))
	require.False(t, value.Equal(a, b))
}

func TestEqualClassesByName(t *testing.T) {
	a := value.NewClass("Foo", nil)
	b := value.NewClass("Foo", nil)
	require.True(t, value.Equal(a, b))
}

func TestLookupOrder(t *testing.T) {
	cls := value.NewClass("Foo", nil)
	cls.Fields.Put("x", value.Number(1))
	cls.Methods["greet"] = &value.FuncDescriptor{Name: "greet", Params: []string{"self"}}
	inst := value.NewInstance(cls)

	v, ok := value.Lookup(inst, inst, "x")
	require.True(t, ok)
	require.Equal(t, value.Number(1), v)

	inst.Fields.Put("x", value.Number(2))
	v, ok = value.Lookup(inst, inst, "x")
	require.True(t, ok)
	require.Equal(t, value.Number(2), v)

	v, ok = value.Lookup(inst, inst, "greet")
	require.True(t, ok)
	m, ok := v.(*value.Method)
	require.True(t, ok)
	require.Same(t, inst, m.Receiver)

	_, ok = value.Lookup(inst, inst, "nope")
	require.False(t, ok)
}

func TestKindStrings(t *testing.T) {
	require.Equal(t, "number", value.KindNumber.String())
	require.Equal(t, "dll", value.KindNativeLibrary.String())
}
