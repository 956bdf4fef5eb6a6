package env_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/value"
)

func TestSetVarGetVarLocal(t *testing.T) {
	e := env.New()
	e.SetVar("x", value.Number(1))
	v, ok := e.GetVar("x")
	require.True(t, ok)
	require.Equal(t, value.Number(1), v)
}

func TestChildReadsThroughParent(t *testing.T) {
	parent := env.New()
	parent.SetVar("x", value.Number(1))
	child := parent.Child()

	v, ok := child.GetVar("x")
	require.True(t, ok)
	require.Equal(t, value.Number(1), v)
}

func TestChildAssignmentDoesNotLeakToParent(t *testing.T) {
	parent := env.New()
	child := parent.Child()
	child.SetVar("x", value.Number(1))

	_, ok := parent.GetVar("x")
	require.False(t, ok)

	v, ok := child.GetVar("x")
	require.True(t, ok)
	require.Equal(t, value.Number(1), v)
}

func TestChildInheritsFuncsBuiltinsClasses(t *testing.T) {
	parent := env.New()
	parent.DefineFunc(&value.FuncDescriptor{Name: "f"})
	parent.DefineBuiltin("b", func(args []value.Value, e *env.Environment) (value.Value, error) {
		return value.Nil, nil
	})
	parent.DefineClass(value.NewClass("C", nil))

	child := parent.Child()
	_, ok := child.GetFunc("f")
	require.True(t, ok)
	_, ok = child.GetBuiltin("b")
	require.True(t, ok)
	_, ok = child.GetClass("C")
	require.True(t, ok)

	child.DefineFunc(&value.FuncDescriptor{Name: "g"})
	_, ok = parent.GetFunc("g")
	require.False(t, ok)
}

func TestSnapshotRestoreRevertsVarsMemRegs(t *testing.T) {
	e := env.New()
	e.SetVar("x", value.Number(1))
	e.SetReg("r", 1)
	e.Mem()[0] = 42

	snap := e.Snapshot()

	e.SetVar("x", value.Number(2))
	e.SetReg("r", 2)
	e.Mem()[0] = 99

	e.Restore(snap)

	v, _ := e.GetVar("x")
	require.Equal(t, value.Number(1), v)
	rv, ok := e.GetReg("r")
	require.True(t, ok)
	require.Equal(t, int64(1), rv)
	require.Equal(t, byte(42), e.Mem()[0])
}

func TestGetRegUnsetIsNotOK(t *testing.T) {
	e := env.New()
	_, ok := e.GetReg("unset")
	require.False(t, ok)
}

func TestGetRegAfterSetRegIsOK(t *testing.T) {
	e := env.New()
	e.SetReg("r", 7)
	v, ok := e.GetReg("r")
	require.True(t, ok)
	require.Equal(t, int64(7), v)
}

func TestMemSizeIsFixed(t *testing.T) {
	e := env.New()
	require.Len(t, e.Mem(), env.MemSize)
}

func TestCacheLibraryRoundTrips(t *testing.T) {
	e := env.New()
	lib := &value.NativeLibrary{Path: "/lib/foo.so", Handle: 7}
	e.CacheLibrary(lib)

	got, ok := e.GetLibrary("/lib/foo.so")
	require.True(t, ok)
	require.Same(t, lib, got)
}
