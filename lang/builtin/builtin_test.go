package builtin_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelang/forge/lang/builtin"
	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/value"
)

func newEnv(stdin string) (*env.Environment, *bytes.Buffer) {
	e := env.New()
	var out bytes.Buffer
	builtin.Register(e, strings.NewReader(stdin), &out)
	return e, &out
}

func call(t *testing.T, e *env.Environment, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	fn, ok := e.GetBuiltin(name)
	require.True(t, ok, "builtin %q not registered", name)
	return fn(args, e)
}

func TestArrayPushPopLength(t *testing.T) {
	e, _ := newEnv("")
	arr, err := call(t, e, "array")
	require.NoError(t, err)

	_, err = call(t, e, "push", arr, value.Number(1))
	require.NoError(t, err)
	_, err = call(t, e, "push", arr, value.Number(2))
	require.NoError(t, err)

	n, err := call(t, e, "length", arr)
	require.NoError(t, err)
	require.Equal(t, value.Number(2), n)

	last, err := call(t, e, "pop", arr)
	require.NoError(t, err)
	require.Equal(t, value.Number(2), last)
}

func TestPopEmptyArrayErrors(t *testing.T) {
	e, _ := newEnv("")
	arr, _ := call(t, e, "array")
	_, err := call(t, e, "pop", arr)
	require.Error(t, err)
}

func TestToNumberUnparseableReturnsZero(t *testing.T) {
	e, _ := newEnv("")
	n, err := call(t, e, "tonumber", value.String("not-a-number"))
	require.NoError(t, err)
	require.Equal(t, value.Number(0), n)
}

func TestToNumberParsesValidString(t *testing.T) {
	e, _ := newEnv("")
	n, err := call(t, e, "tonumber", value.String("3.5"))
	require.NoError(t, err)
	require.Equal(t, value.Number(3.5), n)
}

func TestTypeBuiltin(t *testing.T) {
	e, _ := newEnv("")
	k, err := call(t, e, "type", value.Number(1))
	require.NoError(t, err)
	require.Equal(t, value.String("number"), k)
}

func TestMemReadWriteRoundTrip(t *testing.T) {
	e, _ := newEnv("")
	_, err := call(t, e, "mem_write", value.Number(10), value.Number(42))
	require.NoError(t, err)
	v, err := call(t, e, "mem_read", value.Number(10))
	require.NoError(t, err)
	require.Equal(t, value.Number(42), v)
}

func TestMemReadOutOfBoundsErrors(t *testing.T) {
	e, _ := newEnv("")
	_, err := call(t, e, "mem_read", value.Number(env.MemSize))
	require.Error(t, err)
}

func TestRegsRoundTrip(t *testing.T) {
	e, _ := newEnv("")
	_, err := call(t, e, "set_reg", value.String("r0"), value.Number(99))
	require.NoError(t, err)
	v, err := call(t, e, "get_reg", value.String("r0"))
	require.NoError(t, err)
	require.Equal(t, value.Number(99), v)
}

func TestGetRegUnsetErrors(t *testing.T) {
	e, _ := newEnv("")
	_, err := call(t, e, "get_reg", value.String("never_set"))
	require.Error(t, err)
}

func TestMallocPeekPoke(t *testing.T) {
	e, _ := newEnv("")
	ptr, err := call(t, e, "malloc", value.Number(8))
	require.NoError(t, err)

	_, err = call(t, e, "poke", ptr, value.Number(0), value.Number(255))
	require.NoError(t, err)

	v, err := call(t, e, "peek", ptr, value.Number(0))
	require.NoError(t, err)
	require.Equal(t, value.Number(255), v)
}

func TestPeek32LittleEndian(t *testing.T) {
	e, _ := newEnv("")
	ptr, _ := call(t, e, "malloc", value.Number(8))
	call(t, e, "poke", ptr, value.Number(0), value.Number(0x01))
	call(t, e, "poke", ptr, value.Number(1), value.Number(0x02))
	call(t, e, "poke", ptr, value.Number(2), value.Number(0x03))
	call(t, e, "poke", ptr, value.Number(3), value.Number(0x04))

	v, err := call(t, e, "peek32", ptr, value.Number(0))
	require.NoError(t, err)
	require.Equal(t, value.Number(0x04030201), v)
}

func TestFreeInvalidatesPointer(t *testing.T) {
	e, _ := newEnv("")
	ptr, _ := call(t, e, "malloc", value.Number(4))
	_, err := call(t, e, "free", ptr)
	require.NoError(t, err)

	_, err = call(t, e, "peek", ptr, value.Number(0))
	require.Error(t, err)
}

func TestInputReadsLineAndWritesPrompt(t *testing.T) {
	e, out := newEnv("hello\n")
	v, err := call(t, e, "input", value.String("> "))
	require.NoError(t, err)
	require.Equal(t, value.String("hello"), v)
	require.Equal(t, "> ", out.String())
}

func TestStringHelpers(t *testing.T) {
	e, _ := newEnv("")
	v, err := call(t, e, "upper", value.String("abc"))
	require.NoError(t, err)
	require.Equal(t, value.String("ABC"), v)

	v, err = call(t, e, "contains", value.String("hello world"), value.String("world"))
	require.NoError(t, err)
	require.Equal(t, value.Boolean(true), v)
}

func TestExitIsAStub(t *testing.T) {
	e, _ := newEnv("")
	_, err := call(t, e, "exit")
	require.Error(t, err)
}
