package eval_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelang/forge/lang/builtin"
	"github.com/forgelang/forge/lang/env"
	"github.com/forgelang/forge/lang/eval"
	"github.com/forgelang/forge/lang/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	chunk, err := parser.Parse([]byte(src), "test.forge")
	require.NoError(t, err)

	var out bytes.Buffer
	e := env.New()
	builtin.Register(e, new(bytes.Buffer), &out)
	it := eval.New(&out, ".")
	err = it.Run(chunk, e)
	return out.String(), err
}

func TestArithmeticAndPrint(t *testing.T) {
	out, err := run(t, "print(1 + 2 * 3)\n")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestIfElse(t *testing.T) {
	out, err := run(t, "x = 5\nif x > 3:\n    print(\"big\")\nelse:\n    print(\"small\")\n")
	require.NoError(t, err)
	require.Equal(t, "big\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, err := run(t, "i = 0\nwhile i < 3:\n    print(i)\n    i = i + 1\n")
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestNumericForLoop(t *testing.T) {
	out, err := run(t, "for i = 1, 3 do\n    print(i)\n")
	require.NoError(t, err)
	require.Equal(t, "1\n2\n3\n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, err := run(t, "function double(x):\n    return x * 2\nprint(double(21))\n")
	require.NoError(t, err)
	require.Equal(t, "42\n", out)
}

func TestClassConstructAndMethod(t *testing.T) {
	src := `class Counter:
    count = 0
    function __init__(self):
        self.count = 0
    function bump(self):
        self.count = self.count + 1
        return self.count
c = Counter()
print(c.bump())
print(c.bump())
`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n", out)
}

func TestTryCatchRollsBackOnError(t *testing.T) {
	src := `x = 1
try:
    x = 2
    y = x / 0
catch:
    print(x)
`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestReturnInsideTryPropagates(t *testing.T) {
	src := `function f():
    try:
        return 1
    catch:
        return 2
print(f())
`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)
}

func TestForInSnapshotsArray(t *testing.T) {
	src := `a = array()
push(a, 1)
push(a, 2)
push(a, 3)
for v in a:
    print(v)
    push(a, 99)
print(length(a))
`
	out, err := run(t, src)
	require.NoError(t, err)
	require.Equal(t, "1\n2\n3\n6\n", out)
}

func TestClosuresAreNotReturnableValues(t *testing.T) {
	src := `function make():
    x = 10
    function inner():
        return x
    return inner
print(make()())
`
	_, err := run(t, src)
	require.Error(t, err)
}

func TestArrayAliasing(t *testing.T) {
	out, err := run(t, `a = array(1, 2)
b = a
push(b, 3)
print(length(a))
`)
	require.NoError(t, err)
	require.Equal(t, "3\n", out)
}

func TestModulusIsFloating(t *testing.T) {
	out, err := run(t, "print(7.5 % 2)\n")
	require.NoError(t, err)
	require.Equal(t, "1.5\n", out)
}

func TestUndefinedNameIsError(t *testing.T) {
	_, err := run(t, "print(missing)\n")
	require.Error(t, err)
}

func TestStringComparisonIsByLength(t *testing.T) {
	out, err := run(t, `print("ab" < "xyz")
`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}
