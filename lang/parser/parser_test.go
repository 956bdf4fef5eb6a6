package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelang/forge/lang/ast"
	"github.com/forgelang/forge/lang/parser"
)

func parse(t *testing.T, src string) *ast.Chunk {
	t.Helper()
	chunk, err := parser.Parse([]byte(src), "test.forge")
	require.NoError(t, err)
	return chunk
}

func TestParseAssignAndPrint(t *testing.T) {
	chunk := parse(t, "x = 1 + 2\nprint(x)\n")
	require.Len(t, chunk.Stmts, 2)
	_, ok := chunk.Stmts[0].(*ast.AssignStmt)
	require.True(t, ok)
	_, ok = chunk.Stmts[1].(*ast.PrintStmt)
	require.True(t, ok)
}

func TestParseExprPrecedence(t *testing.T) {
	chunk := parse(t, "x = 1 + 2 * 3\n")
	assign := chunk.Stmts[0].(*ast.AssignStmt)
	bin := assign.Right.(*ast.BinaryExpr)
	require.Equal(t, "+", bin.Op.String())
	_, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok, "right side of + should be the * subexpression")
}

func TestParseIfElifElse(t *testing.T) {
	src := "if x:\n    y = 1\nelif z:\n    y = 2\nelse:\n    y = 3\n"
	chunk := parse(t, src)
	ifStmt := chunk.Stmts[0].(*ast.IfStmt)
	require.NotNil(t, ifStmt.Else)
	elif, ok := ifStmt.Else.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, elif.Else)
}

func TestParseNumericFor(t *testing.T) {
	chunk := parse(t, "for i = 1, 10 do\n    print(i)\n")
	forStmt := chunk.Stmts[0].(*ast.NumForStmt)
	require.Equal(t, "i", forStmt.Var)
}

func TestParseForIn(t *testing.T) {
	chunk := parse(t, "for v in a:\n    print(v)\n")
	forStmt := chunk.Stmts[0].(*ast.ForInStmt)
	require.Equal(t, "v", forStmt.Var)
}

func TestParseTryCatch(t *testing.T) {
	chunk := parse(t, "try:\n    x = 1\ncatch:\n    x = 2\n")
	_, ok := chunk.Stmts[0].(*ast.TryStmt)
	require.True(t, ok)
}

func TestParseClassSplitsFieldsAndMethods(t *testing.T) {
	src := "class Foo(Bar):\n    x = 1\n    function greet(self):\n        return self.x\n"
	chunk := parse(t, src)
	cls := chunk.Stmts[0].(*ast.ClassStmt)
	require.Equal(t, "Bar", cls.Parent)
	require.Len(t, cls.Fields, 1)
	require.Len(t, cls.Methods, 1)
}

func TestParseImportDLL(t *testing.T) {
	chunk := parse(t, `from dll "./libfoo.so" import add as add_numbers
`)
	stmt := chunk.Stmts[0].(*ast.ImportDLLStmt)
	require.Equal(t, "./libfoo.so", stmt.Path)
	require.Equal(t, "add", stmt.Name)
	require.Equal(t, "add_numbers", stmt.Alias)
}

func TestParseLoadAll(t *testing.T) {
	chunk := parse(t, "load from utils all\n")
	stmt := chunk.Stmts[0].(*ast.LoadStmt)
	require.Equal(t, "utils", stmt.Folder)
	require.True(t, stmt.Target.All)
}

func TestParseLoadSingleFile(t *testing.T) {
	chunk := parse(t, "load from utils math.forge\n")
	stmt := chunk.Stmts[0].(*ast.LoadStmt)
	require.Equal(t, "utils", stmt.Folder)
	require.Equal(t, "math.forge", stmt.Target.File)
}

func TestParsePostfixChain(t *testing.T) {
	chunk := parse(t, "x = a.b(1)[0]\n")
	assign := chunk.Stmts[0].(*ast.AssignStmt)
	idx := assign.Right.(*ast.IndexExpr)
	_, ok := idx.Prefix.(*ast.CallExpr)
	require.True(t, ok)
}

func TestParseUnexpectedIndentIsError(t *testing.T) {
	_, err := parser.Parse([]byte("x = 1\n    y = 2\n"), "test.forge")
	require.Error(t, err)
}

func TestParseBareExpressionMustBeCall(t *testing.T) {
	_, err := parser.Parse([]byte("1 + 2\n"), "test.forge")
	require.Error(t, err)
}
