package scanner_test

import (
	"testing"

	"github.com/forgelang/forge/lang/scanner"
	"github.com/forgelang/forge/lang/token"
	"github.com/stretchr/testify/require"
)

func toks(t *testing.T, src string) []token.Token {
	t.Helper()
	vals, err := scanner.ScanAll([]byte(src))
	require.NoError(t, err)
	out := make([]token.Token, len(vals))
	for i, v := range vals {
		out[i] = v.Tok
	}
	return out
}

func TestScanBasics(t *testing.T) {
	got := toks(t, "x = 1 + 2\n")
	require.Equal(t, []token.Token{
		token.IDENT, token.EQ, token.NUMBER, token.PLUS, token.NUMBER, token.NEWLINE, token.EOF,
	}, got)
}

func TestScanSkipsBlankAndCommentLines(t *testing.T) {
	got := toks(t, "\n// comment\nx = 1 // trailing\n# also a comment\n")
	require.Equal(t, []token.Token{
		token.IDENT, token.EQ, token.NUMBER, token.NEWLINE, token.EOF,
	}, got)
}

func TestScanIndentIsFirstTokenColumn(t *testing.T) {
	vals, err := scanner.ScanAll([]byte("if true:\n    x = 1\n"))
	require.NoError(t, err)
	// IF, TRUE, COLON, NEWLINE, IDENT(x), EQ, NUMBER, NEWLINE, EOF
	require.Equal(t, 1, vals[0].Pos.Col())
	// x is the 5th token
	require.Equal(t, token.IDENT, vals[4].Tok)
	require.Equal(t, 5, vals[4].Pos.Col())
}

func TestScanStringEscapes(t *testing.T) {
	vals, err := scanner.ScanAll([]byte(`"a\nb\q"` + "\n"))
	require.NoError(t, err)
	require.Equal(t, "a\nbq", vals[0].Str)
}

func TestScanTabIndentIsError(t *testing.T) {
	_, err := scanner.ScanAll([]byte("\tif true:\n"))
	require.Error(t, err)
}
