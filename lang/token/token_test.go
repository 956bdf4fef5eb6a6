package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelang/forge/lang/token"
)

func TestLookupIdentKeywords(t *testing.T) {
	require.Equal(t, token.IF, token.LookupIdent("if"))
	require.Equal(t, token.ASYNC, token.LookupIdent("async"))
	require.Equal(t, token.SUPER, token.LookupIdent("super"))
}

func TestLookupIdentNonKeyword(t *testing.T) {
	require.Equal(t, token.IDENT, token.LookupIdent("x"))
	require.Equal(t, token.IDENT, token.LookupIdent("forEach"))
}

func TestTokenString(t *testing.T) {
	require.Equal(t, "end of file", token.EOF.String())
	require.NotEmpty(t, token.PLUS.String())
}

func TestTokenGoStringQuotesPunctuation(t *testing.T) {
	require.Equal(t, "'+'", token.PLUS.GoString())
	require.Equal(t, "if", token.IF.GoString())
}
