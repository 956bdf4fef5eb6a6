package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgelang/forge/lang/token"
)

func TestMakePosRoundTrips(t *testing.T) {
	p := token.MakePos(3, 7)
	require.Equal(t, 3, p.Line())
	require.Equal(t, 7, p.Col())
	require.True(t, p.IsValid())
}

func TestMakePosClamps(t *testing.T) {
	p := token.MakePos(token.MaxLine+10, token.MaxCol+10)
	require.Equal(t, token.MaxLine, p.Line())
	require.Equal(t, token.MaxCol, p.Col())
}

func TestZeroPosIsInvalid(t *testing.T) {
	var p token.Pos
	require.False(t, p.IsValid())
	require.Equal(t, "-", p.String())
}

func TestPosString(t *testing.T) {
	require.Equal(t, "3:7", token.MakePos(3, 7).String())
	require.Equal(t, "3", token.MakePos(3, 0).String())
}
