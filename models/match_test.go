package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidResult(t *testing.T) {
	require.True(t, ValidResult(ResultWhiteWins))
	require.True(t, ValidResult(ResultBlackWins))
	require.True(t, ValidResult(ResultDraw))

	require.False(t, ValidResult(""))
	require.False(t, ValidResult("1 - 0"))
	require.False(t, ValidResult("2-0"))
	require.False(t, ValidResult("1/2-1/2"))
}

func TestParseResult(t *testing.T) {
	white, black, err := ParseResult(ResultWhiteWins)
	require.NoError(t, err)
	require.Equal(t, 1.0, white)
	require.Equal(t, 0.0, black)

	white, black, err = ParseResult(ResultDraw)
	require.NoError(t, err)
	require.Equal(t, 0.5, white)
	require.Equal(t, 0.5, black)

	_, _, err = ParseResult("abandoned")
	require.Error(t, err)
}

func TestNormalizePlayerID(t *testing.T) {
	require.Equal(t, "magnuscarlsen", NormalizePlayerID("  MagnusCarlsen "))
	require.Equal(t, "alice", NormalizePlayerID("alice"))
}
