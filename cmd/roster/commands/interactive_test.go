package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine_SplitsOnWhitespace(t *testing.T) {
	parts, err := parseCommandLine(`solve 2024-01-01 --seed 7`)
	require.NoError(t, err)
	assert.Equal(t, []string{"solve", "2024-01-01", "--seed", "7"}, parts)
}

func TestParseCommandLine_RespectsQuotedArguments(t *testing.T) {
	parts, err := parseCommandLine(`publish 2024-01-01 --csv "my roster.csv"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"publish", "2024-01-01", "--csv", "my roster.csv"}, parts)
}

func TestParseCommandLine_RejectsUnclosedQuote(t *testing.T) {
	_, err := parseCommandLine(`publish "unterminated`)
	assert.Error(t, err)
}

func TestParseCommandLine_EmptyLineYieldsNoParts(t *testing.T) {
	parts, err := parseCommandLine("")
	require.NoError(t, err)
	assert.Empty(t, parts)
}
