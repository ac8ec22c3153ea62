package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCommand_Exact(t *testing.T) {
	for _, name := range commandNames {
		got, err := ResolveCommand(name)
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
}

func TestResolveCommand_UniquePrefix(t *testing.T) {
	tests := map[string]string{
		"h":   "help",
		"d":   "day",
		"l":   "ls",
		"e":   "edit",
		"as":  "assign",
		"m":   "modify",
		"r":   "register",
		"su":  "summary",
		"q":   "quit",
		"reg": "register",
	}
	for input, want := range tests {
		got, err := ResolveCommand(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got)
	}
}

func TestResolveCommand_Ambiguous(t *testing.T) {
	// "a" matches both add and assign.
	_, err := ResolveCommand("a")
	require.Error(t, err)

	// "s" matches only summary.
	got, err := ResolveCommand("s")
	require.NoError(t, err)
	assert.Equal(t, "summary", got)
}

func TestResolveCommand_Unknown(t *testing.T) {
	_, err := ResolveCommand("frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")

	_, err = ResolveCommand("")
	require.Error(t, err)
}
