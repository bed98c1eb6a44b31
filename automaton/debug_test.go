package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/regex"
)

func Test_Accepts(t *testing.T) {
	tables := buildTables(t, regex.Rule{Regex: "(a|b)*abb", Tag: 1})
	dfa, err := Construct(tables)
	require.NoError(t, err)

	assert.True(t, Accepts(dfa, "abb"))
	assert.True(t, Accepts(dfa, "aababb"))
	assert.False(t, Accepts(dfa, "ab"), "dfa only accepts at a completed abb suffix")
	assert.False(t, Accepts(dfa, "abbc"), "trailing unmatched input is not accepted")
}

func Test_TraceStates(t *testing.T) {
	tables := buildTables(t, regex.Rule{Regex: "ab", Tag: 1})
	dfa, err := Construct(tables)
	require.NoError(t, err)

	path := TraceStates(dfa, "ab")
	require.Len(t, path, 3)
	assert.Equal(t, dfa.Start, path[0])

	st, ok := dfa.State(path[2])
	require.True(t, ok)
	assert.True(t, st.Accepting)
}

func Test_TraceStates_stopsAtFirstUnmatchedRune(t *testing.T) {
	tables := buildTables(t, regex.Rule{Regex: "ab", Tag: 1})
	dfa, err := Construct(tables)
	require.NoError(t, err)

	path := TraceStates(dfa, "ac")
	assert.Len(t, path, 2, "trace stops after 'a' since 'c' has no outgoing edge")
}
