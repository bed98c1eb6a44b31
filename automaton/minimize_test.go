package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/regex"
)

func Test_Minimize_collapsesEquivalentTails(t *testing.T) {
	// "ab" | "cb" both end by consuming a 'b' into an accepting state for
	// the same tag; minimization should collapse the two post-'b' states
	// into one
	tables := buildTables(t, regex.Rule{Regex: "ab", Tag: 1}, regex.Rule{Regex: "cb", Tag: 1})
	dfa, err := Construct(tables)
	require.NoError(t, err)

	before := dfa.NumStates()

	min := Minimize(dfa)

	require.NoError(t, min.Validate())
	assert.Less(t, min.NumStates(), before)

	s1, ok := min.Step(min.Start, 'a')
	require.True(t, ok)
	accA, ok := min.Step(s1, 'b')
	require.True(t, ok)

	s2, ok := min.Step(min.Start, 'c')
	require.True(t, ok)
	accC, ok := min.Step(s2, 'b')
	require.True(t, ok)

	assert.Equal(t, accA, accC, "both branches should land on the same minimized accepting state")
}

func Test_Minimize_preservesDistinctTagsAcrossMerge(t *testing.T) {
	// even though "cat" and "car" both start with "ca", minimization must
	// never merge their two distinct accepting states since they carry
	// different rule tags
	tables := buildTables(t, regex.Rule{Regex: "cat", Tag: 1}, regex.Rule{Regex: "car", Tag: 2})
	dfa, err := Construct(tables)
	require.NoError(t, err)

	min := Minimize(dfa)
	require.NoError(t, min.Validate())

	s1, _ := min.Step(min.Start, 'c')
	s2, _ := min.Step(s1, 'a')

	tState, ok := min.Step(s2, 't')
	require.True(t, ok)
	rState, ok := min.Step(s2, 'r')
	require.True(t, ok)

	assert.NotEqual(t, tState, rState)
	tSt, _ := min.State(tState)
	rSt, _ := min.State(rState)
	assert.Equal(t, 1, tSt.Tag)
	assert.Equal(t, 2, rSt.Tag)
}

func Test_Minimize_idempotent(t *testing.T) {
	tables := buildTables(t, regex.Rule{Regex: "(a|b)*abb", Tag: 1})
	dfa, err := Construct(tables)
	require.NoError(t, err)

	once := Minimize(dfa)
	twice := Minimize(once)

	assert.Equal(t, once.NumStates(), twice.NumStates())
}
