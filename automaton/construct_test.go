package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/lexerr"
	"github.com/dekarrin/lexgen/regex"
)

func buildTables(t *testing.T, rules ...regex.Rule) *regex.Tables {
	t.Helper()
	root, err := regex.CombinedTree(rules)
	require.NoError(t, err)
	return regex.Analyze(root)
}

func Test_Construct_simpleLiteralRun(t *testing.T) {
	// setup: a single rule "ab" should produce a 3-state chain DFA:
	// start --a--> mid --b--> accept
	tables := buildTables(t, regex.Rule{Regex: "ab", Tag: 1})

	// execute
	dfa, err := Construct(tables)
	require.NoError(t, err)

	// assert
	assert.Equal(t, 3, dfa.NumStates())
	require.NoError(t, dfa.Validate())

	s1, ok := dfa.Step(dfa.Start, 'a')
	require.True(t, ok)
	startState, _ := dfa.State(dfa.Start)
	assert.False(t, startState.Accepting)

	s2, ok := dfa.Step(s1, 'b')
	require.True(t, ok)
	acceptState, _ := dfa.State(s2)
	assert.True(t, acceptState.Accepting)
	assert.Equal(t, 1, acceptState.Tag)
}

func Test_Construct_unionOfAlternatives(t *testing.T) {
	// "cat" | "car" share a two-letter prefix but diverge on the third
	// character into two distinct accepting states
	tables := buildTables(t, regex.Rule{Regex: "cat", Tag: 1}, regex.Rule{Regex: "car", Tag: 2})

	dfa, err := Construct(tables)
	require.NoError(t, err)
	require.NoError(t, dfa.Validate())

	s1, ok := dfa.Step(dfa.Start, 'c')
	require.True(t, ok)
	s2, ok := dfa.Step(s1, 'a')
	require.True(t, ok)

	tState, ok := dfa.Step(s2, 't')
	require.True(t, ok)
	rState, ok := dfa.Step(s2, 'r')
	require.True(t, ok)
	assert.NotEqual(t, tState, rState)

	tSt, _ := dfa.State(tState)
	rSt, _ := dfa.State(rState)
	assert.Equal(t, 1, tSt.Tag)
	assert.Equal(t, 2, rSt.Tag)
}

func Test_Construct_tagTieBreakPrefersLowerTag(t *testing.T) {
	// "if" (tag 1, keyword) and "[a-z]+" (tag 2, identifier) overlap on the
	// literal string "if" itself; the lower declared tag wins the tie
	// (spec §3 min-index sentinel rule)
	tables := buildTables(t,
		regex.Rule{Regex: "if", Tag: 1},
		regex.Rule{Regex: "[a-z]+", Tag: 2},
	)

	dfa, err := Construct(tables)
	require.NoError(t, err)
	require.NoError(t, dfa.Validate())

	s1, ok := dfa.Step(dfa.Start, 'i')
	require.True(t, ok)
	s2, ok := dfa.Step(s1, 'f')
	require.True(t, ok)

	st, _ := dfa.State(s2)
	assert.True(t, st.Accepting)
	assert.Equal(t, 1, st.Tag)
}

func Test_Construct_ambiguousOverlappingRanges(t *testing.T) {
	// two distinct range rules overlapping at the same state without a
	// shared target is rejected rather than silently resolved
	tables := buildTables(t,
		regex.Rule{Regex: "[a-m]", Tag: 1},
		regex.Rule{Regex: "[f-z]", Tag: 2},
	)

	_, err := Construct(tables)

	require.Error(t, err)
	assert.Equal(t, lexerr.KindAmbiguousRange, lexerr.KindOf(err))
}

func Test_Construct_validatesReachability(t *testing.T) {
	tables := buildTables(t, regex.Rule{Regex: "a", Tag: 1})
	dfa, err := Construct(tables)
	require.NoError(t, err)
	assert.NoError(t, dfa.Validate())
}
