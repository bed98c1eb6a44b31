package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/regex"
)

func Test_TransitionTable_containsStatesAndAcceptTags(t *testing.T) {
	root, err := regex.CombinedTree([]regex.Rule{{Regex: "ab", Tag: 1}})
	require.NoError(t, err)
	tables := regex.Analyze(root)
	dfa, err := automaton.Construct(tables)
	require.NoError(t, err)

	out := TransitionTable(dfa)

	assert.Contains(t, out, "STATE")
	assert.Contains(t, out, "ACCEPT")
	assert.Contains(t, out, "tag=1")
}

func Test_RuleTable_rendersOneRowPerRule(t *testing.T) {
	out := RuleTable([]int{1, 2}, []string{"IF", "ID"}, []string{"if", "[a-z]+"})

	assert.Contains(t, out, "IF")
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "[a-z]+")
}
