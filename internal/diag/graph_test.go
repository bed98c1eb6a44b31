package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/regex"
)

func Test_WriteDotGraph_producesValidDotShape(t *testing.T) {
	root, err := regex.CombinedTree([]regex.Rule{{Regex: "ab", Tag: 1}})
	require.NoError(t, err)
	tables := regex.Analyze(root)
	dfa, err := automaton.Construct(tables)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, WriteDotGraph(&sb, dfa))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "digraph dfa {"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
	assert.Contains(t, out, "doublecircle")
	assert.Contains(t, out, "__start")
}
