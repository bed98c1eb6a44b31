package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/lexerr"
)

func Test_CombinedTree(t *testing.T) {
	// setup
	require := require.New(t)
	rules := []Rule{
		{Regex: "if", Tag: 1},
		{Regex: "[a-z]+", Tag: 2},
	}

	// execute
	root, err := CombinedTree(rules)

	// assert: top node is a union joining the two rule subtrees, and each
	// subtree's sentinel carries the declaring rule's tag
	require.NoError(err)
	require.Equal(NodeUnion, root.Kind)

	tables := Analyze(root)
	var tags []int
	for _, tag := range tables.SentinelTag {
		tags = append(tags, tag)
	}
	assert.ElementsMatch(t, []int{1, 2}, tags)
}

func Test_CombinedTree_singleRule(t *testing.T) {
	root, err := CombinedTree([]Rule{{Regex: "abc", Tag: 7}})

	require.NoError(t, err)
	require.Equal(t, NodeConcat, root.Kind)
	assert.Equal(t, NodeSentinel, root.Right.Kind)
	assert.Equal(t, 7, root.Right.Tag)
}

func Test_CombinedTree_noRules(t *testing.T) {
	_, err := CombinedTree(nil)

	require.Error(t, err)
	assert.Equal(t, lexerr.KindMalformedExpression, lexerr.KindOf(err))
}

func Test_CombinedTree_nullableRuleRejected(t *testing.T) {
	// a bare `a*` rule matches the empty string, which would make the
	// scanner loop forever advancing on zero-length matches (spec §8
	// scenario 6)
	_, err := CombinedTree([]Rule{{Regex: "a*", Tag: 1}})

	require.Error(t, err)
	assert.Equal(t, lexerr.KindNullableRule, lexerr.KindOf(err))
}

func Test_CombinedTree_nullableViaUnionWithEmpty(t *testing.T) {
	_, err := CombinedTree([]Rule{{Regex: "a?", Tag: 1}})

	require.Error(t, err)
	assert.Equal(t, lexerr.KindNullableRule, lexerr.KindOf(err))
}
