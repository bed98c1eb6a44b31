package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/regex"
	"github.com/dekarrin/lexgen/rulefile"
)

func Test_Generate_standaloneScanner(t *testing.T) {
	// setup
	root, err := regex.CombinedTree([]regex.Rule{{Regex: "a+", Tag: 1}})
	require.NoError(t, err)
	tables := regex.Analyze(root)
	dfa, err := automaton.Construct(tables)
	require.NoError(t, err)
	dfa = automaton.Minimize(dfa)

	rules := []rulefile.Rule{{Regex: "a+", Action: `fmt.Println("matched a-run")`, Tag: 1}}

	// execute
	var sb strings.Builder
	err = Generate(&sb, dfa, rules, Options{Package: "mylexer", EmitMain: true})
	require.NoError(t, err)
	out := sb.String()

	// assert: the generated file declares the right package, carries the
	// DFA's start state, dispatches the rule's verbatim action, and
	// includes both func main and the Scan loop
	assert.Contains(t, out, "package mylexer")
	assert.Contains(t, out, "const startState = ")
	assert.Contains(t, out, `fmt.Println("matched a-run")`)
	assert.Contains(t, out, "func main() {")
	assert.Contains(t, out, "func Scan(input string) ([]Token, error) {")
}

func Test_Generate_withoutMain(t *testing.T) {
	root, err := regex.CombinedTree([]regex.Rule{{Regex: "a", Tag: 1}})
	require.NoError(t, err)
	tables := regex.Analyze(root)
	dfa, err := automaton.Construct(tables)
	require.NoError(t, err)

	var sb strings.Builder
	err = Generate(&sb, dfa, nil, Options{Package: "lib", EmitMain: false})
	require.NoError(t, err)

	assert.NotContains(t, sb.String(), "func main() {")
}
