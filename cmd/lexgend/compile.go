package main

import (
	"fmt"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/internal/util"
	"github.com/dekarrin/lexgen/regex"
	"github.com/dekarrin/lexgen/rulefile"
)

// daemonCompileResult is the daemon's in-memory view of a completed
// compile, trimmed from cmd/lexgen's compileResult to what the HTTP
// handler needs (no on-disk DFA cache: the daemon is stateless per
// request, persisting only the audit log via store.Store).
type daemonCompileResult struct {
	dfa   *automaton.DFA[util.PositionSet]
	rules []rulefile.Rule
}

// compileSourceText runs the same pipeline as cmd/lexgen's compileSource,
// without the on-disk DFA cache: a daemon serving many distinct clients'
// rule files has no single rule file whose repeated recompilation is worth
// caching the way a developer's local edit-compile loop does.
func compileSourceText(src string) (*daemonCompileResult, error) {
	rf, err := rulefile.Parse(src)
	if err != nil {
		return nil, err
	}
	rulefile.ExpandMacros(rf)

	if len(rf.Rules) == 0 {
		return nil, errNoRules
	}

	rules := make([]regex.Rule, len(rf.Rules))
	for i, r := range rf.Rules {
		rules[i] = regex.Rule{Regex: r.Regex, Tag: r.Tag}
	}

	tree, err := regex.CombinedTree(rules)
	if err != nil {
		return nil, err
	}

	tables := regex.Analyze(tree)

	dfa, err := automaton.Construct(tables)
	if err != nil {
		return nil, err
	}

	minDFA := automaton.Minimize(dfa)

	return &daemonCompileResult{dfa: minDFA, rules: rf.Rules}, nil
}

var errNoRules = fmt.Errorf("rule file defines no rules")
