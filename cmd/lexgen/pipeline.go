package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/internal/dfacache"
	"github.com/dekarrin/lexgen/internal/util"
	"github.com/dekarrin/lexgen/regex"
	"github.com/dekarrin/lexgen/rulefile"
)

// compileResult bundles everything a compile run produced, for the compile,
// repl, and watch subcommands to share.
type compileResult struct {
	File *rulefile.File
	DFA  *automaton.DFA[util.PositionSet]

	// FromCache reports whether DFA was loaded from the on-disk cache
	// instead of freshly constructed and minimized.
	FromCache bool
}

// compileSource runs the full pipeline of spec §4: parse the rule file,
// expand macros, combine every rule under one tree, run position analysis,
// build the DFA by direct subset construction, and minimize it by Hopcroft
// partition refinement. cacheDir may be empty to skip caching entirely.
func compileSource(src string, cacheDir string) (*compileResult, error) {
	rf, err := rulefile.Parse(src)
	if err != nil {
		return nil, err
	}
	rulefile.ExpandMacros(rf)

	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rule file defines no rules")
	}

	if cacheDir != "" {
		hash := dfacache.HashSource(src)
		if dfa, ok, err := dfacache.Load(cacheDir, hash); err == nil && ok {
			return &compileResult{File: rf, DFA: dfa, FromCache: true}, nil
		}
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

	if cacheDir != "" {
		hash := dfacache.HashSource(src)
		if err := dfacache.Store(cacheDir, hash, minDFA); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not write DFA cache: %s\n", err)
		}
	}

	return &compileResult{File: rf, DFA: minDFA}, nil
}
