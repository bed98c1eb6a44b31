package automaton

import "github.com/dekarrin/lexgen/internal/util"

// Accepts runs input through dfa from its start state to completion and
// reports whether the whole string is accepted — no tokenization
// bookkeeping, just a boolean, the same query original_source/
// simulation.rs exposes. Used by the test suite to assert DFA language
// equivalence independent of the scanner loop (spec §8's "language
// preservation" property).
func Accepts(dfa *DFA[util.PositionSet], input string) bool {
	state := dfa.Start
	for _, c := range input {
		next, ok := dfa.Step(state, c)
		if !ok {
			return false
		}
		state = next
	}
	st, ok := dfa.State(state)
	return ok && st.Accepting
}

// TraceStates runs input through dfa and returns the full path of state
// names visited, starting with the start state. The returned slice has
// length len(path)-1 equal to the number of input runes actually
// consumed before either exhausting the input or hitting a rune with no
// matching edge, at which point the trace stops early. This is the
// supplemented debug query standing in for token_identifier.rs's
// per-input tag-set computation (spec's longest-match semantics are
// final for scanning; this is `--dump trace` diagnostics only, see
// SPEC_FULL.md).
func TraceStates(dfa *DFA[util.PositionSet], input string) []string {
	path := []string{dfa.Start}
	state := dfa.Start
	for _, c := range input {
		next, ok := dfa.Step(state, c)
		if !ok {
			break
		}
		state = next
		path = append(path, state)
	}
	return path
}
