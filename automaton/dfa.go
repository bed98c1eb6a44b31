package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/lexgen/internal/util"
)

// DFAState is one state of a DFA[E], carrying its outgoing transitions
// and, if accepting, the rule tag it resolves to. Value is auxiliary data
// the construction and minimization passes attach to a state — the
// position-set it was built from during subset construction, for
// instance — and is not needed by the scanner runtime, which only reads
// Accepting/Tag/transitions.
type DFAState[E any] struct {
	Name        string
	Value       E
	Accepting   bool
	Tag         int
	transitions map[string]string
}

// DFA is a deterministic finite automaton over a string-keyed edge
// alphabet (see edgeKey), adapted from tunaq's internal/ictiobus/automaton
// generic DFA[E] container and trimmed to what direct subset construction
// and Hopcroft minimization need: no NFA type, no epsilon closures (spec
// §4.7 builds the DFA directly from followpos, skipping the NFA
// intermediate entirely).
type DFA[E any] struct {
	states map[string]DFAState[E]
	Start  string
}

// NewDFA returns an empty DFA with no states and no start state set.
func NewDFA[E any]() *DFA[E] {
	return &DFA[E]{states: map[string]DFAState[E]{}}
}

// AddState adds a new, transition-less state. A second call with the same
// name is a no-op, matching tunaq's automaton.AddState.
func (d *DFA[E]) AddState(name string, accepting bool, tag int) {
	if _, ok := d.states[name]; ok {
		return
	}
	d.states[name] = DFAState[E]{
		Name:        name,
		Accepting:   accepting,
		Tag:         tag,
		transitions: map[string]string{},
	}
}

// SetValue attaches auxiliary data to an existing state.
func (d *DFA[E]) SetValue(name string, v E) {
	s, ok := d.states[name]
	if !ok {
		panic(fmt.Sprintf("setting value on non-existing state %q", name))
	}
	s.Value = v
	d.states[name] = s
}

// GetValue returns the auxiliary data attached to a state.
func (d *DFA[E]) GetValue(name string) E {
	s, ok := d.states[name]
	if !ok {
		panic(fmt.Sprintf("getting value on non-existing state %q", name))
	}
	return s.Value
}

// AddTransition adds an edge from-state --edge--> to-state. Both states
// must already exist; panics otherwise, since an edge to or from a state
// that was never declared is a construction-pass programmer error, not a
// caller-facing compile error.
func (d *DFA[E]) AddTransition(from, edge, to string) {
	fromState, ok := d.states[from]
	if !ok {
		panic(fmt.Sprintf("add transition from non-existent state %q", from))
	}
	if _, ok := d.states[to]; !ok {
		panic(fmt.Sprintf("add transition to non-existent state %q", to))
	}
	fromState.transitions[edge] = to
}

// State returns the named state and whether it exists.
func (d *DFA[E]) State(name string) (DFAState[E], bool) {
	s, ok := d.states[name]
	return s, ok
}

// Transitions returns the from-state's outgoing edges, edge key to target
// state name.
func (d DFA[E]) Transitions(from string) map[string]string {
	return d.states[from].transitions
}

// Next returns the target state for an edge from a state, or "" if either
// does not exist.
func (d DFA[E]) Next(from, edge string) string {
	s, ok := d.states[from]
	if !ok {
		return ""
	}
	return s.transitions[edge]
}

// Step finds the (at most one, by construction) outgoing edge of from
// that fires for rune c and returns the state it leads to. This is the
// transition-match rule of spec §4.9: a literal edge fires on equality,
// a range edge fires on inclusive containment.
func (d DFA[E]) Step(from string, c rune) (string, bool) {
	st, ok := d.states[from]
	if !ok {
		return "", false
	}
	for edge, to := range st.transitions {
		if parseEdge(edge).Matches(c) {
			return to, true
		}
	}
	return "", false
}

// States returns the set of all state names.
func (d DFA[E]) States() util.StringSet {
	s := util.NewStringSet()
	for name := range d.states {
		s.Add(name)
	}
	return s
}

// NumStates reports how many states the DFA has.
func (d DFA[E]) NumStates() int {
	return len(d.states)
}

// Validate checks the structural invariants spec §3 requires of a DFA:
// every transition leads to an existing state, the start state exists,
// and (potentially costly) every non-start state is reachable. Adapted
// from tunaq's automaton.DFA.Validate.
func (d DFA[E]) Validate() error {
	if _, ok := d.states[d.Start]; !ok {
		return fmt.Errorf("start state %q does not exist", d.Start)
	}

	for name, st := range d.states {
		for edge, to := range st.transitions {
			if _, ok := d.states[to]; !ok {
				return fmt.Errorf("state %q transitions on %q to non-existing state %q", name, edge, to)
			}
		}
	}

	reachable := util.NewStringSet()
	queue := []string{d.Start}
	reachable.Add(d.Start)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, to := range d.states[cur].transitions {
			if !reachable.Has(to) {
				reachable.Add(to)
				queue = append(queue, to)
			}
		}
	}
	if reachable.Len() != len(d.states) {
		for name := range d.states {
			if !reachable.Has(name) {
				return fmt.Errorf("state %q is not reachable from start %q", name, d.Start)
			}
		}
	}

	return nil
}

func (d DFA[E]) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<START: %q, STATES:", d.Start)

	for i, name := range util.OrderedKeys(d.states) {
		st := d.states[name]
		sb.WriteString("\n\t")
		if st.Accepting {
			fmt.Fprintf(&sb, "((%s, tag=%d) [", name, st.Tag)
		} else {
			fmt.Fprintf(&sb, "(%s [", name)
		}
		edges := util.OrderedKeys(st.transitions)
		for j, e := range edges {
			fmt.Fprintf(&sb, "=(%s)=> %s", e, st.transitions[e])
			if j+1 < len(edges) {
				sb.WriteString(", ")
			}
		}
		sb.WriteRune(']')
		if st.Accepting {
			sb.WriteRune(')')
		}
		if i+1 < len(d.states) {
			sb.WriteRune(',')
		}
	}
	sb.WriteString("\n>")
	return sb.String()
}
