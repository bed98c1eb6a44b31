package diag

import (
	"fmt"
	"io"
	"sort"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/internal/util"
)

// WriteDotGraph writes a Graphviz DOT description of dfa to w. This is
// the text-only supplement to original_source/direct_afd_construction/
// src/view.rs, which paired its graph construction with a call out to
// the `dot` binary to rasterize it; this package stops at the text, since
// spec.md explicitly keeps process-launching graph rendering out of the
// core (see SPEC_FULL.md Supplemented Features for the reasoning). A
// caller that wants a picture pipes this output into `dot` themselves.
func WriteDotGraph(w io.Writer, dfa *automaton.DFA[util.PositionSet]) error {
	if _, err := fmt.Fprintln(w, "digraph dfa {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "\trankdir=LR;"); err != nil {
		return err
	}

	names := dfa.States().Elements()
	sort.Strings(names)

	for _, name := range names {
		st, _ := dfa.State(name)
		shape := "circle"
		if st.Accepting {
			shape = "doublecircle"
		}
		label := name
		if st.Accepting {
			label = fmt.Sprintf("%s\\ntag=%d", name, st.Tag)
		}
		if _, err := fmt.Fprintf(w, "\t%q [shape=%s label=%q];\n", name, shape, label); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "\t__start [shape=point];\n\t__start -> %q;\n", dfa.Start); err != nil {
		return err
	}

	for _, name := range names {
		trans := dfa.Transitions(name)
		edges := util.OrderedKeys(trans)
		for _, edge := range edges {
			if _, err := fmt.Fprintf(w, "\t%q -> %q [label=%q];\n", name, trans[edge], edge); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
