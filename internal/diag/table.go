// Package diag renders human-facing diagnostics for the compiler pipeline:
// tabular dumps of the DFA's transition and accept tables, and a DOT-format
// graph description for external visualization. Table rendering follows
// tunaq's internal/ictiobus/parse (clr1.go/lalr.go/slr.go), which all build
// a [][]string of rows and hand it to rosed.Edit("").InsertTableOpts for
// fixed-width, wrapped rendering.
package diag

import (
	"fmt"
	"sort"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/internal/util"
)

// tableWidth matches the width ictiobus's parse tables settled on after
// trying 120 and finding it too wide for terminal dumps.
const tableWidth = 100

// TransitionTable renders dfa's states and their outgoing edges as a
// fixed-width table, one row per state, one column per distinct edge
// symbol in the DFA's alphabet.
func TransitionTable(dfa *automaton.DFA[util.PositionSet]) string {
	alphabet := alphabetOf(dfa)

	headers := []string{"STATE", "ACCEPT"}
	headers = append(headers, alphabet...)

	data := [][]string{headers}

	for _, name := range sortedStates(dfa) {
		st, _ := dfa.State(name)
		row := make([]string, 0, len(headers))
		row = append(row, name)
		if st.Accepting {
			row = append(row, fmt.Sprintf("tag=%d", st.Tag))
		} else {
			row = append(row, "-")
		}

		trans := dfa.Transitions(name)
		for _, edge := range alphabet {
			if to, ok := trans[edge]; ok {
				row = append(row, to)
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, tableWidth, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

// RuleTable renders tag/name/regex rows for a compiled rule set, used by
// --dump rules to show what the compiler understood each rule to mean
// before it entered the combined tree.
func RuleTable(tags []int, names, regexes []string) string {
	data := [][]string{{"TAG", "NAME", "REGEX"}}
	for i := range tags {
		data = append(data, []string{fmt.Sprintf("%d", tags[i]), names[i], regexes[i]})
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, tableWidth, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}

func alphabetOf(dfa *automaton.DFA[util.PositionSet]) []string {
	set := util.NewStringSet()
	for _, name := range dfa.States().Elements() {
		for edge := range dfa.Transitions(name) {
			set.Add(edge)
		}
	}
	return util.OrderedKeys(set)
}

func sortedStates(dfa *automaton.DFA[util.PositionSet]) []string {
	names := dfa.States().Elements()
	sort.Strings(names)
	return names
}
