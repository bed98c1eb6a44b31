package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lexgen/internal/util"
)

// Minimize partition-refines d into its canonical minimal-state
// equivalent using Hopcroft's algorithm (spec §4.8). The initial
// partition groups accepting states by (tag) so that two rules whose
// languages coincide over some prefix are never collapsed into one state
// merely because they currently agree — only states with the same tag
// (or both non-accepting) can ever be merged, which is what lets rule
// identity survive minimization (spec §4.8 "Correctness").
func Minimize(d *DFA[util.PositionSet]) *DFA[util.PositionSet] {
	alphabet := collectAlphabet(d)

	partition, nextID := initialPartition(d)
	stateBlock := map[string]int{}
	for id, blk := range partition {
		for _, s := range blk.Elements() {
			stateBlock[s] = id
		}
	}

	inWorklist := map[int]bool{}
	var worklist []int
	for id := range partition {
		worklist = append(worklist, id)
		inWorklist[id] = true
	}

	for len(worklist) > 0 {
		sort.Ints(worklist) // deterministic processing order
		a := worklist[0]
		worklist = worklist[1:]
		inWorklist[a] = false

		blockA := partition[a]

		for _, symbol := range alphabet {
			// X = states with a transition on symbol landing in blockA.
			X := util.NewStringSet()
			for name := range d.states {
				if to, ok := d.states[name].transitions[symbol]; ok && blockA.Has(to) {
					X.Add(name)
				}
			}
			if X.Empty() {
				continue
			}

			for _, yID := range sortedBlockIDs(partition) {
				Y := partition[yID]
				inter := Y.Intersection(X)
				diff := Y.Difference(X)
				if inter.Empty() || diff.Empty() {
					continue
				}

				// split Y into inter and diff; diff keeps Y's id, inter
				// gets a fresh one.
				newID := nextID
				nextID++
				partition[yID] = diff
				partition[newID] = inter
				for _, s := range inter.Elements() {
					stateBlock[s] = newID
				}

				if inWorklist[yID] {
					worklist = append(worklist, newID)
					inWorklist[newID] = true
				} else {
					if inter.Len() <= diff.Len() {
						worklist = append(worklist, newID)
						inWorklist[newID] = true
					} else {
						worklist = append(worklist, yID)
						inWorklist[yID] = true
					}
				}
			}
		}
	}

	return buildFromPartition(d, partition, stateBlock)
}

func collectAlphabet(d *DFA[util.PositionSet]) []string {
	set := util.NewStringSet()
	for _, st := range d.states {
		for edge := range st.transitions {
			set.Add(edge)
		}
	}
	return util.OrderedKeys(set)
}

// initialPartition groups accepting states by tag (one block per distinct
// tag) plus one block of all non-accepting states, per spec §4.8.
func initialPartition(d *DFA[util.PositionSet]) (map[int]util.StringSet, int) {
	byTag := map[int]util.StringSet{}
	nonAccepting := util.NewStringSet()

	for name, st := range d.states {
		if st.Accepting {
			blk, ok := byTag[st.Tag]
			if !ok {
				blk = util.NewStringSet()
			}
			blk.Add(name)
			byTag[st.Tag] = blk
		} else {
			nonAccepting.Add(name)
		}
	}

	partition := map[int]util.StringSet{}
	id := 0
	for _, tag := range sortedIntKeys(byTag) {
		partition[id] = byTag[tag]
		id++
	}
	if !nonAccepting.Empty() {
		partition[id] = nonAccepting
		id++
	}

	return partition, id
}

func sortedIntKeys(m map[int]util.StringSet) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedBlockIDs(partition map[int]util.StringSet) []int {
	keys := make([]int, 0, len(partition))
	for k := range partition {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// buildFromPartition assigns each surviving block a fresh label and
// derives its transitions/acceptance from any representative member,
// per spec §4.8's final step.
func buildFromPartition(d *DFA[util.PositionSet], partition map[int]util.StringSet, stateBlock map[string]int) *DFA[util.PositionSet] {
	out := NewDFA[util.PositionSet]()

	blockLabel := map[int]string{}
	for i, id := range sortedBlockIDs(partition) {
		blockLabel[id] = fmt.Sprintf("M%d", i)
	}

	for _, id := range sortedBlockIDs(partition) {
		blk := partition[id]
		rep := representative(blk)
		repState := d.states[rep]

		merged := util.NewPositionSet()
		for _, s := range blk.Elements() {
			merged.AddAll(d.states[s].Value)
		}

		out.AddState(blockLabel[id], repState.Accepting, repState.Tag)
		out.SetValue(blockLabel[id], merged)
	}

	for _, id := range sortedBlockIDs(partition) {
		blk := partition[id]
		rep := representative(blk)
		repState := d.states[rep]
		for edge, to := range repState.transitions {
			out.AddTransition(blockLabel[id], edge, blockLabel[stateBlock[to]])
		}
	}

	out.Start = blockLabel[stateBlock[d.Start]]

	return out
}

// representative picks a deterministic member of a block (its
// lexicographically smallest state name) to read transitions/acceptance
// from; all members agree by construction.
func representative(blk util.StringSet) string {
	names := blk.Elements()
	sort.Strings(names)
	return names[0]
}
