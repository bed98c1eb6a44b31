package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/lexgen/internal/util"
	"github.com/dekarrin/lexgen/lexerr"
	"github.com/dekarrin/lexgen/regex"
)

// Construct runs the direct subset-construction algorithm of spec §4.7
// over a position-analyzed combined tree, building a DFA whose states are
// canonicalized position-sets without ever materializing an intermediate
// NFA (that is the "direct" in "direct DFA construction" — the standard
// alternative of building an NFA and subsetting it, which tunaq's
// automaton.NFA.ToDFA implements for LR viable-prefix automata, is not
// used here; see DESIGN.md).
//
// Each D-state's Value is the util.PositionSet it was built from, kept
// around for the Accepts/TraceStates debug queries and for diagnostics
// rendering; it plays no role in the scanner runtime.
func Construct(t *regex.Tables) (*DFA[util.PositionSet], error) {
	dfa := NewDFA[util.PositionSet]()

	classes := globalAtomicClasses(t)

	labelOf := map[string]string{}
	nextLabel := 0
	labelFor := func(key string) string {
		if l, ok := labelOf[key]; ok {
			return l
		}
		l := fmt.Sprintf("S%d", nextLabel)
		nextLabel++
		labelOf[key] = l
		return l
	}

	start := t.FirstPos.Copy()
	startKey := util.CanonicalKey(start)
	startLabel := labelFor(startKey)
	addDState(dfa, startLabel, start, t)
	dfa.Start = startLabel

	seen := util.NewStringSet()
	seen.Add(startKey)
	queue := []util.PositionSet{start}

	for len(queue) > 0 {
		S := queue[0]
		queue = queue[1:]
		sLabel := labelOf[util.CanonicalKey(S)]

		// distinct edge-symbols reachable from S: symbol(p) for every
		// non-sentinel p in S, coalescing equal ranges/literals to the
		// same key. Used only to diagnose genuinely declared overlapping
		// ranges (AmbiguousRange); actual transitions are built from the
		// finer atomic-interval partition below.
		bySymbol := map[string]regex.Symbol{}
		for _, p := range util.Sorted(S) {
			sym, ok := t.Symbol[p]
			if !ok {
				continue // sentinel position, no outgoing symbol
			}
			bySymbol[edgeKey(sym)] = sym
		}

		if err := checkNoAmbiguousRanges(bySymbol, S, t); err != nil {
			return nil, err
		}

		for _, edge := range atomicEdgesForState(S, t, classes) {
			if edge.positions.Empty() {
				continue
			}

			U := util.NewPositionSet()
			for _, p := range util.Sorted(edge.positions) {
				U.AddAll(t.FollowPos[p])
			}
			if U.Empty() {
				continue
			}

			uKey := util.CanonicalKey(U)
			uLabel := labelFor(uKey)
			if !seen.Has(uKey) {
				seen.Add(uKey)
				addDState(dfa, uLabel, U, t)
				queue = append(queue, U)
			}

			dfa.AddTransition(sLabel, edge.key, uLabel)
		}
	}

	return dfa, nil
}

// charClass is one maximal rune interval in the globally-consistent
// character-class partition computed by globalAtomicClasses.
type charClass struct {
	lo, hi rune
	key    string
}

// globalAtomicClasses partitions the entire rune space touched by any
// literal or range symbol in t into the coarsest set of disjoint classes
// such that every class is, for every symbol in the combined tree, either
// entirely matched or entirely unmatched by that symbol. Computing this
// once globally (rather than per D-state) is what lets Hopcroft
// minimization treat the resulting DFA's edge keys as a fixed shared
// alphabet (spec §4.8): every state's transitions are labeled from the
// same partition, so two states agreeing on one symbol's target agree on
// that symbol everywhere, not just locally.
//
// This is also what makes a literal edge and a range edge that both cover
// the same character (e.g. the literal 'i' of keyword "if" and the range
// [a-z] of an identifier rule, spec §8 scenario 2) resolve
// deterministically instead of splitting into two edges that would both
// fire on the same input rune: the class containing 'i' is shared by both
// symbols, so there is exactly one transition out of any state for it.
// Distinct, non-equal ranges that genuinely overlap are rejected earlier by
// checkNoAmbiguousRanges per spec §4.7's "safe default"; this function only
// has to resolve the literal/range overlaps implicit in spec §8's own
// end-to-end scenarios.
func globalAtomicClasses(t *regex.Tables) []charClass {
	boundaries := util.NewKeySet[rune]()
	for _, sym := range t.Symbol {
		if sym.IsRange {
			boundaries.Add(sym.Lo)
			boundaries.Add(sym.Hi + 1)
		} else {
			boundaries.Add(sym.Lit)
			boundaries.Add(sym.Lit + 1)
		}
	}

	points := boundaries.Elements()
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })

	var classes []charClass
	for i := 0; i+1 < len(points); i++ {
		lo, hi := points[i], points[i+1]-1
		key := string(lo)
		if lo != hi {
			key = fmt.Sprintf("%c-%c", lo, hi)
		}
		classes = append(classes, charClass{lo: lo, hi: hi, key: key})
	}
	return classes
}

// atomicEdge is one character class reachable from a particular D-state,
// paired with the leaf positions in that state whose symbol covers it.
type atomicEdge struct {
	key       string
	positions util.PositionSet
}

// atomicEdgesForState finds, for each globally-partitioned character class,
// the positions in S whose symbol entirely covers it, skipping classes no
// position in S matches.
func atomicEdgesForState(S util.PositionSet, t *regex.Tables, classes []charClass) []atomicEdge {
	type boundSymbol struct {
		pos int
		sym regex.Symbol
	}

	var symbols []boundSymbol
	for _, p := range util.Sorted(S) {
		sym, ok := t.Symbol[p]
		if !ok {
			continue
		}
		symbols = append(symbols, boundSymbol{pos: p, sym: sym})
	}

	var edges []atomicEdge
	for _, c := range classes {
		positions := util.NewPositionSet()
		for _, bs := range symbols {
			if bs.sym.IsRange {
				if bs.sym.Lo <= c.lo && c.hi <= bs.sym.Hi {
					positions.Add(bs.pos)
				}
			} else if bs.sym.Lit == c.lo && c.lo == c.hi {
				positions.Add(bs.pos)
			}
		}
		if positions.Empty() {
			continue
		}
		edges = append(edges, atomicEdge{key: c.key, positions: positions})
	}

	return edges
}

// addDState registers D-state label with position-set S, marking it
// accepting with the minimum-index sentinel's tag if S contains any
// sentinel position (spec §3: "its rule tag is the tag of the
// minimum-index sentinel among those").
func addDState(dfa *DFA[util.PositionSet], label string, S util.PositionSet, t *regex.Tables) {
	tag, accepting := minSentinelTag(S, t)
	dfa.AddState(label, accepting, tag)
	dfa.SetValue(label, S)
}

func minSentinelTag(S util.PositionSet, t *regex.Tables) (int, bool) {
	best := -1
	found := false
	for _, p := range util.Sorted(S) {
		if _, ok := t.SentinelTag[p]; ok {
			if !found || p < best {
				best = p
				found = true
			}
		}
	}
	if !found {
		return 0, false
	}
	return t.SentinelTag[best], true
}

// checkNoAmbiguousRanges enforces spec §4.7's safe default: range leaves
// whose intervals appear at the same DFA state must be pairwise disjoint.
func checkNoAmbiguousRanges(bySymbol map[string]regex.Symbol, S util.PositionSet, t *regex.Tables) error {
	keys := util.OrderedKeys(bySymbol)
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if edgesOverlap(keys[i], keys[j]) {
				tags := tagsForKeys(S, t, keys[i], keys[j])
				return lexerr.AmbiguousRange(keys[i], keys[j], tags)
			}
		}
	}
	return nil
}

// tagsForKeys returns the human-readable rule tags (as strings) of every
// rule whose sentinel is reachable from positions in S carrying either of
// the two overlapping symbol keys, for the AmbiguousRange diagnostic.
func tagsForKeys(S util.PositionSet, t *regex.Tables, keys ...string) []string {
	wanted := util.NewStringSet()
	for _, k := range keys {
		wanted.Add(k)
	}

	tagSet := map[int]bool{}
	for _, p := range util.Sorted(S) {
		sym, ok := t.Symbol[p]
		if !ok {
			continue
		}
		if !wanted.Has(edgeKey(sym)) {
			continue
		}
		visited := util.NewPositionSet(p)
		frontier := []int{p}
		for len(frontier) > 0 {
			cur := frontier[0]
			frontier = frontier[1:]
			for _, fp := range util.Sorted(t.FollowPos[cur]) {
				if visited.Has(fp) {
					continue
				}
				visited.Add(fp)
				if tag, ok := t.SentinelTag[fp]; ok {
					tagSet[tag] = true
				}
				frontier = append(frontier, fp)
			}
		}
	}

	var tags []int
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Ints(tags)

	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = fmt.Sprintf("%d", tag)
	}
	return out
}
