package regex

import "github.com/dekarrin/lexgen/internal/util"

// Symbol is the edge-symbol a leaf matches: either a single literal rune
// or an inclusive range [Lo,Hi]. Sentinel and empty leaves have no symbol
// and have no entry in Tables.Symbol.
type Symbol struct {
	IsRange bool
	Lit     rune
	Lo, Hi  rune
}

// Matches reports whether input rune c fires this symbol's edge, per
// spec §4.9's transition match rule.
func (s Symbol) Matches(c rune) bool {
	if s.IsRange {
		return c >= s.Lo && c <= s.Hi
	}
	return c == s.Lit
}

// Tables holds the position-indexed attributes computed by Analyze:
// symbol(p), firstpos/lastpos of the node rooted at each assigned
// position are folded into FollowPos during the bottom-up pass (spec §3,
// §4.6). Positions are dense 1..N, assigned left-to-right across leaves.
type Tables struct {
	// NumPositions is N, the number of leaf positions in the tree.
	NumPositions int

	// Symbol maps a literal/range leaf's position to the symbol it
	// matches. Sentinel and ε leaves are absent from this map.
	Symbol map[int]Symbol

	// SentinelTag maps a sentinel leaf's position to its rule tag.
	SentinelTag map[int]int

	// FollowPos maps a leaf position to the set of positions that can
	// immediately follow it in some accepting path.
	FollowPos map[int]util.PositionSet

	// FirstPos is firstpos(root), the start D-state before canonicalization.
	FirstPos util.PositionSet

	// RootNullable records whether the combined root matches the empty
	// string. Per-rule nullability is rejected earlier (NullableRule) so
	// this should always be false for a tree Analyze accepts, but it is
	// exposed for diagnostics.
	RootNullable bool
}

// Nullable reports, via pure structural recursion with no position
// dependency, whether n's language contains the empty string (spec §4.6).
// Used standalone by the combiner to reject a per-rule subtree before it
// is ever wired into the combined root (spec §8 scenario 6: `a*` alone is
// NullableRule).
func Nullable(n *Node) bool {
	switch n.Kind {
	case NodeEmpty:
		return true
	case NodeLiteral, NodeRange, NodeSentinel:
		return false
	case NodeKleene:
		return true
	case NodeUnion:
		return Nullable(n.Left) || Nullable(n.Right)
	case NodeConcat:
		return Nullable(n.Left) && Nullable(n.Right)
	default:
		return false
	}
}

// Analyze assigns positions to every leaf of root and computes the
// nullable/firstpos/lastpos/followpos tables (spec §4.6). root must be a
// combined multi-rule tree (spec §4.5); per-rule nullability should
// already have been checked by the caller via Nullable before combining,
// since a nullable rule wrapped in `∘ #` is never itself nullable (the
// sentinel is not nullable) and so would otherwise slip past this pass
// undetected.
func Analyze(root *Node) *Tables {
	t := &Tables{
		Symbol:      map[int]Symbol{},
		SentinelTag: map[int]int{},
		FollowPos:   map[int]util.PositionSet{},
	}

	next := 1
	assignPositions(root, &next)
	t.NumPositions = next - 1

	for p := 1; p < next; p++ {
		t.FollowPos[p] = util.NewPositionSet()
	}

	nullable, firstpos, _ := analyzeNode(root, t)
	t.RootNullable = nullable
	t.FirstPos = firstpos

	return t
}

// assignPositions walks the tree left-to-right, giving each leaf the next
// dense integer position (spec §3: "assigned left-to-right in infix
// order"). Internal nodes receive no position.
func assignPositions(n *Node, next *int) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		n.Position = *next
		*next++
		return
	}
	assignPositions(n.Left, next)
	assignPositions(n.Right, next)
}

// analyzeNode is the bottom-up pass (spec §4.6): for each node it returns
// (nullable, firstpos, lastpos), and along the way fills in Symbol,
// SentinelTag, and FollowPos for the leaf positions it touches. Recursion
// is inherently post-order, which spec §4.6 notes is sufficient on its
// own without an explicit additional fixed-point sweep.
func analyzeNode(n *Node, t *Tables) (bool, util.PositionSet, util.PositionSet) {
	switch n.Kind {
	case NodeEmpty:
		return true, util.NewPositionSet(), util.NewPositionSet()

	case NodeLiteral:
		t.Symbol[n.Position] = Symbol{Lit: n.Lit}
		return false, util.NewPositionSet(n.Position), util.NewPositionSet(n.Position)

	case NodeRange:
		t.Symbol[n.Position] = Symbol{IsRange: true, Lo: n.RangeLo, Hi: n.RangeHi}
		return false, util.NewPositionSet(n.Position), util.NewPositionSet(n.Position)

	case NodeSentinel:
		t.SentinelTag[n.Position] = n.Tag
		return false, util.NewPositionSet(n.Position), util.NewPositionSet(n.Position)

	case NodeUnion:
		lNullable, lFirst, lLast := analyzeNode(n.Left, t)
		rNullable, rFirst, rLast := analyzeNode(n.Right, t)
		return lNullable || rNullable, lFirst.Union(rFirst), lLast.Union(rLast)

	case NodeConcat:
		lNullable, lFirst, lLast := analyzeNode(n.Left, t)
		rNullable, rFirst, rLast := analyzeNode(n.Right, t)

		first := lFirst.Copy()
		if lNullable {
			first.AddAll(rFirst)
		}

		last := rLast.Copy()
		if rNullable {
			last.AddAll(lLast)
		}

		for _, p := range lLast.Elements() {
			t.FollowPos[p].AddAll(rFirst)
		}

		return lNullable && rNullable, first, last

	case NodeKleene:
		_, cFirst, cLast := analyzeNode(n.Left, t)

		for _, p := range cLast.Elements() {
			t.FollowPos[p].AddAll(cFirst)
		}

		return true, cFirst.Copy(), cLast.Copy()

	default:
		return false, util.NewPositionSet(), util.NewPositionSet()
	}
}
