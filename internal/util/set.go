// Package util holds small generic containers shared across the compiler
// pipeline. It is adapted from the set types tunaq's ictiobus package uses
// for its LR viable-prefix automata, trimmed to what the lexer generator
// needs: ordered, canonicalizable sets of comparable elements.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// KeySet is a set of comparable elements backed by a map.
type KeySet[E comparable] map[E]bool

// NewKeySet returns a new, empty KeySet, optionally seeded from existing
// key-sets.
func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	s := KeySet[E]{}
	for _, m := range of {
		for k := range m {
			s.Add(k)
		}
	}
	return s
}

// KeySetOf builds a KeySet from a slice, deduplicating as it goes.
func KeySetOf[E comparable](sl []E) KeySet[E] {
	s := NewKeySet[E]()
	for _, e := range sl {
		s.Add(e)
	}
	return s
}

func (s KeySet[E]) Add(e E)      { s[e] = true }
func (s KeySet[E]) Remove(e E)   { delete(s, e) }
func (s KeySet[E]) Has(e E) bool { return s[e] }
func (s KeySet[E]) Len() int     { return len(s) }
func (s KeySet[E]) Empty() bool  { return len(s) == 0 }

func (s KeySet[E]) AddAll(o KeySet[E]) {
	for k := range o {
		s.Add(k)
	}
}

func (s KeySet[E]) Copy() KeySet[E] {
	return NewKeySet(map[E]bool(s))
}

func (s KeySet[E]) Union(o KeySet[E]) KeySet[E] {
	out := s.Copy()
	out.AddAll(o)
	return out
}

func (s KeySet[E]) Intersection(o KeySet[E]) KeySet[E] {
	out := NewKeySet[E]()
	for k := range s {
		if o.Has(k) {
			out.Add(k)
		}
	}
	return out
}

func (s KeySet[E]) Difference(o KeySet[E]) KeySet[E] {
	out := s.Copy()
	for k := range o {
		out.Remove(k)
	}
	return out
}

// Equal returns whether s and o contain exactly the same elements.
func (s KeySet[E]) Equal(o KeySet[E]) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if !o.Has(k) {
			return false
		}
	}
	return true
}

// Elements returns the set's members in no particular order.
func (s KeySet[E]) Elements() []E {
	out := make([]E, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

// PositionSet is a KeySet of 1-based syntax-tree leaf positions. Positions
// identify a D-state (spec.md §3: "A D-state's identity is its position-set
// as an unordered set"), so two PositionSets must compare and hash equal
// whenever they contain the same positions regardless of insertion order.
type PositionSet = KeySet[int]

// NewPositionSet returns a new, empty PositionSet, optionally seeded with
// the given positions.
func NewPositionSet(positions ...int) PositionSet {
	s := NewKeySet[int]()
	for _, p := range positions {
		s.Add(p)
	}
	return s
}

// Sorted returns the set's positions in ascending order. Used both for
// deterministic output (transition table rendering, tests) and as the
// canonical form underlying CanonicalKey.
func Sorted(s PositionSet) []int {
	out := make([]int, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// CanonicalKey returns a string uniquely determined by the set's contents
// regardless of build order, for use as a map key when canonicalizing
// D-states during subset construction (spec.md §4.7: "the builder MUST
// canonicalize before lookup to avoid duplicates").
func CanonicalKey(s PositionSet) string {
	sorted := Sorted(s)
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ",")
}

// StringSet is a set of strings, used for DFA state names and input
// alphabets where insertion order carries no meaning.
type StringSet = KeySet[string]

// NewStringSet returns a new, empty StringSet, optionally seeded from
// existing maps.
func NewStringSet(of ...map[string]bool) StringSet {
	return NewKeySet(of...)
}

// OrderedKeys returns the keys of m sorted ascending, for deterministic
// iteration when rendering tables or building output that must not depend on
// map iteration order.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
