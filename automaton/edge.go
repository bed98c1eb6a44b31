package automaton

import (
	"fmt"

	"github.com/dekarrin/lexgen/regex"
)

// edgeKey encodes a regex.Symbol as the transition-map key spec §3/§4.7
// and the original_source Rust implementation both use: either a single
// literal character, or a three-character range string "a-b". This
// resolves the dual edge-symbol encoding the source mixed (see DESIGN.md
// Open Questions) in favor of the scheme token_identifier.rs and
// simulation.rs actually use at simulation time.
func edgeKey(s regex.Symbol) string {
	if s.IsRange {
		return fmt.Sprintf("%c-%c", s.Lo, s.Hi)
	}
	return string(s.Lit)
}

// parseEdge decodes an edgeKey back into a regex.Symbol so the scanner
// runtime can test an input rune against it. A key is a range iff it is
// exactly three runes with a '-' in the middle; any other key is a literal
// (edgeKey never produces a two-rune key such as "a-").
func parseEdge(key string) regex.Symbol {
	r := []rune(key)
	if len(r) == 3 && r[1] == '-' {
		return regex.Symbol{IsRange: true, Lo: r[0], Hi: r[2]}
	}
	return regex.Symbol{Lit: r[0]}
}

// edgesOverlap reports whether two range edge keys share at least one
// character while not being the identical key (identical keys are the
// same transition and never ambiguous; spec §4.7's AmbiguousRange only
// fires when two *different* ranges at the same state overlap).
func edgesOverlap(a, b string) bool {
	if a == b {
		return false
	}
	sa, sb := parseEdge(a), parseEdge(b)
	if !sa.IsRange || !sb.IsRange {
		return false
	}
	return sa.Lo <= sb.Hi && sb.Lo <= sa.Hi
}
