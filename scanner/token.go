// Package scanner implements the longest-match, maximal-munch
// tokenization loop (spec §4.9) that drives a frozen minimized DFA over
// input text. Its Token/TokenStream shape is adapted from tunaq's
// internal/ictiobus/types (Token, TokenClass, TokenStream interfaces) and
// its line/column bookkeeping is adapted from internal/ictiobus/lex/
// lazy.go's lazyLex, with the auto-recovery "panic mode" lazyLex uses on
// an unmatched character removed: spec §7 requires UnexpectedCharacter to
// be terminal, not silently skipped past.
package scanner

import "fmt"

// Token is one lexeme matched by the scanner, tagged with the rule that
// produced it (spec §3: "its rule tag is the tag of the minimum-index
// sentinel"). Tag is the 1-based declaration-order rule tag; resolving a
// tag to a human name is the rule-file reader/emitter's concern, not the
// scanner's.
type Token struct {
	Tag    int
	Lexeme string

	// Pos is the 0-based rune offset of the first character of Lexeme in
	// the scanned input — the `position` argument of UnexpectedCharacter.
	Pos int

	// Line and Col are 1-based, for diagnostics.
	Line int
	Col  int
}

func (t Token) String() string {
	return fmt.Sprintf("(tag=%d %q @%d:%d)", t.Tag, t.Lexeme, t.Line, t.Col)
}

// TokenStream is a pull-based stream of scanned tokens, mirroring
// ictiobus/types.TokenStream's Next/Peek/HasNext shape.
type TokenStream interface {
	Next() (Token, error)
	Peek() (Token, error)
	HasNext() bool
}
