// Package lexerr defines the typed error taxonomy raised by the regex
// compiler and scanner runtime. Every kind shares one unexported struct
// implementing error, following the pattern tunaq's tqerrors package uses:
// a technical Error() string plus a constructor per kind, so callers can
// switch on KindOf(err) without string matching.
package lexerr

import (
	"fmt"

	"github.com/dekarrin/lexgen/internal/util"
)

// Kind identifies which error taxonomy entry a lexgen error belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRange
	KindReservedSentinel
	KindUnbalancedParens
	KindMalformedExpression
	KindNullableRule
	KindAmbiguousRange
	KindUnexpectedCharacter
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRange:
		return "InvalidRange"
	case KindReservedSentinel:
		return "ReservedSentinel"
	case KindUnbalancedParens:
		return "UnbalancedParens"
	case KindMalformedExpression:
		return "MalformedExpression"
	case KindNullableRule:
		return "NullableRule"
	case KindAmbiguousRange:
		return "AmbiguousRange"
	case KindUnexpectedCharacter:
		return "UnexpectedCharacter"
	default:
		return "Unknown"
	}
}

// lexError is the concrete type behind every constructor in this package.
type lexError struct {
	kind Kind
	msg  string
	wrap error
}

func (e *lexError) Error() string {
	return e.msg
}

func (e *lexError) Unwrap() error {
	return e.wrap
}

// KindOf returns the taxonomy entry the error belongs to. Returns
// KindUnknown for any error not produced by this package.
func KindOf(err error) Kind {
	if le, ok := err.(*lexError); ok {
		return le.kind
	}
	return KindUnknown
}

func newf(kind Kind, format string, a ...interface{}) error {
	return &lexError{kind: kind, msg: fmt.Sprintf(format, a...)}
}

// InvalidRange reports a malformed `[a-b]` bracket expression: wrong
// length, reversed bounds, or bounds that are not both letters or both
// digits.
func InvalidRange(src string, reason string) error {
	return newf(KindInvalidRange, "invalid range %q: %s", src, reason)
}

// ReservedSentinel reports a user regex containing the `#` sentinel
// character, which is reserved for internally synthesized rule markers.
func ReservedSentinel(pos int) error {
	return newf(KindReservedSentinel, "position %d: '#' is reserved and may not appear in a user regex", pos)
}

// UnbalancedParens reports mismatched grouping during infix-to-postfix
// conversion.
func UnbalancedParens(detail string) error {
	return newf(KindUnbalancedParens, "unbalanced parentheses: %s", detail)
}

// MalformedExpression reports postfix evaluation leaving other than one
// tree on the stack, or an operator with a missing operand.
func MalformedExpression(detail string) error {
	return newf(KindMalformedExpression, "malformed expression: %s", detail)
}

// NullableRule reports a rule whose language contains the empty string,
// which would let the scanner loop forever making zero-length progress.
func NullableRule(tag int) error {
	return newf(KindNullableRule, "rule %d matches the empty string; a scanner rule must not be nullable", tag)
}

// AmbiguousRange reports two distinct range symbols at the same DFA state
// that overlap on at least one character. tags lists the rule tags whose
// leaves contributed the conflicting ranges.
func AmbiguousRange(symbolA, symbolB string, tags []string) error {
	list := util.MakeTextList(tags)
	return newf(KindAmbiguousRange, "ranges %q and %q overlap at the same state (rules %s)", symbolA, symbolB, list)
}

// UnexpectedCharacter reports the scanner reaching no accepting state while
// extending a match from a given input offset, so no token can be emitted
// there.
func UnexpectedCharacter(pos int) error {
	return newf(KindUnexpectedCharacter, "unexpected character at position %d", pos)
}
