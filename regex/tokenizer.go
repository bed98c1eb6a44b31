package regex

import (
	"unicode"

	"golang.org/x/text/runes"

	"github.com/dekarrin/lexgen/lexerr"
)

// Tokenize scans regex source text into a token stream (spec §4.1).
//
//   - `\x` emits a literal for the next character regardless of its
//     operator meaning.
//   - `#` is reserved; it is rejected with ReservedSentinel since sentinels
//     are only synthesized by the combiner (§4.5), never written by a user.
//   - `*`, `|`, `+`, `?`, `(`, `)` emit their operators.
//   - `[a-b]` emits a range token, validated with sameScript.
//   - any other character emits a literal.
func Tokenize(src string) ([]Token, error) {
	runes := []rune(src)
	var out []Token

	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch {
		case c == '\\':
			if i+1 >= len(runes) {
				return nil, lexerr.InvalidRange(src, "trailing backslash with no escaped character")
			}
			i++
			out = append(out, lit(runes[i]))

		case c == '#':
			return nil, lexerr.ReservedSentinel(i)

		case c == '*':
			out = append(out, op(KindStar))
		case c == '|':
			out = append(out, op(KindUnion))
		case c == '+':
			out = append(out, op(KindPlus))
		case c == '?':
			out = append(out, op(KindQuestion))
		case c == '(':
			out = append(out, op(KindLParen))
		case c == ')':
			out = append(out, op(KindRParen))

		case c == '[':
			end := i
			for end < len(runes) && runes[end] != ']' {
				end++
			}
			if end >= len(runes) {
				return nil, lexerr.InvalidRange(string(runes[i:]), "no closing ']'")
			}
			body := runes[i+1 : end]
			tok, err := parseRangeBody(string(body))
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			i = end

		default:
			out = append(out, lit(c))
		}
	}

	return out, nil
}

// parseRangeBody validates and builds the KindRange token for the text
// between `[` and `]`, exclusive. It must be exactly three characters of
// the form a-b with a <= b and a, b both letters or both digits.
func parseRangeBody(body string) (Token, error) {
	r := []rune(body)
	if len(r) != 3 || r[1] != '-' {
		return Token{}, lexerr.InvalidRange("["+body+"]", "range must be exactly `a-b`")
	}
	lo, hi := r[0], r[2]
	if lo > hi {
		return Token{}, lexerr.InvalidRange("["+body+"]", "lower bound is greater than upper bound")
	}
	if !sameScript(lo, hi) {
		return Token{}, lexerr.InvalidRange("["+body+"]", "bounds must both be letters or both be digits")
	}
	return rng(lo, hi), nil
}

// scripts lists the Unicode scripts a letter range is allowed to span. A
// range whose bounds fall in two different scripts (e.g. Latin 'a' to
// Greek 'ω') is rejected even though both bounds are individually letters.
var scripts = []*unicode.RangeTable{unicode.Latin, unicode.Greek, unicode.Cyrillic, unicode.Han}

// sameScript reports whether lo and hi are both letters of the same script
// or both digits, as spec §4.1 requires ("a and b are not both letters or
// both digits" is the failure condition, extended here so that "letters"
// also means "from the same script"). Membership in each script is tested
// with runes.In, golang.org/x/text's set-of-runes predicate over the
// stdlib *unicode.RangeTable definitions, rather than unicode.Is directly.
func sameScript(lo, hi rune) bool {
	if unicode.IsDigit(lo) && unicode.IsDigit(hi) {
		return true
	}
	if !unicode.IsLetter(lo) || !unicode.IsLetter(hi) {
		return false
	}
	for _, script := range scripts {
		set := runes.In(script)
		if set.Contains(lo) && set.Contains(hi) {
			return true
		}
	}
	return false
}
