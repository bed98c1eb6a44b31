package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/lexerr"
)

func Test_Tokenize(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []Token
	}{
		{
			name:  "single literal",
			input: "a",
			expect: []Token{
				lit('a'),
			},
		},
		{
			name:  "literal concatenation",
			input: "abc",
			expect: []Token{
				lit('a'), lit('b'), lit('c'),
			},
		},
		{
			name:  "union and grouping",
			input: "(a|b)",
			expect: []Token{
				op(KindLParen), lit('a'), op(KindUnion), lit('b'), op(KindRParen),
			},
		},
		{
			name:  "kleene star and plus and question",
			input: "a*b+c?",
			expect: []Token{
				lit('a'), op(KindStar), lit('b'), op(KindPlus), lit('c'), op(KindQuestion),
			},
		},
		{
			name:  "digit range",
			input: "[0-9]",
			expect: []Token{
				rng('0', '9'),
			},
		},
		{
			name:  "escaped operator is a literal",
			input: `\*`,
			expect: []Token{
				lit('*'),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			assert := assert.New(t)
			require := require.New(t)

			// execute
			actual, err := Tokenize(tc.input)

			// assert
			require.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Tokenize_errors(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectKind lexerr.Kind
	}{
		{
			name:       "reserved sentinel",
			input:      "a#b",
			expectKind: lexerr.KindReservedSentinel,
		},
		{
			name:       "range missing closing bracket",
			input:      "[a-b",
			expectKind: lexerr.KindInvalidRange,
		},
		{
			name:       "range not exactly a-b shape",
			input:      "[abc]",
			expectKind: lexerr.KindInvalidRange,
		},
		{
			name:       "range reversed bounds",
			input:      "[9-0]",
			expectKind: lexerr.KindInvalidRange,
		},
		{
			name:       "range crosses letter/digit",
			input:      "[a-9]",
			expectKind: lexerr.KindInvalidRange,
		},
		{
			name:       "trailing backslash",
			input:      `a\`,
			expectKind: lexerr.KindInvalidRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// execute
			_, err := Tokenize(tc.input)

			// assert
			require.Error(t, err)
			assert.Equal(t, tc.expectKind, lexerr.KindOf(err))
		})
	}
}

func Test_sameScript(t *testing.T) {
	testCases := []struct {
		name   string
		lo, hi rune
		expect bool
	}{
		{name: "ascii letters", lo: 'a', hi: 'z', expect: true},
		{name: "ascii digits", lo: '0', hi: '9', expect: true},
		{name: "cyrillic letters", lo: 'а', hi: 'я', expect: true},
		{name: "letter and digit", lo: 'a', hi: '9', expect: false},
		{name: "latin and greek", lo: 'a', hi: 'ω', expect: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, sameScript(tc.lo, tc.hi))
		})
	}
}
