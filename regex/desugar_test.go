package regex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Desugar(t *testing.T) {
	testCases := []struct {
		name   string
		input  []Token
		expect []Token
	}{
		{
			name:  "plain concatenation gets explicit operator",
			input: []Token{lit('a'), lit('b')},
			expect: []Token{
				lit('a'), op(KindConcat), lit('b'),
			},
		},
		{
			name:  "question mark expands to union with empty",
			input: []Token{lit('a'), op(KindQuestion)},
			expect: []Token{
				op(KindLParen), lit('a'), op(KindUnion), Token{Kind: KindEmpty}, op(KindRParen),
			},
		},
		{
			name:  "plus expands to X X*",
			input: []Token{lit('a'), op(KindPlus)},
			expect: []Token{
				lit('a'), op(KindConcat), lit('a'), op(KindStar),
			},
		},
		{
			name:  "plus after star is a no-op",
			input: []Token{lit('a'), op(KindStar), op(KindPlus)},
			expect: []Token{
				lit('a'), op(KindStar),
			},
		},
		{
			name:  "question on a parenthesized group",
			input: []Token{op(KindLParen), lit('a'), op(KindUnion), lit('b'), op(KindRParen), op(KindQuestion)},
			expect: []Token{
				op(KindLParen),
				op(KindLParen), lit('a'), op(KindUnion), lit('b'), op(KindRParen),
				op(KindUnion), Token{Kind: KindEmpty},
				op(KindRParen),
			},
		},
		{
			name:  "union then concat with following atom inserts operator only where needed",
			input: []Token{lit('a'), op(KindUnion), lit('b'), lit('c')},
			expect: []Token{
				lit('a'), op(KindUnion), lit('b'), op(KindConcat), lit('c'),
			},
		},
		{
			name:  "closed group followed by atom concatenates",
			input: []Token{op(KindLParen), lit('a'), op(KindRParen), lit('b')},
			expect: []Token{
				op(KindLParen), lit('a'), op(KindRParen), op(KindConcat), lit('b'),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// execute
			actual := Desugar(tc.input)

			// assert
			assert.Equal(t, tc.expect, actual)
		})
	}
}
