package lexerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_KindOf(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		expect Kind
	}{
		{
			name:   "InvalidRange",
			err:    InvalidRange("[z-a]", "lower bound is greater than upper bound"),
			expect: KindInvalidRange,
		},
		{
			name:   "ReservedSentinel",
			err:    ReservedSentinel(3),
			expect: KindReservedSentinel,
		},
		{
			name:   "UnbalancedParens",
			err:    UnbalancedParens("unmatched '('"),
			expect: KindUnbalancedParens,
		},
		{
			name:   "MalformedExpression",
			err:    MalformedExpression("'*' with no operand"),
			expect: KindMalformedExpression,
		},
		{
			name:   "NullableRule",
			err:    NullableRule(1),
			expect: KindNullableRule,
		},
		{
			name:   "AmbiguousRange",
			err:    AmbiguousRange("a-f", "d-z", []string{"1", "2"}),
			expect: KindAmbiguousRange,
		},
		{
			name:   "UnexpectedCharacter",
			err:    UnexpectedCharacter(7),
			expect: KindUnexpectedCharacter,
		},
		{
			name:   "not a lexerr error",
			err:    assert.AnError,
			expect: KindUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// execute
			actual := KindOf(tc.err)

			// assert
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func Test_AmbiguousRange_message(t *testing.T) {
	// setup
	assert := assert.New(t)

	// execute
	err := AmbiguousRange("a-f", "d-z", []string{"1", "2", "3"})

	// assert
	assert.Contains(err.Error(), "a-f")
	assert.Contains(err.Error(), "d-z")
	assert.Contains(err.Error(), "1, 2, and 3")
}

func Test_Kind_String(t *testing.T) {
	testCases := []struct {
		kind   Kind
		expect string
	}{
		{KindInvalidRange, "InvalidRange"},
		{KindReservedSentinel, "ReservedSentinel"},
		{KindUnbalancedParens, "UnbalancedParens"},
		{KindMalformedExpression, "MalformedExpression"},
		{KindNullableRule, "NullableRule"},
		{KindAmbiguousRange, "AmbiguousRange"},
		{KindUnexpectedCharacter, "UnexpectedCharacter"},
		{KindUnknown, "Unknown"},
		{Kind(999), "Unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expect, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.kind.String())
		})
	}
}
