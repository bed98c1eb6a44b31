package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/lexerr"
	"github.com/dekarrin/lexgen/regex"
)

func buildScanner(t *testing.T, input string, rules ...regex.Rule) *Scanner {
	t.Helper()
	root, err := regex.CombinedTree(rules)
	require.NoError(t, err)
	tables := regex.Analyze(root)
	dfa, err := automaton.Construct(tables)
	require.NoError(t, err)
	min := automaton.Minimize(dfa)
	return New(min, input)
}

// Scenario 1 (spec §8): a keyword, a number, an identifier, and whitespace
// all tokenize correctly in sequence.
func Test_Scanner_keywordNumberIdentifierWhitespace(t *testing.T) {
	s := buildScanner(t, "while x 42",
		regex.Rule{Regex: "while", Tag: 1},
		regex.Rule{Regex: "[0-9]+", Tag: 2},
		regex.Rule{Regex: "[a-z]+", Tag: 3},
		regex.Rule{Regex: " ", Tag: 4},
	)

	toks, err := s.All()
	require.NoError(t, err)

	require.Len(t, toks, 5)
	assert.Equal(t, Token{Tag: 1, Lexeme: "while", Pos: 0, Line: 1, Col: 1}, toks[0])
	assert.Equal(t, Token{Tag: 4, Lexeme: " ", Pos: 5, Line: 1, Col: 6}, toks[1])
	assert.Equal(t, Token{Tag: 3, Lexeme: "x", Pos: 6, Line: 1, Col: 7}, toks[2])
	assert.Equal(t, Token{Tag: 4, Lexeme: " ", Pos: 7, Line: 1, Col: 8}, toks[3])
	assert.Equal(t, Token{Tag: 2, Lexeme: "42", Pos: 8, Line: 1, Col: 9}, toks[4])
}

// Scenario 2 (spec §8): "iffy" is longer than the "if" keyword can match,
// so the identifier rule wins on length alone.
func Test_Scanner_longestMatchBeatsKeyword(t *testing.T) {
	s := buildScanner(t, "iffy",
		regex.Rule{Regex: "if", Tag: 1},
		regex.Rule{Regex: "[a-z]+", Tag: 2},
	)

	toks, err := s.All()
	require.NoError(t, err)

	require.Len(t, toks, 1)
	assert.Equal(t, 2, toks[0].Tag)
	assert.Equal(t, "iffy", toks[0].Lexeme)
}

// Scenario 3 (spec §8): "if" matches both rules at equal length; the lower
// declared tag (the keyword) wins the tie.
func Test_Scanner_tagTieBreakOnEqualLength(t *testing.T) {
	s := buildScanner(t, "if",
		regex.Rule{Regex: "if", Tag: 1},
		regex.Rule{Regex: "[a-z]+", Tag: 2},
	)

	toks, err := s.All()
	require.NoError(t, err)

	require.Len(t, toks, 1)
	assert.Equal(t, 1, toks[0].Tag)
	assert.Equal(t, "if", toks[0].Lexeme)
}

// Scenario 4 (spec §8): a single rule whose language loops through a
// Kleene star consumes the entire matching run as one token.
func Test_Scanner_kleeneRunConsumedAsOneToken(t *testing.T) {
	s := buildScanner(t, "abababb", regex.Rule{Regex: "(a|b)*abb", Tag: 1})

	toks, err := s.All()
	require.NoError(t, err)

	require.Len(t, toks, 1)
	assert.Equal(t, "abababb", toks[0].Lexeme)
	assert.Equal(t, 1, toks[0].Tag)
}

// Scenario 5 (spec §8): optional sign, required integer part, optional
// fractional part, and a whitespace rule all interact correctly.
func Test_Scanner_signedNumbersAndWhitespace(t *testing.T) {
	s := buildScanner(t, "-0.0 -7 3.",
		regex.Rule{Regex: `-?[0-9]+.[0-9]*`, Tag: 1}, // FLOAT
		regex.Rule{Regex: `-?[0-9]+`, Tag: 2},        // INT
		regex.Rule{Regex: " ", Tag: 3},               // SKIP
	)

	toks, err := s.All()
	require.NoError(t, err)

	require.Len(t, toks, 5)
	assert.Equal(t, "-0.0", toks[0].Lexeme)
	assert.Equal(t, 1, toks[0].Tag)
	assert.Equal(t, " ", toks[1].Lexeme)
	assert.Equal(t, "-7", toks[2].Lexeme)
	assert.Equal(t, 2, toks[2].Tag)
	assert.Equal(t, " ", toks[3].Lexeme)
	assert.Equal(t, "3.", toks[4].Lexeme)
	assert.Equal(t, 1, toks[4].Tag)
}

func Test_Scanner_unexpectedCharacterIsSticky(t *testing.T) {
	s := buildScanner(t, "a@b", regex.Rule{Regex: "a", Tag: 1}, regex.Rule{Regex: "b", Tag: 2})

	first, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "a", first.Lexeme)

	_, err = s.Next()
	require.Error(t, err)
	assert.Equal(t, lexerr.KindUnexpectedCharacter, lexerr.KindOf(err))

	// the error is sticky: a second call returns the same failure rather
	// than skipping past '@' to recover
	_, err2 := s.Next()
	require.Error(t, err2)
	assert.Equal(t, err, err2)
}

func Test_Scanner_longestMatchAcrossOverlappingRules(t *testing.T) {
	s := buildScanner(t, "aaa", regex.Rule{Regex: "a", Tag: 1}, regex.Rule{Regex: "aa", Tag: 2})

	toks, err := s.All()
	require.NoError(t, err)

	require.Len(t, toks, 2)
	assert.Equal(t, "aa", toks[0].Lexeme)
	assert.Equal(t, 2, toks[0].Tag)
	assert.Equal(t, "a", toks[1].Lexeme)
	assert.Equal(t, 1, toks[1].Tag)
}
