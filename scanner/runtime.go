package scanner

import (
	"io"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/internal/util"
	"github.com/dekarrin/lexgen/lexerr"
)

// Scanner is the longest-match runtime loop of spec §4.9, pulling tokens
// one at a time from a fully-buffered input string against a frozen
// minimized DFA. It reads the whole input up front (via the caller
// supplying a string, rather than an io.Reader) because spec §4.9's
// algorithm is stated over a random-access input I with indices, unlike
// lazyLex's regex-on-a-reader approach — the core scanner here has no
// analogous need to avoid buffering the whole input, so it doesn't.
type Scanner struct {
	dfa   *automaton.DFA[util.PositionSet]
	input []rune

	cursor int
	line   int
	col    int

	done bool
	err  error
}

// New returns a Scanner that tokenizes input against dfa, starting at the
// beginning of input.
func New(dfa *automaton.DFA[util.PositionSet], input string) *Scanner {
	return &Scanner{
		dfa:   dfa,
		input: []rune(input),
		line:  1,
		col:   1,
	}
}

// HasNext reports whether the scanner has not yet reached end of input
// and has not already failed.
func (s *Scanner) HasNext() bool {
	return !s.done && s.cursor < len(s.input)
}

// Next runs one iteration of the maximal-munch loop (spec §4.9 steps
// 2-5): starting from the DFA's start state at the current cursor,
// advance through every matching transition, remembering the most recent
// accepting state reached. When no further transition fires, emit the
// token of the last accept seen; if none was ever seen, fail with
// UnexpectedCharacter and make the failure sticky — once a Scanner
// returns an error it continues returning it, since spec §7 mandates no
// automatic recovery.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}
	if s.cursor >= len(s.input) {
		return Token{}, io.EOF
	}

	startLine, startCol := s.line, s.col

	state := s.dfa.Start
	k := s.cursor
	lastAcceptPos := -1
	lastAcceptTag := -1

	for k < len(s.input) {
		next, ok := s.dfa.Step(state, s.input[k])
		if !ok {
			break
		}
		state = next
		k++
		if st, ok := s.dfa.State(state); ok && st.Accepting {
			lastAcceptPos = k
			lastAcceptTag = st.Tag
		}
	}

	if lastAcceptPos == -1 {
		s.err = lexerr.UnexpectedCharacter(s.cursor)
		s.done = true
		return Token{}, s.err
	}

	lexeme := string(s.input[s.cursor:lastAcceptPos])
	tok := Token{
		Tag:    lastAcceptTag,
		Lexeme: lexeme,
		Pos:    s.cursor,
		Line:   startLine,
		Col:    startCol,
	}

	s.advancePosition(lexeme)
	s.cursor = lastAcceptPos
	if s.cursor >= len(s.input) {
		s.done = true
	}

	return tok, nil
}

// Peek returns the next token without advancing the scanner.
func (s *Scanner) Peek() (Token, error) {
	saved := *s
	tok, err := s.Next()
	*s = saved
	return tok, err
}

func (s *Scanner) advancePosition(lexeme string) {
	for _, c := range lexeme {
		if c == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
	}
}

// All drains the scanner, returning every token until end of input or the
// first error. Convenience wrapper for callers (and tests) that don't need
// streaming.
func (s *Scanner) All() ([]Token, error) {
	var toks []Token
	for s.HasNext() {
		tok, err := s.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}
