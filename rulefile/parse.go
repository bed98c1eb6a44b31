// Package rulefile is the external rule-file reader spec §6 treats as an
// out-of-core adapter: it turns rule-file source text into the
// (regex_source, action_source, tag) triples regex.CombinedTree consumes,
// and nothing in this package touches position analysis, subset
// construction, or minimization.
//
// The section-marker state machine is grounded on
// original_source/direct_afd_construction/src/lex_reader.rs's
// line-oriented preamble/definitions/rules reader, and its general shape
// (a Preprocess step that splits a multi-section source before the real
// work starts) follows tunaq's internal/ictiobus/fishi.go.
package rulefile

import (
	"strings"

	"github.com/dekarrin/lexgen/lexerr"
)

// Rule is one rule-file entry: the regex source it matched on, the
// verbatim action source to dispatch when it wins, and its 1-based
// declaration-order tag.
type Rule struct {
	Regex  string
	Action string
	Tag    int
}

// File is a fully split rule file: named macro definitions from the
// `%{ ... %}` header, plus the ordered list of rules after `%%`.
type File struct {
	Macros map[string]string
	Rules  []Rule
}

type mode int

const (
	modePreamble mode = iota
	modeMacros
	modeRules
)

// Parse splits rule-file source into macro definitions and rule triples
// (spec §6). Sections are delimited by `%{`/`%}` for macro definitions and
// `%%` for the start of the rules section; a rule line is `<regex> {
// <action> }` with the action optional, and a line beginning with `|`
// extends the immediately preceding rule's regex with a union alternative
// rather than starting a new rule.
func Parse(src string) (*File, error) {
	f := &File{Macros: map[string]string{}}

	m := modePreamble
	var lastRuleIdx = -1

	for _, rawLine := range strings.Split(src, "\n") {
		line := strings.TrimSpace(rawLine)

		switch {
		case line == "%{":
			m = modeMacros
			continue
		case line == "%}":
			m = modePreamble
			continue
		case line == "%%":
			m = modeRules
			continue
		case line == "":
			continue
		}

		switch m {
		case modeMacros:
			name, body, ok := strings.Cut(line, " ")
			if !ok {
				return nil, lexerr.MalformedExpression("macro definition missing body: " + line)
			}
			f.Macros[name] = strings.TrimSpace(body)

		case modeRules:
			if strings.HasPrefix(line, "|") {
				if lastRuleIdx == -1 {
					return nil, lexerr.MalformedExpression("'|' continuation with no preceding rule: " + line)
				}
				fragment, _, err := splitRuleLine(strings.TrimPrefix(line, "|"))
				if err != nil {
					return nil, err
				}
				prev := &f.Rules[lastRuleIdx]
				prev.Regex = "(" + prev.Regex + ")|(" + fragment + ")"
				continue
			}

			regexSrc, action, err := splitRuleLine(line)
			if err != nil {
				return nil, err
			}
			tag := len(f.Rules) + 1
			f.Rules = append(f.Rules, Rule{Regex: regexSrc, Action: action, Tag: tag})
			lastRuleIdx = len(f.Rules) - 1

		case modePreamble:
			// preamble text outside of %{...%} is free-form and ignored by
			// the core; a real driver might echo it into the emitted file
			// as a header comment, which is the emitter's concern.
		}
	}

	return f, nil
}

// splitRuleLine finds the regex portion and, if present, the `{ action }`
// body of a single rule line, honoring quoted strings: a `"` toggles
// quote state, and braces inside a quoted string never count as the
// action delimiter. Braces inside an unquoted action body nest (so action
// source containing its own `{ }` pairs, e.g. a Go block, is captured
// whole).
func splitRuleLine(line string) (regexSrc string, action string, err error) {
	inQuotes := false
	braceStart := -1
	depth := 0

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case inQuotes:
			// literal, preserve as-is
		case c == '{':
			if depth == 0 {
				braceStart = i
			}
			depth++
		case c == '}':
			depth--
			if depth == 0 && braceStart != -1 {
				regexSrc = strings.TrimSpace(line[:braceStart])
				action = strings.TrimSpace(line[braceStart+1 : i])
				return regexSrc, action, nil
			}
			if depth < 0 {
				return "", "", lexerr.MalformedExpression("unmatched '}' in rule line: " + line)
			}
		}
	}

	if depth != 0 {
		return "", "", lexerr.MalformedExpression("unmatched '{' in rule line: " + line)
	}

	return strings.TrimSpace(line), "", nil
}
