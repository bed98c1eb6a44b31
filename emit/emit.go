// Package emit generates a stand-alone Go scanner program from a frozen
// minimized DFA and a rule→action-source map (spec §6): a single source
// file containing the DFA's tables, the start state, the longest-match
// loop of spec §4.9 reimplemented as emitted (not imported) source so the
// output has no dependency on this module, and an action-dispatch
// function mapping tag to the user's verbatim action source.
//
// Code generation uses text/template: no templating library anywhere in
// the retrieval pack is grounded for Go source generation specifically
// (the pack's code generators — tunaq's ictiobus, the nex lexer-generator
// in other_examples/ — both hand-assemble output with strings.Builder
// instead), so this is a deliberate standard-library choice, recorded in
// DESIGN.md.
package emit

import (
	"fmt"
	"io"
	"sort"
	"text/template"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/internal/util"
	"github.com/dekarrin/lexgen/rulefile"
)

// Options controls the shape of the emitted file.
type Options struct {
	// Package is the emitted file's package name.
	Package string

	// EmitMain controls whether a `func main()` reading stdin and
	// invoking the loop is included, or just the scanner package code
	// (for embedding into a larger program).
	EmitMain bool
}

type edgeData struct {
	Key string
	To  string
}

type stateData struct {
	Name      string
	Edges     []edgeData
	Accepting bool
	Tag       int
}

type ruleData struct {
	Tag    int
	Action string
}

type templateData struct {
	Package  string
	EmitMain bool
	Start    string
	States   []stateData
	Rules    []ruleData
}

// Generate writes a complete Go source file implementing dfa's scanning
// behavior to w, dispatching to rules' action source by tag.
func Generate(w io.Writer, dfa *automaton.DFA[util.PositionSet], rules []rulefile.Rule, opts Options) error {
	data := templateData{
		Package:  opts.Package,
		EmitMain: opts.EmitMain,
		Start:    dfa.Start,
	}

	for _, name := range util.OrderedKeys(toStringMap(dfa.States())) {
		st, _ := dfa.State(name)
		var edges []edgeData
		trans := dfa.Transitions(name)
		keys := make([]string, 0, len(trans))
		for k := range trans {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			edges = append(edges, edgeData{Key: k, To: trans[k]})
		}
		data.States = append(data.States, stateData{
			Name:      name,
			Edges:     edges,
			Accepting: st.Accepting,
			Tag:       st.Tag,
		})
	}

	for _, r := range rules {
		action := r.Action
		if action == "" {
			action = "// no action"
		}
		data.Rules = append(data.Rules, ruleData{Tag: r.Tag, Action: action})
	}

	tmpl, err := template.New("scanner").Parse(scannerTemplate)
	if err != nil {
		return fmt.Errorf("parsing emitter template: %w", err)
	}

	return tmpl.Execute(w, data)
}

func toStringMap(s util.StringSet) map[string]bool {
	return map[string]bool(s)
}

const scannerTemplate = `// Code generated by lexgen. DO NOT EDIT.

package {{.Package}}

import (
	"fmt"
{{- if .EmitMain}}
	"io"
	"os"
{{- end}}
)

type Token struct {
	Tag    int
	Lexeme string
	Pos    int
}

var transitions = map[string]map[string]string{
{{- range .States}}
	{{printf "%q" .Name}}: {
{{- range .Edges}}
		{{printf "%q" .Key}}: {{printf "%q" .To}},
{{- end}}
	},
{{- end}}
}

var accept = map[string]int{
{{- range .States}}
{{- if .Accepting}}
	{{printf "%q" .Name}}: {{.Tag}},
{{- end}}
{{- end}}
}

const startState = {{printf "%q" .Start}}

func matchesEdge(key string, c rune) bool {
	r := []rune(key)
	if len(r) == 3 && r[1] == '-' {
		return c >= r[0] && c <= r[2]
	}
	return len(r) > 0 && c == r[0]
}

func step(state string, c rune) (string, bool) {
	for key, to := range transitions[state] {
		if matchesEdge(key, c) {
			return to, true
		}
	}
	return "", false
}

// Scan runs the longest-match loop over input and returns every token it
// produced, or an error at the first unmatched character.
func Scan(input string) ([]Token, error) {
	runes := []rune(input)
	var tokens []Token

	cursor := 0
	for cursor < len(runes) {
		state := startState
		k := cursor
		lastAcceptPos := -1
		lastAcceptTag := -1

		for k < len(runes) {
			next, ok := step(state, runes[k])
			if !ok {
				break
			}
			state = next
			k++
			if tag, ok := accept[state]; ok {
				lastAcceptPos = k
				lastAcceptTag = tag
			}
		}

		if lastAcceptPos == -1 {
			return tokens, fmt.Errorf("unexpected character at position %d", cursor)
		}

		tokens = append(tokens, Token{
			Tag:    lastAcceptTag,
			Lexeme: string(runes[cursor:lastAcceptPos]),
			Pos:    cursor,
		})
		cursor = lastAcceptPos
	}

	return tokens, nil
}

// Dispatch runs the action source associated with tok's rule tag.
func Dispatch(tok Token) {
	switch tok.Tag {
{{- range .Rules}}
	case {{.Tag}}:
		{{.Action}}
{{- end}}
	}
}
{{if .EmitMain}}
func main() {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tokens, err := Scan(string(input))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}

	for _, tok := range tokens {
		Dispatch(tok)
	}
}
{{end}}
`
