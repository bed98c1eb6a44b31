package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/dekarrin/lexgen/scanner"
)

// runREPL implements `lexgen repl <rulefile>`: compiles the rule file once,
// then reads lines of sample input from an interactive GNU-readline-backed
// prompt and prints the token stream each line scans to, without ever
// writing a generated scanner file. Grounded on tunaq's
// internal/input.InteractiveCommandReader, which wraps the same
// chzyer/readline.Instance the way this does, trimmed to this driver's
// single-shot prompt loop instead of a persistent command-reader type.
func runREPL(cfg Config, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: repl requires exactly one rule-file argument")
		return ExitRuleFileError
	}

	srcBytes, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRuleFileError
	}

	result, err := compileSource(string(srcBytes), cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRegexCompileError
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt: "lexgen> ",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: create readline config: %s\n", err)
		return ExitScannerRuntimeError
	}
	defer rl.Close()

	fmt.Fprintf(os.Stderr, "lexgen repl: %d rule(s) loaded from %s; ^D to exit\n", len(result.File.Rules), args[0])

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return ExitScannerRuntimeError
		}

		sc := scanner.New(result.DFA, line)
		toks, scanErr := sc.All()
		for _, t := range toks {
			fmt.Printf("  %s\n", t)
		}
		if scanErr != nil {
			fmt.Printf("  ERROR: %s\n", scanErr)
		}
	}
}
