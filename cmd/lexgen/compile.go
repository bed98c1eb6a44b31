package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/emit"
	"github.com/dekarrin/lexgen/internal/diag"
	"github.com/dekarrin/lexgen/scanner"
)

// runCompile implements `lexgen compile <rulefile>`: compiles the rule
// file, optionally dumps diagnostics, optionally checks a sample input
// against the resulting scanner, and emits the generated scanner source.
func runCompile(cfg Config, args []string, dump string, sample string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: compile requires exactly one rule-file argument")
		return ExitRuleFileError
	}

	srcBytes, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRuleFileError
	}

	cacheDir := cfg.CacheDir
	result, err := compileSource(string(srcBytes), cacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRegexCompileError
	}

	switch dump {
	case "table":
		fmt.Println(diag.TransitionTable(result.DFA))
	case "dot":
		if err := diag.WriteDotGraph(os.Stdout, result.DFA); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return ExitRegexCompileError
		}
	case "rules":
		tags := make([]int, len(result.File.Rules))
		names := make([]string, len(result.File.Rules))
		regexes := make([]string, len(result.File.Rules))
		for i, r := range result.File.Rules {
			tags[i] = r.Tag
			names[i] = fmt.Sprintf("rule%d", r.Tag)
			regexes[i] = r.Regex
		}
		fmt.Println(diag.RuleTable(tags, names, regexes))
	case "trace":
		if sample == "" {
			fmt.Fprintln(os.Stderr, "ERROR: --dump trace requires --sample")
			return ExitRuleFileError
		}
		for _, name := range automaton.TraceStates(result.DFA, sample) {
			fmt.Println(name)
		}
	}

	if sample != "" {
		sc := scanner.New(result.DFA, sample)
		toks, err := sc.All()
		for _, t := range toks {
			fmt.Printf("%s\n", t)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
			return ExitScannerRuntimeError
		}
	}

	outPath := cfg.Output
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRuleFileError
	}
	defer out.Close()

	opts := emit.Options{Package: cfg.Package, EmitMain: cfg.EmitMain}
	if err := emit.Generate(out, result.DFA, result.File.Rules, opts); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRegexCompileError
	}

	if result.FromCache {
		fmt.Fprintf(os.Stderr, "lexgen: wrote %s (DFA cache hit)\n", outPath)
	} else {
		fmt.Fprintf(os.Stderr, "lexgen: wrote %s\n", outPath)
	}

	return ExitSuccess
}
