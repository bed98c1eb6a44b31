/*
Lexgen compiles a lexer rule file into a minimized DFA and emits a
stand-alone scanner source file.

Usage:

	lexgen compile [flags] <rulefile>
	lexgen repl <rulefile>
	lexgen watch <rulefile>

The flags are:

	-c, --config FILE
		Use the given lexgen.toml generator config instead of lexgen.toml
		in the current directory. Missing files fall back to defaults.

	-o, --output FILE
		Override the config's output path for the emitted scanner.

	-p, --package NAME
		Override the config's output package name.

	--dump {table|dot|rules|trace}
		Print a diagnostic rendering of the compiled DFA or rule set to
		stdout before emitting. trace requires --sample and prints the
		DFA states visited while scanning it.

	--sample TEXT
		Run TEXT through the compiled scanner and print its token stream
		before emitting, failing the run with exit 3 on an unmatched
		character.

compile reads a rule file, runs it through the direct-construction
regex-to-DFA compiler, minimizes the result, and writes a generated scanner
to disk. repl compiles once and then tokenizes lines typed at an
interactive prompt. watch recompiles whenever the rule file changes on
disk.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Exit codes, per spec §6: 0 success; 1 rule-file error; 2 regex compile
// error; 3 scanner runtime error on sample input.
const (
	ExitSuccess = iota
	ExitRuleFileError
	ExitRegexCompileError
	ExitScannerRuntimeError
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: lexgen <compile|repl|watch> [flags] <rulefile>")
		return ExitRuleFileError
	}

	sub := args[0]
	rest := args[1:]

	fs := pflag.NewFlagSet("lexgen "+sub, pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "lexgen.toml", "generator config file")
	output := fs.StringP("output", "o", "", "override output path for the emitted scanner")
	pkg := fs.StringP("package", "p", "", "override output package name")
	dump := fs.String("dump", "", "print a diagnostic rendering: table, dot, rules, or trace")
	sample := fs.String("sample", "", "run sample text through the compiled scanner before emitting")

	if err := fs.Parse(rest); err != nil {
		return ExitRuleFileError
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: loading %s: %s\n", *configPath, err)
		return ExitRuleFileError
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *pkg != "" {
		cfg.Package = *pkg
	}

	switch sub {
	case "compile":
		return runCompile(cfg, fs.Args(), *dump, *sample)
	case "repl":
		return runREPL(cfg, fs.Args())
	case "watch":
		return runWatch(cfg, fs.Args())
	default:
		fmt.Fprintf(os.Stderr, "ERROR: unknown subcommand %q\n", sub)
		return ExitRuleFileError
	}
}
