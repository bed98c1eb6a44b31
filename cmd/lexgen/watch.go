package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// runWatch implements `lexgen watch <rulefile>`: recompiles the rule file
// every time it changes on disk, until interrupted. Grounded on
// opal-lang-opal's runtime use of fsnotify for reload-on-change; the
// teacher repo has no file watcher of its own.
func runWatch(cfg Config, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "ERROR: watch requires exactly one rule-file argument")
		return ExitRuleFileError
	}
	path := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRuleFileError
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return ExitRuleFileError
	}

	compileOnce := func() int {
		return runCompile(cfg, args, "", "")
	}

	fmt.Fprintf(os.Stderr, "lexgen watch: watching %s for changes (^C to stop)\n", path)
	if code := compileOnce(); code != ExitSuccess {
		fmt.Fprintf(os.Stderr, "lexgen watch: initial compile failed, waiting for a fix\n")
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return ExitSuccess
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fmt.Fprintf(os.Stderr, "lexgen watch: %s changed, recompiling\n", ev.Name)
			compileOnce()

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return ExitSuccess
			}
			fmt.Fprintf(os.Stderr, "lexgen watch: watcher error: %s\n", watchErr)
		}
	}
}
