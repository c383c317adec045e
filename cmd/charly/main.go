// Command charly runs a Charly source file: load config, open and parse the
// entry file, load the prelude, and evaluate.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"charly/pkg/ast"
	"charly/pkg/config"
	"charly/pkg/evaluator"
	"charly/pkg/prelude"
	"charly/pkg/source"
)

const cliToolVersion = "charly-cli 0.0.0-dev"

// parser is the lexer/parser collaborator spec.md §1 places out of scope.
// No implementation ships in this module; a deployment wires one in here.
var parser ast.Parser

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	}

	return runEntry(args[0])
}

func runEntry(entryPath string) int {
	if parser == nil {
		fmt.Fprintln(os.Stderr, "charly: no parser is configured for this build")
		return 1
	}

	cfgPath := filepath.Join(filepath.Dir(entryPath), "charly.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}

	opener := source.FileOpener{}
	entry, err := opener.Open(entryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", entryPath, err)
		return 1
	}

	program, err := parser.Parse(entry.Path, entry.Contents)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	var opts []evaluator.Option
	if cfg.LoadPrelude {
		opts = append(opts, prelude.Option(cfg.CharlyDir, opener, parser))
	}

	ev, err := evaluator.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start evaluator: %v\n", err)
		return 1
	}

	_, stack, err := ev.ExecProgram(program, ev.Global)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		if stack.Depth() > 0 {
			fmt.Fprintln(os.Stderr, stack.Render())
		}
		return 1
	}

	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: charly <file>")
}
