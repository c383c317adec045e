// Package prelude implements the prelude loading lifecycle of spec.md §5:
// resolving $CHARLYDIR, reading and parsing src/std/prelude.charly, and
// running it against the evaluator's top scope before construction
// completes.
package prelude

import (
	"fmt"
	"path/filepath"

	"charly/pkg/ast"
	"charly/pkg/evaluator"
	"charly/pkg/source"
)

const relPath = "src/std/prelude.charly"

// Option returns an evaluator.Option that loads and runs the prelude
// rooted at charlyDir during evaluator construction. A parse or run error,
// or an unreadable prelude file, aborts construction (spec.md §5).
func Option(charlyDir string, opener source.Opener, parser ast.Parser) evaluator.Option {
	return evaluator.WithPrelude(func(e *evaluator.Evaluator) error {
		return Load(e, charlyDir, opener, parser)
	})
}

// missingPreludeError reports a prelude that could not be located or read,
// kinded evaluator.KindPreludeMissing so a caller inspecting the error via
// errors.As sees the same RuntimeError shape the evaluator itself raises.
func missingPreludeError(format string, args ...any) error {
	return &evaluator.RuntimeError{
		ErrKind: evaluator.KindPreludeMissing,
		Message: fmt.Sprintf(format, args...),
	}
}

// Load resolves $CHARLYDIR/src/std/prelude.charly via opener, parses it
// with parser, and executes it against e.Global.
func Load(e *evaluator.Evaluator, charlyDir string, opener source.Opener, parser ast.Parser) error {
	if charlyDir == "" {
		return missingPreludeError("prelude: CHARLYDIR is not set")
	}
	path := filepath.Join(charlyDir, relPath)

	src, err := opener.Open(path)
	if err != nil {
		return missingPreludeError("prelude: %s is not readable: %v", path, err)
	}

	program, err := parser.Parse(path, src.Contents)
	if err != nil {
		return fmt.Errorf("prelude: parse %s: %w", path, err)
	}

	if _, _, err := e.ExecProgram(program, e.Global); err != nil {
		return fmt.Errorf("prelude: run %s: %w", path, err)
	}
	return nil
}
