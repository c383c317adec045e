package prelude

import (
	"errors"
	"testing"

	"charly/pkg/ast"
	"charly/pkg/evaluator"
	"charly/pkg/source"
)

type fakeOpener struct {
	contents map[string][]byte
}

func (f fakeOpener) Open(path string) (source.Source, error) {
	c, ok := f.contents[path]
	if !ok {
		return source.Source{}, errors.New("file not found")
	}
	return source.Source{Path: path, Contents: c}, nil
}

type fakeParser struct {
	program *ast.Program
	err     error
}

func (f fakeParser) Parse(path string, src []byte) (*ast.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.program, nil
}

func TestLoadRunsPreludeAgainstGlobalScope(t *testing.T) {
	opener := fakeOpener{contents: map[string][]byte{
		"/charlydir/src/std/prelude.charly": []byte("const PRELUDE_LOADED = true"),
	}}
	parser := fakeParser{program: ast.Prog("prelude.charly", ast.Const("PRELUDE_LOADED", ast.Bool(true)))}

	ev, err := evaluator.New(Option("/charlydir", opener, parser))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ev.Global.Defined("PRELUDE_LOADED") {
		t.Fatalf("expected prelude binding to be visible in global scope")
	}
}

func TestLoadFailsConstructionOnMissingFile(t *testing.T) {
	opener := fakeOpener{contents: map[string][]byte{}}
	parser := fakeParser{}

	_, err := evaluator.New(Option("/charlydir", opener, parser))
	if err == nil {
		t.Fatalf("expected construction to fail when prelude file is missing")
	}
}

func TestLoadFailsConstructionOnParseError(t *testing.T) {
	opener := fakeOpener{contents: map[string][]byte{
		"/charlydir/src/std/prelude.charly": []byte("???"),
	}}
	parser := fakeParser{err: &ast.SyntaxError{Message: "unexpected token"}}

	_, err := evaluator.New(Option("/charlydir", opener, parser))
	if err == nil {
		t.Fatalf("expected construction to fail on parse error")
	}
}

func TestLoadFailsConstructionOnRunError(t *testing.T) {
	opener := fakeOpener{contents: map[string][]byte{
		"/charlydir/src/std/prelude.charly": []byte("self"),
	}}
	parser := fakeParser{program: ast.Prog("prelude.charly", ast.ID("self"))}

	_, err := evaluator.New(Option("/charlydir", opener, parser))
	if err == nil {
		t.Fatalf("expected construction to fail when the prelude itself errors")
	}
}

func TestOptionRequiresCharlyDir(t *testing.T) {
	_, err := evaluator.New(Option("", fakeOpener{}, fakeParser{}))
	if err == nil {
		t.Fatalf("expected error when CHARLYDIR is empty")
	}
	rtErr, ok := err.(*evaluator.RuntimeError)
	if !ok || rtErr.ErrKind != evaluator.KindPreludeMissing {
		t.Fatalf("expected KindPreludeMissing, got %#v", err)
	}
}

func TestLoadFailsConstructionOnMissingFileIsPreludeMissing(t *testing.T) {
	opener := fakeOpener{contents: map[string][]byte{}}
	parser := fakeParser{}

	_, err := evaluator.New(Option("/charlydir", opener, parser))
	rtErr, ok := err.(*evaluator.RuntimeError)
	if !ok || rtErr.ErrKind != evaluator.KindPreludeMissing {
		t.Fatalf("expected KindPreludeMissing, got %#v", err)
	}
}
