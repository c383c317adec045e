package evaluator

import (
	"fmt"

	"charly/pkg/ast"
)

// ErrorKind enumerates the runtime error kinds of spec.md §7.
type ErrorKind string

const (
	KindNotDefined       ErrorKind = "NotDefined"
	KindAlreadyDefined   ErrorKind = "AlreadyDefined"
	KindReservedName     ErrorKind = "ReservedName"
	KindConstantAssign   ErrorKind = "ConstantAssignment"
	KindNotCallable      ErrorKind = "NotCallable"
	KindNotInstantiable  ErrorKind = "NotInstantiable"
	KindArityMismatch    ErrorKind = "ArityMismatch"
	KindNotAnIdentifier  ErrorKind = "NotAnIdentifier"
	KindNotAClass        ErrorKind = "NotAClass"
	KindIllegalClassBody ErrorKind = "IllegalClassBody"
	KindNotImplemented   ErrorKind = "NotImplemented"
	KindUnexpectedNode   ErrorKind = "UnexpectedNode"
	KindPreludeMissing   ErrorKind = "PreludeMissing"
)

// RuntimeError is the single error type the evaluator raises (spec.md §7):
// it carries the offending node, the active Context, and a message.
type RuntimeError struct {
	ErrKind ErrorKind
	Node    ast.Node
	Context *Context
	Message string
}

func (e *RuntimeError) Error() string {
	path := "<unknown>"
	if e.Context != nil {
		path = e.Context.Path
	}
	return fmt.Sprintf("%s: %s (%s)", e.ErrKind, e.Message, path)
}

func newError(kind ErrorKind, node ast.Node, ctx *Context, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		ErrKind: kind,
		Node:    node,
		Context: ctx,
		Message: fmt.Sprintf(format, args...),
	}
}
