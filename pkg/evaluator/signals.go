package evaluator

import "charly/pkg/runtime"

// returnSignal and breakSignal are the non-local exits of spec.md §5,
// modeled the same way the teacher's interpreter.go models them: dedicated
// error-shaped types threaded up through the normal (Value, error) return
// path rather than a bespoke control-flow enum, so every call site that
// already propagates `err` on the happy path also propagates a signal.

type returnSignal struct {
	value runtime.Value
}

func (r *returnSignal) Error() string { return "return" }

type breakSignal struct{}

func (b *breakSignal) Error() string { return "break" }

func isReturn(err error) (*returnSignal, bool) {
	r, ok := err.(*returnSignal)
	return r, ok
}

func isBreak(err error) bool {
	_, ok := err.(*breakSignal)
	return ok
}
