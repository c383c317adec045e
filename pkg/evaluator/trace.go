package evaluator

import (
	"fmt"
	"strings"

	"charly/pkg/ast"
	"charly/pkg/runtime"
)

// TraceEntry is one call-stack frame (spec.md §3.3): the call-site name,
// the call node, the scope active at the call, and the context.
type TraceEntry struct {
	Name    string
	Node    ast.Node
	Scope   *runtime.Scope
	Context *Context
}

// CallStack is the ordered push/pop sequence the evaluator maintains across
// the whole program run (spec.md §3.3).
type CallStack struct {
	entries []TraceEntry
}

func NewCallStack() *CallStack {
	return &CallStack{}
}

// Push adds a frame on call-entry.
func (s *CallStack) Push(entry TraceEntry) {
	s.entries = append(s.entries, entry)
}

// Pop removes the most recent frame on call-exit. Pairing every Push with a
// deferred Pop (rather than skipping the pop on error unwind, as the
// original interpreter this spec was distilled from does — see DESIGN.md)
// keeps a subsequent catch from observing stale frames (spec.md §9 open
// question 2).
func (s *CallStack) Pop() {
	if len(s.entries) == 0 {
		return
	}
	s.entries = s.entries[:len(s.entries)-1]
}

// Depth reports the number of active frames.
func (s *CallStack) Depth() int {
	return len(s.entries)
}

// Render formats the stack most-recent-call-first, one line per frame.
func (s *CallStack) Render() string {
	if len(s.entries) == 0 {
		return "(empty stack)"
	}
	var b strings.Builder
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		path := "<unknown>"
		if entry.Context != nil {
			path = entry.Context.Path
		}
		fmt.Fprintf(&b, "  at %s (%s)\n", entry.Name, path)
	}
	return strings.TrimRight(b.String(), "\n")
}
