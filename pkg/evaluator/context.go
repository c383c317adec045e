package evaluator

// Context is the per-program execution context threaded through every
// Eval call (spec.md §2 item 3): a source path plus the shared call-stack
// reference used for diagnostics.
type Context struct {
	Path  string
	Stack *CallStack
}

// NewContext builds a Context with a fresh call stack.
func NewContext(path string) *Context {
	return &Context{Path: path, Stack: NewCallStack()}
}
