// Package evaluator implements the tree-walking evaluator core of
// spec.md §4: expression dispatch, scope/environment use, operator
// dispatch, class/object construction, and the call/return/break
// control-flow discipline.
package evaluator

import (
	"math"

	"charly/pkg/ast"
	"charly/pkg/runtime"
)

// Evaluator owns the evaluator-wide state: the global scope new programs
// execute against. Mirrors the teacher's Interpreter, which owns the
// global Environment plus whatever cross-cutting tables a given milestone
// needs (interfaces, impls); this evaluator needs none of those, since
// spec.md's class model has no interfaces layer.
type Evaluator struct {
	Global *runtime.Scope
}

// Option configures an Evaluator at construction time.
type Option func(*Evaluator) error

// New returns an Evaluator with a fresh global scope, applying options in
// order. A prelude-loading option (see pkg/prelude) that fails aborts
// construction (spec.md §5).
func New(opts ...Option) (*Evaluator, error) {
	e := &Evaluator{Global: runtime.NewScope(nil)}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// WithPrelude installs a loader run once during New, after the global
// scope is allocated. Decoupling the loader from the constructor (rather
// than hard-wiring $CHARLYDIR resolution here) keeps the evaluator
// testable without a prelude, per spec.md §9 design notes.
func WithPrelude(load func(*Evaluator) error) Option {
	return func(e *Evaluator) error {
		return load(e)
	}
}

// ExecProgram runs a full program against scope (typically e.Global) and
// returns its result, the call stack reached at exit, and an error. A
// stray return/break escaping every frame is reported as a runtime error,
// the same way the teacher's EvaluateModule rejects a returnSignal that
// unwinds past the top level.
func (e *Evaluator) ExecProgram(program *ast.Program, scope *runtime.Scope) (runtime.Value, *CallStack, error) {
	ctx := NewContext(program.Path)
	result, err := e.evalBlock(program.Tree, scope, ctx)
	if err != nil {
		if _, ok := isReturn(err); ok {
			return nil, ctx.Stack, newError(KindUnexpectedNode, program.Tree, ctx, "return outside function")
		}
		if isBreak(err) {
			return nil, ctx.Stack, newError(KindUnexpectedNode, program.Tree, ctx, "break outside loop")
		}
		return nil, ctx.Stack, err
	}
	return result, ctx.Stack, nil
}

// Eval is the single recursive dispatch function of spec.md §4.2.
func (e *Evaluator) Eval(node ast.Node, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Block:
		return e.evalBlock(n, env, ctx)
	case *ast.NumericLiteral:
		return runtime.NewNumeric(n.Value), nil
	case *ast.NANLiteral:
		return runtime.NewNumeric(math.NaN()), nil
	case *ast.StringLiteral:
		return runtime.NewString(n.Value), nil
	case *ast.BooleanLiteral:
		return runtime.NewBoolean(n.Value), nil
	case *ast.NullLiteral:
		return runtime.Null(), nil
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n, env, ctx)
	case *ast.Identifier:
		return e.evalIdentifier(n, env, ctx)
	case *ast.FunctionLiteral:
		params := make([]string, len(n.Parameters))
		for i, p := range n.Parameters {
			params[i] = p.Name
		}
		return runtime.NewFunction(n.Name, params, n.Body, env), nil
	case *ast.ClassLiteral:
		return e.evalClassLiteral(n, env, ctx)
	case *ast.PrimitiveClassLiteral:
		return e.evalPrimitiveClassLiteral(n, env, ctx)
	case *ast.CallExpression:
		return e.evalCallExpression(n, env, ctx)
	case *ast.MemberExpression:
		return e.evalMemberExpression(n, env, ctx)
	case *ast.UnaryExpression:
		return e.evalUnaryExpression(n, env, ctx)
	case *ast.BinaryExpression:
		return e.evalBinaryExpression(n, env, ctx)
	case *ast.ComparisonExpression:
		return e.evalComparisonExpression(n, env, ctx)
	case *ast.AndExpression:
		return e.evalAnd(n, env, ctx)
	case *ast.OrExpression:
		return e.evalOr(n, env, ctx)
	case *ast.VariableInitialisation:
		return e.evalVariableInitialisation(n, env, ctx)
	case *ast.ConstantInitialisation:
		return e.evalConstantInitialisation(n, env, ctx)
	case *ast.VariableAssignment:
		return e.evalVariableAssignment(n, env, ctx)
	case *ast.IfStatement:
		return e.evalIfStatement(n, env, ctx)
	case *ast.WhileStatement:
		return e.evalWhileStatement(n, env, ctx)
	case *ast.ReturnStatement:
		return e.evalReturnStatement(n, env, ctx)
	case *ast.BreakStatement:
		return nil, &breakSignal{}
	default:
		return nil, newError(KindUnexpectedNode, node, ctx, "unexpected node type %T", node)
	}
}

// evalBlock executes each statement sequentially; the result is the last
// statement's value, Null for an empty block (spec.md §4.2).
func (e *Evaluator) evalBlock(block *ast.Block, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	var result runtime.Value = runtime.Null()
	for _, stmt := range block.Statements {
		val, err := e.Eval(stmt, env, ctx)
		if err != nil {
			return nil, err
		}
		result = val
	}
	return result, nil
}

func (e *Evaluator) evalArrayLiteral(node *ast.ArrayLiteral, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	items := make([]runtime.Value, len(node.Items))
	for i, expr := range node.Items {
		val, err := e.Eval(expr, env, ctx)
		if err != nil {
			return nil, err
		}
		items[i] = val
	}
	return runtime.NewArray(items), nil
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	if !env.Defined(node.Name) {
		return nil, newError(KindNotDefined, node, ctx, "'%s' is not defined", node.Name)
	}
	return env.Get(node.Name, 0)
}

func (e *Evaluator) evalAnd(node *ast.AndExpression, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	left, err := e.Eval(node.Left, env, ctx)
	if err != nil {
		return nil, err
	}
	if !isTruthy(left) {
		return runtime.NewBoolean(false), nil
	}
	right, err := e.Eval(node.Right, env, ctx)
	if err != nil {
		return nil, err
	}
	return runtime.NewBoolean(isTruthy(right)), nil
}

func (e *Evaluator) evalOr(node *ast.OrExpression, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	left, err := e.Eval(node.Left, env, ctx)
	if err != nil {
		return nil, err
	}
	if isTruthy(left) {
		return runtime.NewBoolean(true), nil
	}
	right, err := e.Eval(node.Right, env, ctx)
	if err != nil {
		return nil, err
	}
	return runtime.NewBoolean(isTruthy(right)), nil
}

// evalVariableInitialisation / evalConstantInitialisation implement
// spec.md §4.2: reserved-name and redeclaration checks, then INIT write.
func (e *Evaluator) evalVariableInitialisation(node *ast.VariableInitialisation, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	return e.initialise(node.Name, node.Value, env, ctx, node, 0)
}

func (e *Evaluator) evalConstantInitialisation(node *ast.ConstantInitialisation, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	return e.initialise(node.Name, node.Value, env, ctx, node, runtime.Constant)
}

func (e *Evaluator) initialise(name *ast.Identifier, valueExpr ast.Expression, env *runtime.Scope, ctx *Context, site ast.Node, extra runtime.Flag) (runtime.Value, error) {
	if isReserved(name.Name) {
		return nil, newError(KindReservedName, site, ctx, "'%s' is a reserved name", name.Name)
	}
	if env.Contains(name.Name, runtime.IgnoreParent) {
		return nil, newError(KindAlreadyDefined, site, ctx, "'%s' is already defined in this scope", name.Name)
	}
	val, err := e.Eval(valueExpr, env, ctx)
	if err != nil {
		return nil, err
	}
	env.Write(name.Name, val, runtime.Init|extra)
	return val, nil
}

// evalVariableAssignment implements the three assignment-target kinds of
// spec.md §4.2.
func (e *Evaluator) evalVariableAssignment(node *ast.VariableAssignment, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	val, err := e.Eval(node.Value, env, ctx)
	if err != nil {
		return nil, err
	}

	switch target := node.Target.(type) {
	case *ast.Identifier:
		if isReserved(target.Name) {
			return nil, newError(KindReservedName, node, ctx, "'%s' is a reserved name", target.Name)
		}
		if !env.Defined(target.Name) {
			return nil, newError(KindNotDefined, node, ctx, "'%s' is not defined", target.Name)
		}
		if err := env.Write(target.Name, val, 0); err != nil {
			if _, ok := err.(*runtime.ConstantAssignmentError); ok {
				return nil, newError(KindConstantAssign, node, ctx, "'%s' is a constant and cannot be reassigned", target.Name)
			}
			return nil, newError(KindNotDefined, node, ctx, "'%s' is not defined", target.Name)
		}
		return val, nil

	case *ast.MemberExpression:
		base, err := e.Eval(target.Identifier, env, ctx)
		if err != nil {
			return nil, err
		}
		flags := runtime.IgnoreParent
		if !base.Data().Contains(target.Member.Name, runtime.IgnoreParent) {
			flags |= runtime.Init
		}
		base.Data().Write(target.Member.Name, val, flags)
		return val, nil

	case *ast.IndexExpression:
		return nil, newError(KindNotImplemented, node, ctx, "index assignment is not implemented")

	default:
		return nil, newError(KindUnexpectedNode, node, ctx, "unsupported assignment target %T", node.Target)
	}
}

// evalIfStatement: a fresh child scope per taken branch (spec.md §4.2).
func (e *Evaluator) evalIfStatement(node *ast.IfStatement, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	test, err := e.Eval(node.Test, env, ctx)
	if err != nil {
		return nil, err
	}
	if isTruthy(test) {
		child := runtime.NewScope(env)
		return e.evalBlock(node.Consequent, child, ctx)
	}
	switch alt := node.Alternate.(type) {
	case nil:
		return runtime.Null(), nil
	case *ast.IfStatement:
		return e.evalIfStatement(alt, env, ctx)
	case *ast.Block:
		child := runtime.NewScope(env)
		return e.evalBlock(alt, child, ctx)
	default:
		return nil, newError(KindUnexpectedNode, node, ctx, "unsupported if-alternate %T", node.Alternate)
	}
}

// evalWhileStatement: one fresh child scope reused across iterations; a
// break signal terminates the loop without updating the result (spec.md
// §4.2).
func (e *Evaluator) evalWhileStatement(node *ast.WhileStatement, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	child := runtime.NewScope(env)
	var result runtime.Value = runtime.Null()
	for {
		test, err := e.Eval(node.Test, child, ctx)
		if err != nil {
			return nil, err
		}
		if !isTruthy(test) {
			return result, nil
		}
		val, err := e.evalBlock(node.Consequent, child, ctx)
		if err != nil {
			if isBreak(err) {
				return result, nil
			}
			return nil, err
		}
		result = val
	}
}

func (e *Evaluator) evalReturnStatement(node *ast.ReturnStatement, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	var val runtime.Value = runtime.Null()
	if node.Expression != nil {
		v, err := e.Eval(node.Expression, env, ctx)
		if err != nil {
			return nil, err
		}
		val = v
	}
	return nil, &returnSignal{value: val}
}
