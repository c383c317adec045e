package evaluator

import (
	"charly/pkg/ast"
	"charly/pkg/runtime"
)

// evalCallExpression implements the call protocol dispatch of spec.md §4.6.
func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	var base runtime.Value
	var callee runtime.Value
	var err error

	if member, ok := node.Callee.(*ast.MemberExpression); ok {
		base, callee, err = e.evalMemberExpressionPair(member, env, ctx)
	} else {
		callee, err = e.Eval(node.Callee, env, ctx)
	}
	if err != nil {
		return nil, err
	}

	switch target := callee.(type) {
	case *runtime.FunctionValue:
		return e.callFunctionExprs(target, base, node.Arguments, env, ctx, node)
	case *runtime.ClassValue:
		return e.constructObject(target, node.Arguments, env, ctx, node)
	case *runtime.PrimitiveClassValue:
		return nil, newError(KindNotInstantiable, node, ctx, "primitive class '%s' cannot be instantiated", target.Name)
	default:
		return nil, newError(KindNotCallable, node, ctx, "value of kind %s is not callable", callee.Kind())
	}
}

// callFunctionExprs evaluates the call-site argument expressions left to
// right in the caller's scope, then hands off to callFunctionValues
// (spec.md §4.6).
func (e *Evaluator) callFunctionExprs(fn *runtime.FunctionValue, base runtime.Value, argExprs []ast.Expression, env *runtime.Scope, ctx *Context, site ast.Node) (runtime.Value, error) {
	args := make([]runtime.Value, len(argExprs))
	for i, a := range argExprs {
		val, err := e.Eval(a, env, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}
	return e.callFunctionValues(fn, base, args, ctx, site)
}

// callFunctionValues is the function call protocol of spec.md §4.6,
// operating on already-evaluated arguments so both ordinary calls and
// synthesized operator-override calls share it.
func (e *Evaluator) callFunctionValues(fn *runtime.FunctionValue, base runtime.Value, args []runtime.Value, ctx *Context, site ast.Node) (runtime.Value, error) {
	if len(args) < len(fn.Parameters) {
		return nil, newError(KindArityMismatch, site, ctx, "expected at least %d argument(s), got %d", len(fn.Parameters), len(args))
	}

	scope := runtime.NewScope(fn.Closure)
	for i, paramName := range fn.Parameters {
		scope.Write(paramName, args[i], runtime.Init)
	}
	if base != nil {
		scope.Write("self", base, runtime.Init|runtime.Constant)
	}

	name := "<anonymous>"
	if fn.Name != nil {
		name = *fn.Name
	}
	ctx.Stack.Push(TraceEntry{Name: name, Node: site, Scope: scope, Context: ctx})
	defer ctx.Stack.Pop()

	result, err := e.evalBlock(fn.Body, scope, ctx)
	if err != nil {
		if rs, ok := isReturn(err); ok {
			return rs.value, nil
		}
		return nil, err
	}
	return result, nil
}

// evalMemberExpressionPair implements
// exec_get_member_expression_pairs(node) -> (base, value) (spec.md §4.7).
func (e *Evaluator) evalMemberExpressionPair(node *ast.MemberExpression, env *runtime.Scope, ctx *Context) (runtime.Value, runtime.Value, error) {
	base, err := e.Eval(node.Identifier, env, ctx)
	if err != nil {
		return nil, nil, err
	}
	if val, err := base.Data().Get(node.Member.Name, runtime.IgnoreParent); err == nil {
		return base, val, nil
	}
	if _, isObject := base.(*runtime.ObjectValue); !isObject {
		if method, ok := lookupPrimitiveMethod(base, node.Member.Name, env); ok {
			return base, method, nil
		}
	}
	return base, runtime.Null(), nil
}

// evalMemberExpression is the rvalue form: only the resolved value.
func (e *Evaluator) evalMemberExpression(node *ast.MemberExpression, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	_, val, err := e.evalMemberExpressionPair(node, env, ctx)
	return val, err
}
