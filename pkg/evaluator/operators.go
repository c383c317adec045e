package evaluator

import (
	"math"
	"strings"

	"charly/pkg/ast"
	"charly/pkg/runtime"
)

// overrideMethodNames maps an operator token to its canonical override
// method name (spec.md §4.3).
var overrideMethodNames = map[string]string{
	"+":  "__plus",
	"-":  "__minus",
	"*":  "__mult",
	"/":  "__divd",
	"%":  "__mod",
	"**": "__pow",
	"<":  "__less",
	">":  "__greater",
	"<=": "__lessequal",
	">=": "__greaterequal",
	"==": "__equal",
	"!":  "__not",
	// "!=" has no override method name in spec.md §4.3's table; it always
	// falls through to the built-in comparison.
}

// lookupOverride resolves the override method for operand (spec.md §4.3
// step 2): first the operand's own data scope, then its PrimitiveClass.
func (e *Evaluator) lookupOverride(operand runtime.Value, methodName string, env *runtime.Scope) (*runtime.FunctionValue, bool) {
	if val, err := operand.Data().Get(methodName, runtime.IgnoreParent); err == nil {
		if fn, ok := val.(*runtime.FunctionValue); ok {
			return fn, true
		}
	}
	if val, ok := lookupPrimitiveMethod(operand, methodName, env); ok {
		if fn, ok := val.(*runtime.FunctionValue); ok {
			return fn, true
		}
	}
	return nil, false
}

// evalUnaryExpression implements unary dispatch (spec.md §4.3).
func (e *Evaluator) evalUnaryExpression(node *ast.UnaryExpression, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	operand, err := e.Eval(node.Right, env, ctx)
	if err != nil {
		return nil, err
	}
	methodName := overrideMethodNames[node.Operator]
	if fn, ok := e.lookupOverride(operand, methodName, env); ok {
		return e.callFunctionValues(fn, operand, nil, ctx, node)
	}
	switch node.Operator {
	case "-":
		if n, ok := operand.(*runtime.NumericValue); ok {
			return runtime.NewNumeric(-n.Val), nil
		}
		return runtime.NewNumeric(math.NaN()), nil
	case "!":
		return runtime.NewBoolean(!isTruthy(operand)), nil
	default:
		return nil, newError(KindUnexpectedNode, node, ctx, "unsupported unary operator '%s'", node.Operator)
	}
}

// evalBinaryExpression implements binary-operator dispatch and the
// built-in arithmetic/string fallbacks (spec.md §4.3).
func (e *Evaluator) evalBinaryExpression(node *ast.BinaryExpression, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	left, err := e.Eval(node.Left, env, ctx)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(node.Right, env, ctx)
	if err != nil {
		return nil, err
	}
	methodName := overrideMethodNames[node.Operator]
	if fn, ok := e.lookupOverride(left, methodName, env); ok {
		return e.callFunctionValues(fn, left, []runtime.Value{right}, ctx, node)
	}
	return builtinBinary(node.Operator, left, right), nil
}

// evalComparisonExpression implements comparison-operator dispatch and the
// built-in comparison fallbacks (spec.md §4.3).
func (e *Evaluator) evalComparisonExpression(node *ast.ComparisonExpression, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	left, err := e.Eval(node.Left, env, ctx)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(node.Right, env, ctx)
	if err != nil {
		return nil, err
	}
	methodName := overrideMethodNames[node.Operator]
	if fn, ok := e.lookupOverride(left, methodName, env); ok {
		return e.callFunctionValues(fn, left, []runtime.Value{right}, ctx, node)
	}
	return runtime.NewBoolean(builtinComparison(node.Operator, left, right)), nil
}

// builtinBinary implements the built-in arithmetic/string semantics of
// spec.md §4.3 once operator-override dispatch has found nothing.
func builtinBinary(op string, left, right runtime.Value) runtime.Value {
	ls, lIsString := left.(*runtime.StringValue)
	rs, rIsString := right.(*runtime.StringValue)

	if op == "+" {
		switch {
		case lIsString && rIsString:
			return runtime.NewString(ls.Val + rs.Val)
		case lIsString:
			return runtime.NewString(ls.Val + stringify(right))
		case rIsString:
			return runtime.NewString(stringify(left) + rs.Val)
		}
	}

	if op == "*" {
		if lIsString {
			if n, ok := right.(*runtime.NumericValue); ok {
				return runtime.NewString(repeatString(ls.Val, n.Val))
			}
		}
		if rIsString {
			if n, ok := left.(*runtime.NumericValue); ok {
				return runtime.NewString(repeatString(rs.Val, n.Val))
			}
		}
	}

	ln, lIsNum := left.(*runtime.NumericValue)
	rn, rIsNum := right.(*runtime.NumericValue)
	if !lIsNum || !rIsNum {
		return runtime.NewNumeric(math.NaN())
	}

	switch op {
	case "+":
		return runtime.NewNumeric(ln.Val + rn.Val)
	case "-":
		return runtime.NewNumeric(ln.Val - rn.Val)
	case "*":
		if ln.Val == 0 || rn.Val == 0 {
			return runtime.NewNumeric(0)
		}
		return runtime.NewNumeric(ln.Val * rn.Val)
	case "/":
		if rn.Val == 0 || ln.Val == 0 {
			return runtime.Null()
		}
		return runtime.NewNumeric(ln.Val / rn.Val)
	case "%":
		if int64(rn.Val) == 0 {
			return runtime.Null()
		}
		return runtime.NewNumeric(float64(int64(ln.Val) % int64(rn.Val)))
	case "**":
		return runtime.NewNumeric(math.Pow(ln.Val, rn.Val))
	default:
		return runtime.NewNumeric(math.NaN())
	}
}

func repeatString(s string, count float64) string {
	n := int(count)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// builtinComparison implements the built-in comparison semantics of
// spec.md §4.3, including the Null-equality asymmetry (§9 open question 3,
// preserved on purpose).
func builtinComparison(op string, left, right runtime.Value) bool {
	if _, ok := left.(runtime.NullValue); ok {
		return nullEqualsRight(op, right)
	}
	if _, ok := right.(runtime.NullValue); ok {
		return rightEqualsNull(op, left)
	}

	if ln, ok := left.(*runtime.NumericValue); ok {
		if rn, ok := right.(*runtime.NumericValue); ok {
			return numericComparison(op, ln.Val, rn.Val)
		}
	}

	if lb, ok := left.(*runtime.BooleanValue); ok {
		if rb, ok := right.(*runtime.BooleanValue); ok {
			return boolComparison(op, lb.Val, rb.Val)
		}
		return boolComparison(op, lb.Val, isTruthy(right))
	}
	if rb, ok := right.(*runtime.BooleanValue); ok {
		return boolComparison(op, isTruthy(left), rb.Val)
	}

	if ls, ok := left.(*runtime.StringValue); ok {
		if rs, ok := right.(*runtime.StringValue); ok {
			return stringComparison(op, ls.Val, rs.Val)
		}
	}

	switch op {
	case "==":
		return identityEqual(left, right)
	case "!=":
		return !identityEqual(left, right)
	default:
		return false
	}
}

// nullEqualsRight implements `Null == x` (spec.md §4.3): true iff x is
// Null, or x is Boolean(false). Only == and != are defined for Null; every
// other comparison operator falls to "Otherwise: false".
func nullEqualsRight(op string, right runtime.Value) bool {
	if op != "==" && op != "!=" {
		return false
	}
	eq := false
	if _, ok := right.(runtime.NullValue); ok {
		eq = true
	} else if b, ok := right.(*runtime.BooleanValue); ok {
		eq = !b.Val
	}
	if op == "!=" {
		return !eq
	}
	return eq
}

// rightEqualsNull implements `x == Null` (spec.md §4.3, asymmetric): true
// iff x is Null, or x is Boolean(true). Only == and != are defined.
func rightEqualsNull(op string, left runtime.Value) bool {
	if op != "==" && op != "!=" {
		return false
	}
	eq := false
	if _, ok := left.(runtime.NullValue); ok {
		eq = true
	} else if b, ok := left.(*runtime.BooleanValue); ok {
		eq = b.Val
	}
	if op == "!=" {
		return !eq
	}
	return eq
}

func numericComparison(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case ">":
		return l > r
	case "<=":
		return l <= r
	case ">=":
		return l >= r
	case "==":
		return l == r
	case "!=":
		return l != r
	default:
		return false
	}
}

func boolComparison(op string, l, r bool) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	default:
		return false
	}
}

// stringComparison: `<`/`>`/`<=`/`>=` compare lengths; `==`/`!=` compare
// values (spec.md §4.3).
func stringComparison(op string, l, r string) bool {
	switch op {
	case "<":
		return len(l) < len(r)
	case ">":
		return len(l) > len(r)
	case "<=":
		return len(l) <= len(r)
	case ">=":
		return len(l) >= len(r)
	case "==":
		return l == r
	case "!=":
		return l != r
	default:
		return false
	}
}

func identityEqual(left, right runtime.Value) bool {
	if left.Kind() != right.Kind() {
		return false
	}
	switch l := left.(type) {
	case *runtime.FunctionValue:
		r, ok := right.(*runtime.FunctionValue)
		return ok && l == r
	case *runtime.ClassValue:
		r, ok := right.(*runtime.ClassValue)
		return ok && l == r
	case *runtime.ObjectValue:
		r, ok := right.(*runtime.ObjectValue)
		return ok && l == r
	default:
		return false
	}
}
