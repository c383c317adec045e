package evaluator

import (
	"testing"

	"charly/pkg/ast"
	"charly/pkg/runtime"
)

func TestBuiltinArithmetic(t *testing.T) {
	val := run(t, ast.Bin("+", ast.Num(1), ast.Num(2)))
	if val.(*runtime.NumericValue).Val != 3 {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestBuiltinDivisionByZeroIsNull(t *testing.T) {
	val := run(t, ast.Bin("/", ast.Num(1), ast.Num(0)))
	if _, ok := val.(runtime.NullValue); !ok {
		t.Fatalf("expected Null for division by zero, got %#v", val)
	}
}

func TestBuiltinStringConcatenation(t *testing.T) {
	val := run(t, ast.Bin("+", ast.Str("a"), ast.Str("b")))
	if val.(*runtime.StringValue).Val != "ab" {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestBuiltinStringPlusNonStringStringifies(t *testing.T) {
	val := run(t, ast.Bin("+", ast.Str("n="), ast.Num(5)))
	if val.(*runtime.StringValue).Val != "n=5" {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestBuiltinStringComparisonByLength(t *testing.T) {
	val := run(t, ast.Cmp("<", ast.Str("a"), ast.Str("bb")))
	if !val.(*runtime.BooleanValue).Val {
		t.Fatalf("expected true, got %#v", val)
	}
}

func TestNullEqualityAsymmetry(t *testing.T) {
	cases := []struct {
		name string
		expr ast.Statement
		want bool
	}{
		{"null==null", ast.Cmp("==", ast.Null(), ast.Null()), true},
		{"null==false", ast.Cmp("==", ast.Null(), ast.Bool(false)), true},
		{"false==null", ast.Cmp("==", ast.Bool(false), ast.Null()), false},
		{"null==true", ast.Cmp("==", ast.Null(), ast.Bool(true)), false},
		{"true==null", ast.Cmp("==", ast.Bool(true), ast.Null()), true},
		{"null<1", ast.Cmp("<", ast.Null(), ast.Num(1)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			val := run(t, c.expr)
			if val.(*runtime.BooleanValue).Val != c.want {
				t.Fatalf("%s: expected %v, got %#v", c.name, c.want, val)
			}
		})
	}
}

func TestUnaryNegationAndNot(t *testing.T) {
	val := run(t, ast.Unary("-", ast.Num(5)))
	if val.(*runtime.NumericValue).Val != -5 {
		t.Fatalf("unexpected value %#v", val)
	}
	val = run(t, ast.Unary("!", ast.Bool(false)))
	if !val.(*runtime.BooleanValue).Val {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestPrimitiveClassOverridesBuiltinOperator(t *testing.T) {
	override := ast.PrimitiveClass("Numeric", ast.Blk(
		ast.NamedFn("__plus", ast.Blk(ast.Return(ast.Num(999))), "other"),
	))
	val := run(t, ast.Let("Numeric", override), ast.Bin("+", ast.Num(1), ast.Num(2)))
	n, ok := val.(*runtime.NumericValue)
	if !ok || n.Val != 999 {
		t.Fatalf("expected override to run, got %#v", val)
	}
}

func TestObjectOperatorOverrideWinsOverPrimitiveClass(t *testing.T) {
	classBody := ast.Blk(
		ast.NamedFn("__plus", ast.Blk(ast.Return(ast.Str("overridden"))), "other"),
	)
	class := ast.Class("Box", nil, classBody)
	val := run(t,
		ast.Let("Box", class),
		ast.Let("b", ast.Call(ast.ID("Box"))),
		ast.Bin("+", ast.ID("b"), ast.Num(1)),
	)
	s, ok := val.(*runtime.StringValue)
	if !ok || s.Val != "overridden" {
		t.Fatalf("expected object override to run, got %#v", val)
	}
}
