package ast

// Builder helpers for constructing ASTs directly in tests, the same way the
// teacher builds `*ast.Module` trees in interpreter_test.go without going
// through pkg/parser.

func Prog(path string, stmts ...Statement) *Program {
	return &Program{Path: path, Tree: NewBlock(stmts...)}
}

func Num(v float64) *NumericLiteral    { return NewNumericLiteral(v) }
func Str(v string) *StringLiteral     { return NewStringLiteral(v) }
func Bool(v bool) *BooleanLiteral     { return NewBooleanLiteral(v) }
func Null() *NullLiteral              { return NewNullLiteral() }
func NaN() *NANLiteral                { return NewNANLiteral() }
func ID(name string) *Identifier     { return NewIdentifier(name) }
func Blk(stmts ...Statement) *Block { return NewBlock(stmts...) }

func Arr(items ...Expression) *ArrayLiteral { return NewArrayLiteral(items...) }

func Let(name string, value Expression) *VariableInitialisation {
	return NewVariableInitialisation(ID(name), value)
}

func Const(name string, value Expression) *ConstantInitialisation {
	return NewConstantInitialisation(ID(name), value)
}

func Assign(target AssignmentTarget, value Expression) *VariableAssignment {
	return NewVariableAssignment(target, value)
}

func Fn(name *string, body *Block, params ...string) *FunctionLiteral {
	ids := make([]*Identifier, len(params))
	for i, p := range params {
		ids[i] = ID(p)
	}
	return NewFunctionLiteral(name, ids, body)
}

func NamedFn(name string, body *Block, params ...string) *FunctionLiteral {
	n := name
	return Fn(&n, body, params...)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, args...)
}

func Member(base Expression, name string) *MemberExpression {
	return NewMemberExpression(base, ID(name))
}

func Index(target, idx Expression) *IndexExpression {
	return NewIndexExpression(target, idx)
}

func Return(expr Expression) *ReturnStatement { return NewReturnStatement(expr) }
func Break() *BreakStatement                  { return NewBreakStatement() }

func If(test Expression, consequent *Block, alternate Node) *IfStatement {
	return NewIfStatement(test, consequent, alternate)
}

func While(test Expression, body *Block) *WhileStatement {
	return NewWhileStatement(test, body)
}

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Cmp(op string, left, right Expression) *ComparisonExpression {
	return NewComparisonExpression(op, left, right)
}

func Unary(op string, right Expression) *UnaryExpression {
	return NewUnaryExpression(op, right)
}

func And(left, right Expression) *AndExpression { return NewAnd(left, right) }
func Or(left, right Expression) *OrExpression   { return NewOr(left, right) }

func Property(name string) *PropertyDeclaration {
	return NewPropertyDeclaration(ID(name))
}

func Class(name string, parents []string, body *Block) *ClassLiteral {
	ids := make([]*Identifier, len(parents))
	for i, p := range parents {
		ids[i] = ID(p)
	}
	return NewClassLiteral(name, ids, body)
}

func PrimitiveClass(name string, body *Block) *PrimitiveClassLiteral {
	return NewPrimitiveClassLiteral(name, body)
}
