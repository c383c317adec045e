package runtime

import "charly/pkg/ast"

// Kind identifies the runtime category of a Value (spec.md §3.1).
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindNumeric
	KindString
	KindArray
	KindFunction
	KindClass
	KindPrimitiveClass
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindNumeric:
		return "Numeric"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindPrimitiveClass:
		return "PrimitiveClass"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is the tagged-variant runtime datum of spec.md §3.1. Every variant
// carries a data Scope holding its dynamically-added members.
type Value interface {
	Kind() Kind
	Data() *Scope
}

//-----------------------------------------------------------------------------
// Null, Boolean, Numeric, String, Array
//-----------------------------------------------------------------------------

// nullData is shared by every NullValue: Null has singleton semantics
// (spec.md §3.1), so its data scope is one process-wide empty scope rather
// than one allocated per reference.
var nullData = NewScope(nil)

// NullValue is the zero-size Null singleton.
type NullValue struct{}

func (NullValue) Kind() Kind   { return KindNull }
func (NullValue) Data() *Scope { return nullData }

// Null is the canonical Null value.
func Null() NullValue { return NullValue{} }

type BooleanValue struct {
	Val  bool
	data *Scope
}

func NewBoolean(v bool) *BooleanValue {
	return &BooleanValue{Val: v, data: NewScope(nil)}
}

func (v *BooleanValue) Kind() Kind   { return KindBoolean }
func (v *BooleanValue) Data() *Scope { return v.data }

type NumericValue struct {
	Val  float64
	data *Scope
}

func NewNumeric(v float64) *NumericValue {
	return &NumericValue{Val: v, data: NewScope(nil)}
}

func (v *NumericValue) Kind() Kind   { return KindNumeric }
func (v *NumericValue) Data() *Scope { return v.data }

type StringValue struct {
	Val  string
	data *Scope
}

func NewString(v string) *StringValue {
	return &StringValue{Val: v, data: NewScope(nil)}
}

func (v *StringValue) Kind() Kind   { return KindString }
func (v *StringValue) Data() *Scope { return v.data }

// ArrayValue is an ordered, mutable sequence of Values.
type ArrayValue struct {
	Elements []Value
	data     *Scope
}

func NewArray(elements []Value) *ArrayValue {
	return &ArrayValue{Elements: elements, data: NewScope(nil)}
}

func (v *ArrayValue) Kind() Kind   { return KindArray }
func (v *ArrayValue) Data() *Scope { return v.data }

//-----------------------------------------------------------------------------
// Function
//-----------------------------------------------------------------------------

// FunctionValue is a closure: parameter identifiers plus a body block and
// the scope active at definition time (spec.md §3.1).
type FunctionValue struct {
	Name       *string
	Parameters []string
	Body       *ast.Block
	Closure    *Scope
	data       *Scope
}

func NewFunction(name *string, parameters []string, body *ast.Block, closure *Scope) *FunctionValue {
	return &FunctionValue{Name: name, Parameters: parameters, Body: body, Closure: closure, data: NewScope(nil)}
}

func (v *FunctionValue) Kind() Kind   { return KindFunction }
func (v *FunctionValue) Data() *Scope { return v.data }

//-----------------------------------------------------------------------------
// Class, PrimitiveClass, Object
//-----------------------------------------------------------------------------

// ClassValue is a user class descriptor (spec.md §3.1, §4.4). Parents is
// ordered: later parents override earlier for method precedence.
type ClassValue struct {
	Name       string
	Properties []string
	Methods    []*ast.FunctionLiteral
	Parents    []*ClassValue
	// Captured is the scope active when the ClassLiteral was evaluated;
	// an Object's data scope is parented to this (spec.md §3.1 invariants).
	Captured *Scope
	data     *Scope
}

func NewClass(name string, properties []string, methods []*ast.FunctionLiteral, parents []*ClassValue, captured *Scope) *ClassValue {
	return &ClassValue{
		Name:       name,
		Properties: properties,
		Methods:    methods,
		Parents:    parents,
		Captured:   captured,
		data:       NewScope(captured),
	}
}

func (v *ClassValue) Kind() Kind   { return KindClass }
func (v *ClassValue) Data() *Scope { return v.data }

// PrimitiveClassValue maps one built-in Kind to a dispatch table of methods
// living in its data scope (spec.md §3.1, §4.5).
type PrimitiveClassValue struct {
	Name     string
	Captured *Scope
	data     *Scope
}

func NewPrimitiveClass(name string, captured *Scope) *PrimitiveClassValue {
	return &PrimitiveClassValue{Name: name, Captured: captured, data: NewScope(captured)}
}

func (v *PrimitiveClassValue) Kind() Kind   { return KindPrimitiveClass }
func (v *PrimitiveClassValue) Data() *Scope { return v.data }

// ObjectValue is an instance of a user Class (spec.md §3.1, §4.4).
type ObjectValue struct {
	Class *ClassValue
	data  *Scope
}

// NewObject creates an instance whose data scope's parent is the class's
// captured scope (spec.md §3.1 invariant).
func NewObject(class *ClassValue) *ObjectValue {
	return &ObjectValue{Class: class, data: NewScope(class.Captured)}
}

func (v *ObjectValue) Kind() Kind   { return KindObject }
func (v *ObjectValue) Data() *Scope { return v.data }
