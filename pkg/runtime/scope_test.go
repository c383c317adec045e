package runtime

import "testing"

func TestScopeWriteInitThenGet(t *testing.T) {
	s := NewScope(nil)
	s.Write("x", NewNumeric(1), Init)

	val, err := s.Get("x", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := val.(*NumericValue)
	if !ok || n.Val != 1 {
		t.Fatalf("unexpected value %#v", val)
	}
}

func TestScopeGetWalksParent(t *testing.T) {
	parent := NewScope(nil)
	parent.Write("x", NewNumeric(1), Init)
	child := NewScope(parent)

	if _, err := child.Get("x", 0); err != nil {
		t.Fatalf("expected child to resolve parent binding: %v", err)
	}
	if _, err := child.Get("x", IgnoreParent); err == nil {
		t.Fatalf("expected IgnoreParent to hide parent binding")
	}
}

func TestScopeWriteWithoutInitMutatesExisting(t *testing.T) {
	parent := NewScope(nil)
	parent.Write("x", NewNumeric(1), Init)
	child := NewScope(parent)

	if err := child.Write("x", NewNumeric(2), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	val, _ := parent.Get("x", 0)
	n := val.(*NumericValue)
	if n.Val != 2 {
		t.Fatalf("expected parent slot mutated in place, got %v", n.Val)
	}
}

func TestScopeWriteWithoutInitUndefinedFails(t *testing.T) {
	s := NewScope(nil)
	if err := s.Write("x", NewNumeric(1), 0); err == nil {
		t.Fatalf("expected NotDefinedError")
	} else if _, ok := err.(*NotDefinedError); !ok {
		t.Fatalf("unexpected error type %#v", err)
	}
}

func TestScopeConstantRejectsReassignment(t *testing.T) {
	s := NewScope(nil)
	s.Write("x", NewNumeric(1), Init|Constant)

	err := s.Write("x", NewNumeric(2), 0)
	if _, ok := err.(*ConstantAssignmentError); !ok {
		t.Fatalf("expected ConstantAssignmentError, got %#v", err)
	}
}

func TestScopeInitShadowsParentInCurrentScope(t *testing.T) {
	parent := NewScope(nil)
	parent.Write("x", NewNumeric(1), Init)
	child := NewScope(parent)
	child.Write("x", NewNumeric(2), Init)

	val, _ := child.Get("x", 0)
	if val.(*NumericValue).Val != 2 {
		t.Fatalf("expected shadowed value 2, got %v", val)
	}
	parentVal, _ := parent.Get("x", 0)
	if parentVal.(*NumericValue).Val != 1 {
		t.Fatalf("expected parent untouched, got %v", parentVal)
	}
}

func TestScopeContains(t *testing.T) {
	parent := NewScope(nil)
	parent.Write("x", NewNumeric(1), Init)
	child := NewScope(parent)

	if !child.Contains("x", 0) {
		t.Fatalf("expected Contains to see parent binding")
	}
	if child.Contains("x", IgnoreParent) {
		t.Fatalf("expected IgnoreParent Contains to miss parent binding")
	}
}

func TestScopeDelete(t *testing.T) {
	s := NewScope(nil)
	s.Write("x", NewNumeric(1), Init)
	s.Delete("x", IgnoreParent)
	if s.Defined("x") {
		t.Fatalf("expected x to be removed")
	}
}
