package runtime

import "fmt"

// NotDefinedError is returned by Scope.Get/Write when a name does not
// resolve anywhere in the chain (spec.md §4.1, §7).
type NotDefinedError struct {
	Name string
}

func (e *NotDefinedError) Error() string {
	return fmt.Sprintf("'%s' is not defined", e.Name)
}

// ConstantAssignmentError is returned when Scope.Write targets a Constant
// slot without Init (spec.md §7 ConstantAssignment).
type ConstantAssignmentError struct {
	Name string
}

func (e *ConstantAssignmentError) Error() string {
	return fmt.Sprintf("'%s' is a constant and cannot be reassigned", e.Name)
}
