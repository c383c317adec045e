package evaluator

import (
	"fmt"
	"strings"

	"charly/pkg/runtime"
)

// isTruthy implements spec.md §2/GLOSSARY truthiness: false for Null and
// Boolean(false), true for everything else.
func isTruthy(v runtime.Value) bool {
	switch val := v.(type) {
	case runtime.NullValue:
		return false
	case *runtime.BooleanValue:
		return val.Val
	default:
		return true
	}
}

// stringify renders a Value the way string `+` concatenation stringifies a
// non-string operand (spec.md §4.3). It is deliberately terser than
// Inspect: no type annotations, just the printable form.
func stringify(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.NullValue:
		return "null"
	case *runtime.BooleanValue:
		if val.Val {
			return "true"
		}
		return "false"
	case *runtime.NumericValue:
		return formatNumeric(val.Val)
	case *runtime.StringValue:
		return val.Val
	case *runtime.ArrayValue:
		parts := make([]string, len(val.Elements))
		for i, e := range val.Elements {
			parts[i] = stringify(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *runtime.FunctionValue:
		if val.Name != nil {
			return fmt.Sprintf("<function %s>", *val.Name)
		}
		return "<function>"
	case *runtime.ClassValue:
		return fmt.Sprintf("<class %s>", val.Name)
	case *runtime.PrimitiveClassValue:
		return fmt.Sprintf("<primitive class %s>", val.Name)
	case *runtime.ObjectValue:
		return fmt.Sprintf("<object %s>", val.Class.Name)
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

func formatNumeric(f float64) string {
	if f != f {
		return "NaN"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", f), "0"), ".")
}

// Inspect renders a Value for diagnostics/debugging, distinct from
// stringify (used by the `+` operator's stringification rule).
func Inspect(v runtime.Value) string {
	switch val := v.(type) {
	case *runtime.StringValue:
		return fmt.Sprintf("%q", val.Val)
	default:
		return stringify(v)
	}
}
