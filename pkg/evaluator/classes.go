package evaluator

import (
	"charly/pkg/ast"
	"charly/pkg/runtime"
)

// classNameMap is the class-name map of spec.md §4.5: the scope-visible
// name under which a Kind's PrimitiveClass is looked up.
func classNameMap(k runtime.Kind) (string, bool) {
	switch k {
	case runtime.KindClass:
		return "Class", true
	case runtime.KindNumeric:
		return "Numeric", true
	case runtime.KindString:
		return "String", true
	case runtime.KindBoolean:
		return "Boolean", true
	case runtime.KindArray:
		return "Array", true
	case runtime.KindFunction:
		return "Function", true
	case runtime.KindNull:
		return "Null", true
	default:
		return "", false
	}
}

// lookupPrimitiveMethod finds the named method on the PrimitiveClass that
// maps to v's Kind, per spec.md §4.5: resolve the class-name in the active
// scope, then look up the method in its data scope with IgnoreParent.
func lookupPrimitiveMethod(v runtime.Value, name string, env *runtime.Scope) (runtime.Value, bool) {
	className, ok := classNameMap(v.Kind())
	if !ok {
		return nil, false
	}
	classVal, err := env.Get(className, 0)
	if err != nil {
		return runtime.Null(), false
	}
	primitive, ok := classVal.(*runtime.PrimitiveClassValue)
	if !ok {
		return runtime.Null(), false
	}
	method, err := primitive.Data().Get(name, runtime.IgnoreParent)
	if err != nil {
		return runtime.Null(), false
	}
	return method, true
}

// flattenProperties walks parents depth-first in declaration order, then
// self, collecting property names (duplicates allowed; spec.md §4.4).
func flattenProperties(class *runtime.ClassValue) []string {
	var names []string
	for _, parent := range class.Parents {
		names = append(names, flattenProperties(parent)...)
	}
	names = append(names, class.Properties...)
	return names
}

// methodOwner pairs a declared method with the class whose captured scope
// it must close over.
type methodOwner struct {
	fn    *ast.FunctionLiteral
	owner *runtime.ClassValue
}

// walkMethodsDFS performs the same depth-first traversal as
// flattenProperties (parents in declaration order, then self), without
// reversing — the raw §4.4 order, useful when a caller needs to splice it
// into a larger list before doing its own single reversal.
func walkMethodsDFS(class *runtime.ClassValue) []methodOwner {
	var flat []methodOwner
	var walk func(c *runtime.ClassValue)
	walk = func(c *runtime.ClassValue) {
		for _, parent := range c.Parents {
			walk(parent)
		}
		for _, m := range c.Methods {
			flat = append(flat, methodOwner{fn: m, owner: c})
		}
	}
	walk(class)
	return flat
}

// flattenMethods performs the same depth-first traversal as
// flattenProperties, then reverses it so self's methods come first and
// parents fill in only names not yet seen at install time (spec.md §4.4).
func flattenMethods(class *runtime.ClassValue) []methodOwner {
	flat := walkMethodsDFS(class)
	for i, j := 0, len(flat)-1; i < j; i, j = i+1, j-1 {
		flat[i], flat[j] = flat[j], flat[i]
	}
	return flat
}

func functionLiteralName(fn *ast.FunctionLiteral) string {
	if fn.Name != nil {
		return *fn.Name
	}
	return ""
}

// installMethods installs each method in order, first-wins on name
// (spec.md §4.4/§4.5), and returns the constructor FunctionValue if one was
// installed.
func installMethods(dest *runtime.Scope, owners []methodOwner) *runtime.FunctionValue {
	var constructor *runtime.FunctionValue
	for _, mo := range owners {
		name := functionLiteralName(mo.fn)
		if name == "" {
			continue
		}
		if dest.Contains(name, runtime.IgnoreParent) {
			continue
		}
		params := make([]string, len(mo.fn.Parameters))
		for i, p := range mo.fn.Parameters {
			params[i] = p.Name
		}
		fnName := name
		fn := runtime.NewFunction(&fnName, params, mo.fn.Body, mo.owner.Captured)
		dest.Write(name, fn, runtime.Init|runtime.Constant)
		if name == "constructor" && constructor == nil {
			constructor = fn
		}
	}
	return constructor
}

// evalClassLiteral constructs a Class value (spec.md §4.4).
func (e *Evaluator) evalClassLiteral(node *ast.ClassLiteral, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	parents := make([]*runtime.ClassValue, 0, len(node.Parents))
	for _, parentID := range node.Parents {
		val, err := env.Get(parentID.Name, 0)
		if err != nil {
			return nil, newError(KindNotAClass, node, ctx, "parent '%s' is not defined", parentID.Name)
		}
		classVal, ok := val.(*runtime.ClassValue)
		if !ok {
			return nil, newError(KindNotAClass, node, ctx, "parent '%s' is not a class", parentID.Name)
		}
		parents = append(parents, classVal)
	}

	var properties []string
	var methods []*ast.FunctionLiteral
	for _, stmt := range node.Body.Statements {
		switch s := stmt.(type) {
		case *ast.PropertyDeclaration:
			properties = append(properties, s.Name.Name)
		case *ast.FunctionLiteral:
			if s.Name == nil {
				return nil, newError(KindIllegalClassBody, node, ctx, "class method must be named")
			}
			methods = append(methods, s)
		default:
			return nil, newError(KindIllegalClassBody, node, ctx, "unsupported statement in class body")
		}
	}

	return runtime.NewClass(node.Name, properties, methods, parents, env), nil
}

// constructObject implements object construction (spec.md §4.4): it is
// reached from evalCallExpression when the callee resolves to a Class.
func (e *Evaluator) constructObject(class *runtime.ClassValue, argExprs []ast.Expression, env *runtime.Scope, ctx *Context, site ast.Node) (runtime.Value, error) {
	obj := runtime.NewObject(class)

	for _, name := range flattenProperties(class) {
		obj.Data().Write(name, runtime.Null(), runtime.Init|runtime.IgnoreParent)
	}

	constructor := installMethods(obj.Data(), flattenMethods(class))

	if constructor != nil {
		obj.Data().Delete("constructor", runtime.IgnoreParent)
		args := make([]runtime.Value, len(argExprs))
		for i, a := range argExprs {
			val, err := e.Eval(a, env, ctx)
			if err != nil {
				return nil, err
			}
			args[i] = val
		}
		if _, err := e.callFunctionValues(constructor, obj, args, ctx, site); err != nil {
			return nil, err
		}
	}

	return obj, nil
}

// evalPrimitiveClassLiteral constructs a PrimitiveClass value (spec.md
// §4.5): if a Class named "Object" is visible, its methods are prepended in
// the same raw depth-first order §4.4 walks (parents then self) ahead of
// the primitive's own methods, and the combined list is reversed exactly
// once — mirroring flattenMethods's single reversal — so self's own methods
// win first, Object's own methods win next, and Object's parents fill in
// last.
func (e *Evaluator) evalPrimitiveClassLiteral(node *ast.PrimitiveClassLiteral, env *runtime.Scope, ctx *Context) (runtime.Value, error) {
	var ownMethods []*ast.FunctionLiteral
	for _, stmt := range node.Body.Statements {
		fn, ok := stmt.(*ast.FunctionLiteral)
		if !ok || fn.Name == nil {
			return nil, newError(KindIllegalClassBody, node, ctx, "primitive class body must contain only named methods")
		}
		ownMethods = append(ownMethods, fn)
	}

	primitive := runtime.NewPrimitiveClass(node.Name, env)

	var owners []methodOwner
	if objClassVal, err := env.Get("Object", 0); err == nil {
		if objClass, ok := objClassVal.(*runtime.ClassValue); ok {
			owners = append(owners, walkMethodsDFS(objClass)...)
		}
	}
	selfOwner := &runtime.ClassValue{Captured: env}
	for _, fn := range ownMethods {
		owners = append(owners, methodOwner{fn: fn, owner: selfOwner})
	}

	for i, j := 0, len(owners)-1; i < j; i, j = i+1, j-1 {
		owners[i], owners[j] = owners[j], owners[i]
	}
	installMethods(primitive.Data(), owners)

	return primitive, nil
}
