package semantic

import "github.com/cwbudde/ocomp/internal/ast"

// InferContext supplies the lookups InferType needs: the whole-program
// class table, the class currently being analyzed (nil outside any
// class), and the lexical scope for identifier lookups.
type InferContext struct {
	Classes      *ClassTable
	CurrentClass *ClassInfo
	Scope        *Scope
}

// InferType implements spec.md §4.4's type-inference rules, shared by the
// check pass (to validate assignments/conditions) and the emitter (to
// pick opcodes). Unknown expressions infer to "Object".
func InferType(expr ast.Expression, ctx *InferContext) string {
	switch e := expr.(type) {
	case *ast.IntLit:
		return "Integer"
	case *ast.RealLit:
		return "Real"
	case *ast.BoolLit:
		return "Boolean"
	case *ast.StringLit:
		return "String"
	case *ast.This:
		if ctx.CurrentClass != nil {
			return ctx.CurrentClass.Name
		}
		return "Object"
	case *ast.Ident:
		if sym, ok := ctx.Scope.Resolve(e.Name); ok && sym.Type != "" {
			return sym.Type
		}
		return "Object"
	case *ast.New:
		return ast.CanonicalizeTypeName(e.ClassName, e.TypeArgs...)
	case *ast.MemberAccess:
		return inferMemberType(e, ctx)
	case *ast.Call:
		return inferCallType(e, ctx)
	}
	return "Object"
}

// inferMemberType infers the type of a bare member access (no call
// attached): a zero-arg builtin property, a zero-arg user method, or a
// field, tried in that order (mirrors the emitter's own lowering order in
// spec.md §4.6).
func inferMemberType(e *ast.MemberAccess, ctx *InferContext) string {
	targetType := InferType(e.Target, ctx)

	if sig, ok := lookupBuiltinMethod(targetType, e.Member); ok && sig.Arity == 0 {
		return builtinReturnType(targetType, e.Member, sig)
	}

	if ci, ok := ctx.Classes.Lookup(targetType); ok {
		for _, m := range ci.FindMethods(e.Member) {
			if len(m.Params) == 0 {
				return methodReturnType(m)
			}
		}
		if f, _, ok := ci.FindField(e.Member); ok {
			return f.Type
		}
	}
	return "Object"
}

func inferCallType(e *ast.Call, ctx *InferContext) string {
	switch callee := e.Callee.(type) {
	case *ast.Ident:
		if callee.Name == "print" {
			return "void"
		}
		if ctx.CurrentClass != nil {
			for _, m := range ctx.CurrentClass.FindMethods(callee.Name) {
				if len(m.Params) == len(e.Args) {
					return methodReturnType(m)
				}
			}
		}
		if ci, ok := ctx.Classes.Lookup(callee.Name); ok {
			return ci.Name
		}
		return "Object"
	case *ast.MemberAccess:
		if callee.Member == "print" {
			return "void"
		}
		targetType := InferType(callee.Target, ctx)
		if sig, ok := lookupBuiltinMethod(targetType, callee.Member); ok {
			return builtinReturnType(targetType, callee.Member, sig)
		}
		if ci, ok := ctx.Classes.Lookup(targetType); ok {
			for _, m := range ci.FindMethods(callee.Member) {
				if len(m.Params) == len(e.Args) {
					return methodReturnType(m)
				}
			}
		}
		return "Object"
	}
	return "Object"
}

// builtinReturnType resolves a builtin method's return type, applying the
// numeric-promotion/pass-through rules for binary primitive operators
// whose table entry leaves Return blank (spec.md §4.6 "numeric
// promotion"): the receiver's own type is the result type for arithmetic,
// Boolean for comparisons/logic (already filled in by the table), the
// declared element type for get/head, and the container type itself for
// tail.
func builtinReturnType(receiverType, method string, sig builtinSig) string {
	if sig.Return != "" {
		return sig.Return
	}
	switch method {
	case "get", "head", "tail":
		_, args := ast.GenericHead(receiverType)
		if len(args) == 1 {
			if method == "tail" {
				head, _ := ast.GenericHead(receiverType)
				return ast.CanonicalizeTypeName(head, args[0])
			}
			return args[0]
		}
		return "Object"
	default:
		// Arithmetic operators on Integer/Real: the receiver type, unless
		// numeric promotion upgrades it (handled at the call site by the
		// emitter once both operand types are known).
		return receiverType
	}
}

func methodReturnType(m *ast.MethodDecl) string {
	if m.ReturnType == "" {
		return "void"
	}
	return m.ReturnType
}

// IsAssignable reports spec.md §4.4's assignment-compatibility rule:
// identical types, either-way Integer<->Real, or a target of Object.
func IsAssignable(target, source string) bool {
	if target == "" || target == "Object" || target == source {
		return true
	}
	if (target == "Integer" && source == "Real") || (target == "Real" && source == "Integer") {
		return true
	}
	return false
}
