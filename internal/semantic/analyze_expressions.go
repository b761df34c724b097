package semantic

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/token"
)

// validateExpr recursively walks an expression tree, resolving every
// identifier against ctx.Scope (marking it used), checking every `New`
// target and any generic element type names, and enforcing the built-in
// method arity/argument-type shape (spec.md §4.4 "Built-in method shape").
func (a *Analyzer) validateExpr(expr ast.Expression, ctx *InferContext) error {
	switch e := expr.(type) {
	case *ast.IntLit, *ast.RealLit, *ast.BoolLit, *ast.StringLit, *ast.This:
		return nil

	case *ast.Ident:
		if _, ok := ctx.Scope.Resolve(e.Name); ok {
			ctx.Scope.MarkUsed(e.Name)
			return nil
		}
		if builtinClassNames[e.Name] {
			return nil
		}
		if _, ok := ctx.Classes.Lookup(e.Name); ok {
			return nil
		}
		return a.fail(e.Pos(), "undeclared name %q", e.Name)

	case *ast.New:
		if !builtinClassNames[e.ClassName] {
			if _, ok := ctx.Classes.Lookup(e.ClassName); !ok {
				return a.fail(e.Pos(), "construction of unknown class %q", e.ClassName)
			}
		}
		for _, arg := range e.TypeArgs {
			if !builtinClassNames[arg] {
				if _, ok := ctx.Classes.Lookup(arg); !ok {
					return a.fail(e.Pos(), "unknown element type %q", arg)
				}
			}
		}
		for _, arg := range e.Args {
			if err := a.validateExpr(arg, ctx); err != nil {
				return err
			}
		}
		return nil

	case *ast.MemberAccess:
		if err := a.validateExpr(e.Target, ctx); err != nil {
			return err
		}
		targetType := InferType(e.Target, ctx)
		return a.checkBuiltinShape(e.Pos(), targetType, e.Member, nil, ctx)

	case *ast.Call:
		for _, arg := range e.Args {
			if err := a.validateExpr(arg, ctx); err != nil {
				return err
			}
		}
		switch callee := e.Callee.(type) {
		case *ast.Ident:
			if callee.Name == "print" {
				// The print intrinsic: callable bare, any arity (spec.md
				// §4.6 "print").
				return nil
			}
			if len(callee.TypeArgs) > 0 || isBuiltinTypeName(callee.Name) {
				// Lowered by the parser as a `New`-style construction
				// spelled as a call; nothing further to resolve here.
				return nil
			}
			if ctx.CurrentClass != nil && len(ctx.CurrentClass.FindMethods(callee.Name)) > 0 {
				return nil
			}
			if _, ok := ctx.Classes.Lookup(callee.Name); ok {
				return nil
			}
			return a.fail(callee.Pos(), "call to undeclared method or class %q", callee.Name)
		case *ast.MemberAccess:
			if err := a.validateExpr(callee.Target, ctx); err != nil {
				return err
			}
			if callee.Member == "print" {
				return nil
			}
			targetType := InferType(callee.Target, ctx)
			return a.checkBuiltinShape(e.Pos(), targetType, callee.Member, e.Args, ctx)
		}
		return nil
	}
	return nil
}

// isBuiltinTypeName reports whether name names one of the built-in
// classes, mirroring the parser's own New-vs-Call disambiguation.
func isBuiltinTypeName(name string) bool {
	return builtinClassNames[name]
}

// checkBuiltinShape validates a builtin method reference's arity and, for
// Array/List index accessors, that the index argument is an Integer
// (spec.md §4.4 "Built-in method shape"). args is nil for a bare
// MemberAccess (which implies a call with zero arguments).
func (a *Analyzer) checkBuiltinShape(pos token.Position, targetType, member string, args []ast.Expression, ctx *InferContext) error {
	if !isBuiltinReceiverType(targetType) {
		// User-class receivers are resolved by overload resolution
		// (internal/typemap), not the fixed builtin tables.
		return nil
	}
	sig, ok := lookupBuiltinMethod(targetType, member)
	if !ok {
		return a.fail(pos, "type %s has no method %q", targetType, member)
	}
	if sig.Arity != len(args) {
		return a.fail(pos, "method %s.%s expects %d argument(s), got %d", targetType, member, sig.Arity, len(args))
	}
	head, _ := ast.GenericHead(targetType)
	if (head == "Array" || head == "List") && (member == "get" || member == "set") && len(args) > 0 {
		if indexType := InferType(args[0], ctx); indexType != "Integer" && indexType != "Object" {
			return a.fail(args[0].Pos(), "%s.%s index must be Integer, got %s", targetType, member, indexType)
		}
	}
	return nil
}
