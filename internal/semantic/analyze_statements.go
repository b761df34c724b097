package semantic

import "github.com/cwbudde/ocomp/internal/ast"

// checkStatement validates one statement of a block body. returnType is
// the enclosing method's declared return type ("" for constructors and
// type-less methods).
func (a *Analyzer) checkStatement(stmt ast.Statement, ctx *InferContext, returnType string) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		if err := a.validateTypeName(s.Pos(), s.Type); err != nil {
			return err
		}
		if s.Init != nil {
			if err := a.validateExpr(s.Init, ctx); err != nil {
				return err
			}
			if s.Type == "" {
				s.Type = InferType(s.Init, ctx)
			} else if !IsAssignable(s.Type, InferType(s.Init, ctx)) {
				return a.fail(s.Pos(), "variable %s: initialiser of type %s is not assignable to declared type %s", s.Name, InferType(s.Init, ctx), s.Type)
			}
		}
		sym, err := ctx.Scope.Define(s.Name, SymVariable, s.Type, s.Pos())
		if err != nil {
			return a.fail(s.Pos(), "%s", err)
		}
		a.pendingLocals = append(a.pendingLocals, localBinding{vd: s, sym: sym})
		return nil

	case *ast.Assign:
		if err := a.validateExpr(s.Value, ctx); err != nil {
			return err
		}
		sym, ok := ctx.Scope.Resolve(s.TargetName)
		if !ok {
			return a.fail(s.Pos(), "assignment to undeclared name %q", s.TargetName)
		}
		if sym.Kind != SymVariable && sym.Kind != SymParameter {
			return a.fail(s.Pos(), "cannot assign to %q", s.TargetName)
		}
		sym.Used = true
		valueType := InferType(s.Value, ctx)
		if sym.Type != "" && !IsAssignable(sym.Type, valueType) {
			return a.fail(s.Pos(), "cannot assign value of type %s to %s of type %s", valueType, s.TargetName, sym.Type)
		}
		return nil

	case *ast.ExprStmt:
		return a.validateExpr(s.Expr, ctx)

	case *ast.While:
		if err := a.validateExpr(s.Condition, ctx); err != nil {
			return err
		}
		if condType := InferType(s.Condition, ctx); condType != "Boolean" && condType != "Object" {
			return a.fail(s.Condition.Pos(), "while condition must be Boolean, got %s", condType)
		}
		bodyScope := &InferContext{Classes: ctx.Classes, CurrentClass: ctx.CurrentClass, Scope: ctx.Scope.Enter()}
		if _, err := a.checkBlock(s.Body, bodyScope, returnType); err != nil {
			return err
		}
		return nil

	case *ast.If:
		if err := a.validateExpr(s.Condition, ctx); err != nil {
			return err
		}
		if condType := InferType(s.Condition, ctx); condType != "Boolean" && condType != "Object" {
			return a.fail(s.Condition.Pos(), "if condition must be Boolean, got %s", condType)
		}
		thenScope := &InferContext{Classes: ctx.Classes, CurrentClass: ctx.CurrentClass, Scope: ctx.Scope.Enter()}
		if _, err := a.checkBlock(s.Then, thenScope, returnType); err != nil {
			return err
		}
		if s.Else != nil {
			elseScope := &InferContext{Classes: ctx.Classes, CurrentClass: ctx.CurrentClass, Scope: ctx.Scope.Enter()}
			if _, err := a.checkBlock(s.Else, elseScope, returnType); err != nil {
				return err
			}
		}
		return nil

	case *ast.Return:
		if s.Value != nil {
			if err := a.validateExpr(s.Value, ctx); err != nil {
				return err
			}
			if returnType == "" {
				a.Warnings = append(a.Warnings, warningAt(s.Pos(), "returning a value from a method with no declared return type"))
			} else if valueType := InferType(s.Value, ctx); !IsAssignable(returnType, valueType) {
				return a.fail(s.Pos(), "return value of type %s is not assignable to declared return type %s", valueType, returnType)
			}
		} else if returnType != "" {
			return a.fail(s.Pos(), "method with declared return type %s must return a value", returnType)
		}
		return nil
	}
	return nil
}
