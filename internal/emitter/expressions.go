package emitter

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/typemap"
)

// emitExpr lowers an expression, leaving exactly one value on the stack
// (spec.md §4.6's expression-lowering table), except for calls the
// analyzer typed "void" (print, user methods with no declared return
// type), which push nothing.
func (e *Emitter) emitExpr(ctx *emitCtx, expr ast.Expression) error {
	line := expr.Pos().Line
	switch n := expr.(type) {
	case *ast.IntLit:
		idx := ctx.chunk.AddConstant(bytecode.IntValue(n.Value))
		ctx.chunk.Write(bytecode.OpLoadConst, 0, uint16(idx), line)
		return nil

	case *ast.RealLit:
		idx := ctx.chunk.AddConstant(bytecode.RealValue(n.Value))
		ctx.chunk.Write(bytecode.OpLoadConst, 0, uint16(idx), line)
		return nil

	case *ast.BoolLit:
		if n.Value {
			ctx.chunk.WriteSimple(bytecode.OpLoadTrue, line)
		} else {
			ctx.chunk.WriteSimple(bytecode.OpLoadFalse, line)
		}
		return nil

	case *ast.StringLit:
		idx := ctx.chunk.AddConstant(bytecode.StringValue(n.Value))
		ctx.chunk.Write(bytecode.OpLoadConst, 0, uint16(idx), line)
		return nil

	case *ast.This:
		ctx.chunk.Write(bytecode.OpLoadLocal, 0, 0, line)
		return nil

	case *ast.Ident:
		return e.emitIdent(ctx, n)

	case *ast.MemberAccess:
		return e.emitBareMemberAccess(ctx, n)

	case *ast.New:
		return e.emitNew(ctx, n)

	case *ast.Call:
		return e.emitCall(ctx, n)
	}
	return e.fail(expr.Pos(), "emitter: unsupported expression %T", expr)
}

// emitIdent resolves a bare name: a local/parameter first, else a field
// reached through the implicit receiver (same ordering as the check
// pass, since both share the same Scope chain).
func (e *Emitter) emitIdent(ctx *emitCtx, n *ast.Ident) error {
	line := n.Pos().Line
	if _, idx, ok := ctx.bc.Resolve(n.Name); ok {
		ctx.chunk.Write(bytecode.OpLoadLocal, 0, uint16(idx), line)
		return nil
	}
	fieldIdx := e.fieldIndex(ctx.ci, n.Name)
	if fieldIdx < 0 {
		return e.fail(n.Pos(), "emitter: unresolved identifier %q", n.Name)
	}
	ctx.chunk.Write(bytecode.OpLoadLocal, 0, 0, line)
	ctx.chunk.Write(bytecode.OpLoadField, 0, uint16(fieldIdx), line)
	return nil
}

// emitBareMemberAccess lowers `target.member` with no call attached,
// mirroring semantic.inferMemberType's three-tier order: a zero-arg
// builtin property, then a zero-arg user method, then a field.
func (e *Emitter) emitBareMemberAccess(ctx *emitCtx, n *ast.MemberAccess) error {
	line := n.Pos().Line
	targetType := ctx.infer(n.Target)

	if op, ok := typemap.LookupBuiltinOp(targetType, n.Member); ok {
		if sig, okSig := builtinArity(targetType, n.Member); okSig && sig == 0 {
			if err := e.emitExpr(ctx, n.Target); err != nil {
				return err
			}
			ctx.chunk.WriteSimple(op, line)
			if n.Member == "head" && elemIsPrimitive(targetType) {
				ctx.chunk.WriteSimple(bytecode.OpUnbox, line)
			}
			return nil
		}
	}

	if ci, ok := e.classes.Lookup(targetType); ok {
		if decl, owner, found := ctx.bc.FindMethod(ci, n.Member, nil); found && len(decl.Params) == 0 {
			slot := e.vslotFor(owner, decl)
			if err := e.emitExpr(ctx, n.Target); err != nil {
				return err
			}
			ctx.chunk.Write(bytecode.OpCallVirtual, 0, uint16(slot), line)
			return nil
		}
		if _, _, ok := ci.FindField(n.Member); ok {
			fieldIdx := e.fieldIndex(ci, n.Member)
			if err := e.emitExpr(ctx, n.Target); err != nil {
				return err
			}
			ctx.chunk.Write(bytecode.OpLoadField, 0, uint16(fieldIdx), line)
			return nil
		}
	}
	return e.fail(n.Pos(), "emitter: cannot resolve member %s.%s", targetType, n.Member)
}

func builtinArity(recv, name string) (int, bool) {
	sig, ok := arityTable[recv]
	if !ok {
		head, _ := ast.GenericHead(recv)
		sig, ok = arityTable[head]
	}
	if !ok {
		return 0, false
	}
	arity, ok := sig[name]
	return arity, ok
}

// boxedValueArgIndex returns the call-argument index holding the element
// value for a builtin Array/List mutator, or -1 for methods with no
// element-typed argument: Array.set(index, value) boxes its second
// argument, List.append(value) its only one.
func boxedValueArgIndex(member string) int {
	switch member {
	case "set":
		return 1
	case "append":
		return 0
	}
	return -1
}

// elemIsPrimitive reports whether containerType (e.g. "Array[Integer]")
// tracks a primitive element type, the condition for box-on-store /
// unbox-on-load at the single point of access (spec.md §4.5/§9
// "Polymorphic containers").
func elemIsPrimitive(containerType string) bool {
	_, args := ast.GenericHead(containerType)
	return len(args) == 1 && ast.IsPrimitiveType(args[0])
}

var arityTable = map[string]map[string]int{
	"Integer": {"Plus": 1, "Minus": 1, "Mult": 1, "Div": 1, "Rem": 1, "Less": 1, "Greater": 1, "LessEqual": 1, "GreaterEqual": 1, "Equal": 1, "UnaryMinus": 0, "toReal": 0, "toBoolean": 0},
	"Real":    {"Plus": 1, "Minus": 1, "Mult": 1, "Div": 1, "Less": 1, "Greater": 1, "LessEqual": 1, "GreaterEqual": 1, "Equal": 1, "UnaryMinus": 0, "toInteger": 0},
	"Boolean": {"And": 1, "Or": 1, "Xor": 1, "Not": 0, "toInteger": 0},
	"Array":   {"get": 1, "set": 2, "Length": 0},
	"List":    {"append": 1, "head": 0, "tail": 0, "Length": 0, "get": 1},
}

// emitCall lowers a Call node per spec.md §4.6: the callee shape decides
// whether this is a builtin dispatch, a user virtual call, an implicit-
// this call, a class instantiation, or the print intrinsic.
func (e *Emitter) emitCall(ctx *emitCtx, n *ast.Call) error {
	line := n.Pos().Line

	switch callee := n.Callee.(type) {
	case *ast.MemberAccess:
		if callee.Member == "print" {
			if err := e.emitExpr(ctx, callee.Target); err != nil {
				return err
			}
			ctx.chunk.WriteSimple(bytecode.OpPrint, line)
			return nil
		}
		return e.emitMemberCall(ctx, n, callee)

	case *ast.Ident:
		if callee.Name == "print" {
			if len(n.Args) != 1 {
				return e.fail(n.Pos(), "emitter: print expects exactly one argument")
			}
			if err := e.emitExpr(ctx, n.Args[0]); err != nil {
				return err
			}
			ctx.chunk.WriteSimple(bytecode.OpPrint, line)
			return nil
		}

		argTypes := make([]string, len(n.Args))
		for i, a := range n.Args {
			argTypes[i] = ctx.infer(a)
		}
		if decl, owner, found := ctx.bc.FindMethod(ctx.ci, callee.Name, argTypes); found {
			slot := e.vslotFor(owner, decl)
			ctx.chunk.Write(bytecode.OpLoadLocal, 0, 0, line)
			for _, a := range n.Args {
				if err := e.emitExpr(ctx, a); err != nil {
					return err
				}
			}
			ctx.chunk.Write(bytecode.OpCallVirtual, byte(len(n.Args)), uint16(slot), line)
			return nil
		}
		if _, ok := e.classes.Lookup(callee.Name); ok {
			return e.emitNew(ctx, &ast.New{Token: callee.Token, ClassName: callee.Name, TypeArgs: callee.TypeArgs, Args: n.Args})
		}
		return e.fail(n.Pos(), "emitter: unresolved call %q", callee.Name)
	}
	return e.fail(n.Pos(), "emitter: unsupported call target %T", n.Callee)
}

// emitMemberCall lowers `target.method(args)`: a builtin opcode when
// target's erased type has one, otherwise a user virtual dispatch.
func (e *Emitter) emitMemberCall(ctx *emitCtx, call *ast.Call, ma *ast.MemberAccess) error {
	line := call.Pos().Line
	targetType := ctx.infer(ma.Target)

	if op, ok := typemap.LookupBuiltinOp(targetType, ma.Member); ok {
		if err := e.emitExpr(ctx, ma.Target); err != nil {
			return err
		}
		boxArg := boxedValueArgIndex(ma.Member)
		primitiveElem := elemIsPrimitive(targetType)
		for i, a := range call.Args {
			if err := e.emitExpr(ctx, a); err != nil {
				return err
			}
			e.emitNumericPromotion(ctx, targetType, ctx.infer(a), line)
			if i == boxArg && primitiveElem {
				ctx.chunk.WriteSimple(bytecode.OpBox, line)
			}
		}
		ctx.chunk.WriteSimple(op, line)
		if ma.Member == "get" && primitiveElem {
			ctx.chunk.WriteSimple(bytecode.OpUnbox, line)
		}
		return nil
	}

	ci, ok := e.classes.Lookup(targetType)
	if !ok {
		return e.fail(call.Pos(), "emitter: cannot resolve call target type %q", targetType)
	}
	argTypes := make([]string, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = ctx.infer(a)
	}
	decl, owner, found := ctx.bc.FindMethod(ci, ma.Member, argTypes)
	if !found {
		return e.fail(call.Pos(), "emitter: no method %s.%s matches arguments", targetType, ma.Member)
	}
	slot := e.vslotFor(owner, decl)
	if err := e.emitExpr(ctx, ma.Target); err != nil {
		return err
	}
	for _, a := range call.Args {
		if err := e.emitExpr(ctx, a); err != nil {
			return err
		}
	}
	ctx.chunk.Write(bytecode.OpCallVirtual, byte(len(call.Args)), uint16(slot), line)
	return nil
}

// emitNumericPromotion coerces a just-pushed Integer/Real argument to
// match its receiver's own type when a binary primitive operator (Plus,
// Minus, Mult, Div, the comparisons) is called across mixed Integer/Real
// operands, so OpIntPlus/OpRealPlus always see matching operand types
// (spec.md §4.6 "numeric promotion").
func (e *Emitter) emitNumericPromotion(ctx *emitCtx, recvType, argType string, line int) {
	if recvType == "Real" && argType == "Integer" {
		ctx.chunk.WriteSimple(bytecode.OpIntToReal, line)
	} else if recvType == "Integer" && argType == "Real" {
		ctx.chunk.WriteSimple(bytecode.OpRealToInt, line)
	}
}

// emitNew lowers `ClassName(args)` / `Array[T](n)` / `List[T](x)`.
func (e *Emitter) emitNew(ctx *emitCtx, n *ast.New) error {
	switch {
	case ast.IsPrimitiveType(n.ClassName):
		return e.emitPrimitiveNew(ctx, n)
	case n.ClassName == "Array":
		return e.emitArrayNew(ctx, n)
	case n.ClassName == "List":
		return e.emitListNew(ctx, n)
	}

	ci, ok := e.classes.Lookup(n.ClassName)
	if !ok {
		return e.fail(n.Pos(), "emitter: unknown class %q", n.ClassName)
	}
	argTypes := make([]string, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = ctx.infer(a)
	}
	ctorIdx := 0
	if decl, found := ctx.bc.FindConstructor(ci, argTypes); found {
		ctorIdx = e.ctorIndex(ci, decl)
	}
	for _, a := range n.Args {
		if err := e.emitExpr(ctx, a); err != nil {
			return err
		}
	}
	classIdx := e.module.ClassIndex(ci.Name)
	ref := e.module.InternCtor(classIdx, ctorIdx)
	ctx.chunk.Write(bytecode.OpNewObject, byte(len(n.Args)), uint16(ref), n.Pos().Line)
	return nil
}

// emitPrimitiveNew lowers Integer(x)/Real(x)/Boolean(x)/String(x) value
// coercions: with no argument, Table D's zero value; with one, the
// argument coerced to the target primitive (a no-op unless it crosses
// the Integer/Real boundary).
func (e *Emitter) emitPrimitiveNew(ctx *emitCtx, n *ast.New) error {
	line := n.Pos().Line
	if len(n.Args) == 0 {
		e.emitTableDDefault(ctx.chunk, n.ClassName, line)
		return nil
	}
	arg := n.Args[0]
	if err := e.emitExpr(ctx, arg); err != nil {
		return err
	}
	argType := ctx.infer(arg)
	switch {
	case n.ClassName == "Real" && argType == "Integer":
		ctx.chunk.WriteSimple(bytecode.OpIntToReal, line)
	case n.ClassName == "Integer" && argType == "Real":
		ctx.chunk.WriteSimple(bytecode.OpRealToInt, line)
	case n.ClassName == "Boolean" && argType == "Integer":
		ctx.chunk.WriteSimple(bytecode.OpIntToBool, line)
	case n.ClassName == "Integer" && argType == "Boolean":
		ctx.chunk.WriteSimple(bytecode.OpBoolToInt, line)
	}
	return nil
}

// emitArrayNew lowers Array[T](n): an opaque-ref array of size n.
func (e *Emitter) emitArrayNew(ctx *emitCtx, n *ast.New) error {
	line := n.Pos().Line
	elem := "Object"
	if len(n.TypeArgs) == 1 {
		elem = n.TypeArgs[0]
	}
	if len(n.Args) != 1 {
		return e.fail(n.Pos(), "emitter: Array[T] construction takes exactly one size argument")
	}
	if err := e.emitExpr(ctx, n.Args[0]); err != nil {
		return err
	}
	idx := ctx.chunk.AddConstant(bytecode.StringValue(elem))
	ctx.chunk.Write(bytecode.OpArrayNew, 0, uint16(idx), line)
	return nil
}

// emitListNew lowers List[T]()/List[T](x). When x is already a list, the
// call short-circuits to x itself rather than wrapping it in a new
// singleton list (DESIGN.md's resolution of the "List[T](x)" Open
// Question); otherwise a fresh list is built and x appended as its sole
// element.
func (e *Emitter) emitListNew(ctx *emitCtx, n *ast.New) error {
	line := n.Pos().Line
	elem := "Object"
	if len(n.TypeArgs) == 1 {
		elem = n.TypeArgs[0]
	}
	idx := ctx.chunk.AddConstant(bytecode.StringValue(elem))

	if len(n.Args) == 0 {
		ctx.chunk.Write(bytecode.OpListNew, 0, uint16(idx), line)
		return nil
	}

	arg := n.Args[0]
	argType := ctx.infer(arg)
	if head, _ := ast.GenericHead(argType); head == "List" {
		return e.emitExpr(ctx, arg)
	}

	ctx.chunk.Write(bytecode.OpListNew, 0, uint16(idx), line)
	ctx.chunk.WriteSimple(bytecode.OpDup, line)
	if err := e.emitExpr(ctx, arg); err != nil {
		return err
	}
	if ast.IsPrimitiveType(elem) {
		ctx.chunk.WriteSimple(bytecode.OpBox, line)
	}
	ctx.chunk.WriteSimple(bytecode.OpListAppend, line)
	return nil
}
