package emitter

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/semantic"
	"github.com/cwbudde/ocomp/internal/typemap"
)

// emitConstructorBody implements spec.md §4.6's constructor protocol.
// decl is nil when ci declared no constructor at all, in which case this
// emits the synthesised parameterless default.
func (e *Emitter) emitConstructorBody(ci *semantic.ClassInfo, decl *ast.ConstructorDecl, out *bytecode.CtorDescriptor) error {
	name := ci.Name + ".ctor"
	chunk := bytecode.NewChunk(name)
	bc := typemap.NewBuildContext(e.classes, ci)
	scope := e.buildClassScope(ci).Enter()

	var params []*ast.Parameter
	line := ci.Decl.Pos().Line
	if decl != nil {
		params = decl.Params
		line = decl.Pos().Line
	}
	for _, p := range params {
		bc.DefineParameter(p.Name, p.TypeName)
		scope.Define(p.Name, semantic.SymParameter, p.TypeName, p.Pos())
	}
	ctx := &emitCtx{e: e, ci: ci, bc: bc, chunk: chunk, scope: scope}

	// (1) load receiver, (2) call base-class constructor.
	if ci.BaseRef != nil {
		argTypes := paramTypeNames(params)
		baseIdx, baseParamTypes, hasBase := e.resolveBaseCtor(ctx, ci.BaseRef, argTypes)
		if hasBase {
			chunk.Write(bytecode.OpLoadLocal, 0, 0, line)
			forward := sameParamTypes(baseParamTypes, argTypes)
			if forward {
				for _, p := range params {
					_, idx, _ := bc.Resolve(p.Name)
					chunk.Write(bytecode.OpLoadLocal, 0, uint16(idx), line)
				}
			}
			argc := 0
			if forward {
				argc = len(params)
			}
			classIdx := e.module.ClassIndex(ci.BaseRef.Name)
			ref := e.module.InternCtor(classIdx, baseIdx)
			chunk.Write(bytecode.OpCallCtor, byte(argc), uint16(ref), line)
		}
	}

	// (3) field initialisers in source order, own fields only (inherited
	// fields were already initialised by the base constructor call above).
	for _, f := range ci.OwnFields {
		fieldIdx := e.fieldIndex(ci, f.Name)
		chunk.Write(bytecode.OpLoadLocal, 0, 0, f.Pos().Line)
		if err := e.emitFieldInit(ctx, f); err != nil {
			return err
		}
		chunk.Write(bytecode.OpStoreField, 0, uint16(fieldIdx), f.Pos().Line)
	}

	// (4) user body.
	if decl != nil {
		if err := e.emitBlock(ctx, decl.Body); err != nil {
			return err
		}
	}

	// (5) return.
	chunk.WriteSimple(bytecode.OpReturn, line)

	chunk.LocalCount = len(bc.Slots)
	out.Chunk = chunk
	return nil
}

// emitFieldInit lowers one field's initialiser: a real expression, or, when
// f.ImplicitInit marks it as the parser's type-only-shorthand placeholder
// (`var name: Type`, no `:=`), Table D's zero value instead of a
// construction call. A user-written `var name: Type := Type()` is a real
// construction and must not be collapsed just because it happens to have
// the same zero-arg, matching-type shape as the placeholder.
func (e *Emitter) emitFieldInit(ctx *emitCtx, f *ast.FieldDecl) error {
	if f.ImplicitInit {
		e.emitTableDDefault(ctx.chunk, f.Type, f.Pos().Line)
		return nil
	}
	return e.emitExpr(ctx, f.Init)
}

// resolveBaseCtor picks the base constructor to invoke from the current
// constructor's own argument types, per spec.md §4.6: the one whose
// parameter types match (exactly, else modulo Object), else the
// parameterless one, else, when base declares no constructor at all, the
// synthesised parameterless default at Ctors[0]. When base declares
// constructors but none matches and none is parameterless, ok is false
// and no base constructor is called (object's default).
func (e *Emitter) resolveBaseCtor(ctx *emitCtx, base *semantic.ClassInfo, argTypes []string) (idx int, paramTypes []string, ok bool) {
	if c, found := ctx.bc.FindConstructor(base, argTypes); found {
		return e.ctorIndex(base, c), c.ParamTypes(), true
	}
	if c, found := ctx.bc.FindConstructor(base, nil); found {
		return e.ctorIndex(base, c), c.ParamTypes(), true
	}
	if len(base.OwnCtors) == 0 {
		return 0, nil, true
	}
	return 0, nil, false
}
