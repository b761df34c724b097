package emitter

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/semantic"
	"github.com/cwbudde/ocomp/internal/typemap"
)

// emitCtx is the per-statement/expression state threaded through one
// method or constructor body: the build context for slot allocation and
// overload resolution (C6), a lexical Scope mirroring the one the
// analyzer built (so semantic.InferType gives the emitter the same
// answers it gave the check pass), and the chunk being written into.
type emitCtx struct {
	e          *Emitter
	ci         *semantic.ClassInfo
	bc         *typemap.BuildContext
	chunk      *bytecode.Chunk
	scope      *semantic.Scope
	returnType string
}

// withScope returns a copy of ctx nested under a fresh child scope, for
// while/if bodies (spec.md §4.3 "a scope is entered for every nested
// block").
func (ctx *emitCtx) withScope(s *semantic.Scope) *emitCtx {
	cp := *ctx
	cp.scope = s
	return &cp
}

func (ctx *emitCtx) infer(expr ast.Expression) string {
	return semantic.InferType(expr, &semantic.InferContext{
		Classes:      ctx.e.classes,
		CurrentClass: ctx.ci,
		Scope:        ctx.scope,
	})
}

// buildClassScope mirrors Analyzer.checkClass's classScope construction:
// every visible field (inherited and own) is defined once so identifier
// and assignment-target lookups see fields the same way locals/params do.
func (e *Emitter) buildClassScope(ci *semantic.ClassInfo) *semantic.Scope {
	scope := semantic.NewScope(nil)
	for _, f := range ci.AllFields() {
		if _, exists := scope.Own(f.Name); !exists {
			scope.Define(f.Name, semantic.SymVariable, f.Type, f.Pos())
		}
	}
	return scope
}

// fieldIndex returns name's position in ci.AllFields(), the layout every
// instance of ci (and its descendants) uses for OpLoadField/OpStoreField,
// or -1 if name is not a field of ci.
func (e *Emitter) fieldIndex(ci *semantic.ClassInfo, name string) int {
	for i, f := range ci.AllFields() {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// ctorIndex returns decl's position within owner.OwnCtors (pointer
// identity, since FindConstructor returns elements of that same slice).
func (e *Emitter) ctorIndex(owner *semantic.ClassInfo, decl *ast.ConstructorDecl) int {
	for i, c := range owner.OwnCtors {
		if c == decl {
			return i
		}
	}
	return 0
}

// emitTableDDefault pushes spec.md §4.6 Table D's zero-value for typ:
// Integer 0, Real 0.0, Boolean false, everything else (String, Array,
// List, user class) null.
func (e *Emitter) emitTableDDefault(chunk *bytecode.Chunk, typ string, line int) {
	switch typemap.EraseStorage(typ) {
	case "Integer":
		idx := chunk.AddConstant(bytecode.IntValue(0))
		chunk.Write(bytecode.OpLoadConst, 0, uint16(idx), line)
	case "Real":
		idx := chunk.AddConstant(bytecode.RealValue(0))
		chunk.Write(bytecode.OpLoadConst, 0, uint16(idx), line)
	case "Boolean":
		chunk.WriteSimple(bytecode.OpLoadFalse, line)
	default:
		chunk.WriteSimple(bytecode.OpLoadNull, line)
	}
}

func paramTypeNames(params []*ast.Parameter) []string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = p.TypeName
	}
	return out
}
