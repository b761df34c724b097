package emitter

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/semantic"
	"github.com/cwbudde/ocomp/internal/typemap"
)

// emitMethodBody compiles m's body into out.Chunk. Forward-declared
// methods (ast.BodyForward) never reach here (emitClass skips them).
func (e *Emitter) emitMethodBody(ci *semantic.ClassInfo, m *ast.MethodDecl, out *bytecode.MethodDescriptor) error {
	chunk := bytecode.NewChunk(ci.Name + "." + m.Name)
	bc := typemap.NewBuildContext(e.classes, ci)
	scope := e.buildClassScope(ci).Enter()

	for _, p := range m.Params {
		bc.DefineParameter(p.Name, p.TypeName)
		scope.Define(p.Name, semantic.SymParameter, p.TypeName, p.Pos())
	}

	returnType := m.ReturnType
	ctx := &emitCtx{e: e, ci: ci, bc: bc, chunk: chunk, scope: scope, returnType: returnType}

	switch m.Kind {
	case ast.BodyArrow:
		if err := e.emitExpr(ctx, m.Arrow); err != nil {
			return err
		}
		chunk.Write(bytecode.OpReturn, 1, 0, m.Pos().Line)
	case ast.BodyBlock:
		if err := e.emitBlock(ctx, m.Block); err != nil {
			return err
		}
		chunk.Write(bytecode.OpReturn, 0, 0, m.Pos().Line)
	}

	chunk.LocalCount = len(bc.Slots)
	out.Chunk = chunk
	return nil
}
