package emitter

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/semantic"
)

// emitBlock lowers a block's statements in their original interleaved
// order (ast.Block.Body is authoritative, per its doc comment), threading
// a fresh child scope for the block's own locals.
func (e *Emitter) emitBlock(ctx *emitCtx, block *ast.Block) error {
	inner := ctx.withScope(ctx.scope.Enter())
	for _, stmt := range block.Body {
		if err := e.emitStatement(inner, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitStatement(ctx *emitCtx, stmt ast.Statement) error {
	line := stmt.Pos().Line
	switch s := stmt.(type) {
	case *ast.VarDecl:
		idx := ctx.bc.DefineLocal(s.Name, s.Type)
		ctx.scope.Define(s.Name, semantic.SymVariable, s.Type, s.Pos())
		if s.Init != nil {
			if err := e.emitExpr(ctx, s.Init); err != nil {
				return err
			}
		} else {
			e.emitTableDDefault(ctx.chunk, s.Type, line)
		}
		ctx.chunk.Write(bytecode.OpStoreLocal, 0, uint16(idx), line)
		return nil

	case *ast.Assign:
		return e.emitAssign(ctx, s)

	case *ast.ExprStmt:
		if err := e.emitExpr(ctx, s.Expr); err != nil {
			return err
		}
		if ctx.infer(s.Expr) != "void" {
			ctx.chunk.WriteSimple(bytecode.OpPop, line)
		}
		return nil

	case *ast.While:
		return e.emitWhile(ctx, s)

	case *ast.If:
		return e.emitIf(ctx, s)

	case *ast.Return:
		if s.Value != nil {
			if err := e.emitExpr(ctx, s.Value); err != nil {
				return err
			}
			ctx.chunk.Write(bytecode.OpReturn, 1, 0, line)
		} else {
			ctx.chunk.Write(bytecode.OpReturn, 0, 0, line)
		}
		return nil
	}
	return e.fail(stmt.Pos(), "emitter: unsupported statement %T", stmt)
}

// emitAssign implements spec.md §4.6's three assignment-target cases:
// `this.name := value` always targets a field; a bare name that resolves
// to a local or parameter in the current build context targets that slot;
// any other bare name is a field reached through the implicit receiver
// (fields live in the same Scope chain as locals, so Scope.Resolve alone
// can't distinguish the two — the build context can).
func (e *Emitter) emitAssign(ctx *emitCtx, s *ast.Assign) error {
	line := s.Pos().Line

	if !s.ViaThis {
		if _, idx, ok := ctx.bc.Resolve(s.TargetName); ok {
			if err := e.emitExpr(ctx, s.Value); err != nil {
				return err
			}
			ctx.chunk.Write(bytecode.OpStoreLocal, 0, uint16(idx), line)
			return nil
		}
	}

	fieldIdx := e.fieldIndex(ctx.ci, s.TargetName)
	ctx.chunk.Write(bytecode.OpLoadLocal, 0, 0, line)
	if err := e.emitExpr(ctx, s.Value); err != nil {
		return err
	}
	ctx.chunk.Write(bytecode.OpStoreField, 0, uint16(fieldIdx), line)
	return nil
}

func (e *Emitter) emitWhile(ctx *emitCtx, s *ast.While) error {
	line := s.Pos().Line
	loopStart := len(ctx.chunk.Code)
	if err := e.emitExpr(ctx, s.Condition); err != nil {
		return err
	}
	exitJump := ctx.chunk.EmitJump(bytecode.OpJumpIfFalse, line)
	if err := e.emitBlock(ctx, s.Body); err != nil {
		return err
	}
	// The back-edge targets loopStart directly rather than "here", so it
	// is written by hand instead of through EmitJump/PatchJump (which
	// always patches relative to the jump's own position at patch time).
	backJump := ctx.chunk.Write(bytecode.OpJump, 0, 0, line)
	ctx.chunk.Code[backJump] = bytecode.MakeInstruction(bytecode.OpJump, 0, uint16(int16(loopStart-backJump-1)))
	if err := ctx.chunk.PatchJump(exitJump); err != nil {
		return e.fail(s.Pos(), "%s", err)
	}
	return nil
}

func (e *Emitter) emitIf(ctx *emitCtx, s *ast.If) error {
	line := s.Pos().Line
	if err := e.emitExpr(ctx, s.Condition); err != nil {
		return err
	}
	elseJump := ctx.chunk.EmitJump(bytecode.OpJumpIfFalse, line)
	if err := e.emitBlock(ctx, s.Then); err != nil {
		return err
	}
	if s.Else == nil {
		if err := ctx.chunk.PatchJump(elseJump); err != nil {
			return e.fail(s.Pos(), "%s", err)
		}
		return nil
	}
	endJump := ctx.chunk.EmitJump(bytecode.OpJump, line)
	if err := ctx.chunk.PatchJump(elseJump); err != nil {
		return e.fail(s.Pos(), "%s", err)
	}
	if err := e.emitBlock(ctx, s.Else); err != nil {
		return err
	}
	if err := ctx.chunk.PatchJump(endJump); err != nil {
		return e.fail(s.Pos(), "%s", err)
	}
	return nil
}
