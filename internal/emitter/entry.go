package emitter

import (
	"fmt"

	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/ocerrors"
	"github.com/cwbudde/ocomp/internal/semantic"
)

// synthesizeEntry implements spec.md §4.6/§4.8's entry-point synthesis
// (C8): locate the start class (an explicit name if given, else the
// first declared class), construct it, and call its parameterless
// `main`. A program with no suitable entry point still produces a
// module, with a warning, so `ocomp compile` always has something to
// emit even for a library-only source file: when no start class
// resolves, the entry chunk is a bare return; when the start class has
// no parameterless `main`, the entry only constructs it, pops it, and
// returns.
func (e *Emitter) synthesizeEntry(startClass string) error {
	chunk := bytecode.NewChunk("<entry>")

	ci := e.resolveStartClass(startClass)
	if ci == nil {
		if startClass != "" {
			e.warn("start class %q not found; entry is a bare return", startClass)
		} else {
			e.warn("no classes declared; entry is a bare return")
		}
		e.module.EntryChunk = chunk
		return nil
	}
	e.module.EntryClass = ci.Name

	ctor, ctorIdx := e.entryCtor(ci)
	argc := 0
	if ctor != nil {
		for _, p := range ctor.Params {
			e.emitTableDDefault(chunk, p.TypeName, 0)
		}
		argc = len(ctor.Params)
	}
	classIdx := e.module.ClassIndex(ci.Name)
	ref := e.module.InternCtor(classIdx, ctorIdx)
	chunk.Write(bytecode.OpNewObject, byte(argc), uint16(ref), 0)

	if decl, owner, found := e.findZeroArgMethod(ci, "main"); found {
		slot := e.vslotFor(owner, decl)
		chunk.WriteSimple(bytecode.OpDup, 0)
		chunk.Write(bytecode.OpCallVirtual, 0, uint16(slot), 0)
		if decl.ReturnType != "" {
			chunk.WriteSimple(bytecode.OpPop, 0)
		}
	} else {
		e.warn("no suitable parameterless main found for start class %q", ci.Name)
	}
	chunk.WriteSimple(bytecode.OpPop, 0)
	chunk.WriteSimple(bytecode.OpReturn, 0)

	e.module.EntryChunk = chunk
	return nil
}

// entryCtor picks the constructor entry synthesis should call: the
// zero-arg one if ci declares one, else the cheapest declared
// constructor (fewest parameters, first by declaration order on ties) so
// Table D default values can be synthesised for its parameters (spec.md
// §4.8 "falling back to the cheapest constructor with synthesised
// default values"). A nil result with index 0 means ci declares no
// constructor at all, so the class-level synthesised parameterless
// default at Ctors[0] applies directly.
func (e *Emitter) entryCtor(ci *semantic.ClassInfo) (*ast.ConstructorDecl, int) {
	if len(ci.OwnCtors) == 0 {
		return nil, 0
	}
	best, bestIdx := ci.OwnCtors[0], 0
	for i, c := range ci.OwnCtors {
		if len(c.Params) == 0 {
			return c, i
		}
		if len(c.Params) < len(best.Params) {
			best, bestIdx = c, i
		}
	}
	return best, bestIdx
}

// warn records spec.md §4.8's "logs a warning" fallback, used both when
// the start class itself can't be resolved and when it has no suitable
// parameterless `main`.
func (e *Emitter) warn(format string, args ...any) {
	e.Warnings = append(e.Warnings, ocerrors.Warning{Message: fmt.Sprintf(format, args...)})
}

// resolveStartClass picks startClass if named and known, else the first
// class declared in the source.
func (e *Emitter) resolveStartClass(startClass string) *semantic.ClassInfo {
	if startClass != "" {
		ci, ok := e.classes.Lookup(startClass)
		if !ok {
			return nil
		}
		return ci
	}
	order := e.classes.InOrder()
	if len(order) == 0 {
		return nil
	}
	return order[0]
}

func (e *Emitter) findZeroArgMethod(ci *semantic.ClassInfo, name string) (*ast.MethodDecl, *semantic.ClassInfo, bool) {
	for c := ci; c != nil; c = c.BaseRef {
		for _, m := range c.OwnMethods {
			if m.Name == name && len(m.Params) == 0 {
				return m, c, true
			}
		}
	}
	return nil, nil, false
}
