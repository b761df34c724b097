// Package emitter implements the IL emitter (spec.md §4.6, "C7") and
// entry-point synthesis (§4.6 "Entry synthesis", "C8"): it walks the
// checked AST one class at a time and lowers it onto the
// internal/bytecode stack machine, using internal/typemap's build
// context for slot allocation and overload resolution.
//
// It is its own package, separate from internal/bytecode, because
// internal/typemap already imports internal/bytecode for its builtin
// opcode table (spec.md §4.13) — putting the emitter inside
// internal/bytecode itself, as the teacher does with compiler.go, would
// close that into an import cycle.
package emitter

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/ocerrors"
	"github.com/cwbudde/ocomp/internal/semantic"
	"github.com/cwbudde/ocomp/internal/token"
	"github.com/cwbudde/ocomp/internal/typemap"
)

// Emitter holds the whole-compile-session state spec.md §4.6 describes:
// exclusive ownership of the mutable class/method/constructor descriptor
// tables for the duration of one compile.
type Emitter struct {
	classes *semantic.ClassTable
	module  *bytecode.Module

	// descByClass indexes Emitter.module.Classes by class name, and
	// vslotSeq tracks the next free virtual-dispatch slot per class chain
	// (spec.md §4.6 "Method emission").
	descByClass map[string]*bytecode.ClassDescriptor
	vslotSeq    map[string]int

	source, file string

	// Warnings collects non-fatal diagnostics raised during emission,
	// currently just entry synthesis's "no suitable main" (spec.md §4.8).
	// driver.Compile folds these into CompileResult.Warnings alongside
	// the analyzer's.
	Warnings []ocerrors.Warning
}

// New creates an Emitter for one compile session.
func New(classes *semantic.ClassTable, source, file string) *Emitter {
	return &Emitter{
		classes:     classes,
		module:      &bytecode.Module{},
		descByClass: map[string]*bytecode.ClassDescriptor{},
		vslotSeq:    map[string]int{},
		source:      source,
		file:        file,
	}
}

func (e *Emitter) fail(pos token.Position, format string, args ...any) error {
	return ocerrors.EmitError(pos, e.source, e.file, format, args...)
}

// Emit lowers every class in declaration order (spec.md §4.6 "One pass
// over the AST per class"), then synthesises the entry stub (C8).
func (e *Emitter) Emit(prog *ast.Program, startClass string) (*bytecode.Module, error) {
	// (a) create every class descriptor (with its base) up front, so
	// forward/mutual references between classes resolve regardless of
	// declaration order.
	for _, ci := range e.classes.InOrder() {
		cd := &bytecode.ClassDescriptor{Name: ci.Name, Base: ci.Base}
		e.module.Classes = append(e.module.Classes, cd)
		e.descByClass[ci.Name] = cd
	}

	for _, ci := range e.classes.InOrder() {
		if err := e.emitClass(ci); err != nil {
			return nil, err
		}
	}

	if err := e.synthesizeEntry(startClass); err != nil {
		return nil, err
	}
	return e.module, nil
}

// emitClass implements spec.md §4.6's per-class ordering: (b) field
// descriptors; (c) method signatures (bodies deferred); (d) constructors;
// (e) method bodies; (f) finalise (a no-op here — descByClass already
// points at the descriptor stored in the module).
func (e *Emitter) emitClass(ci *semantic.ClassInfo) error {
	cd := e.descByClass[ci.Name]

	for _, f := range ci.AllFields() {
		cd.Fields = append(cd.Fields, bytecode.FieldDescriptor{
			Name:        f.Name,
			StorageType: typemap.EraseStorage(f.Type),
			RealType:    f.Type,
		})
	}

	for _, m := range ci.OwnMethods {
		vslot, override := e.resolveVSlot(ci, m)
		cd.Methods = append(cd.Methods, bytecode.MethodDescriptor{
			Name:       m.Name,
			ParamTypes: m.ParamTypes(),
			ReturnType: m.ReturnType,
			VSlot:      vslot,
			Override:   override,
		})
	}

	ctors := ci.OwnCtors
	if len(ctors) == 0 {
		// Synthesise a parameterless default (spec.md §4.6 "synthesising
		// a parameterless default if none is declared").
		cd.Ctors = append(cd.Ctors, bytecode.CtorDescriptor{})
		if err := e.emitConstructorBody(ci, nil, &cd.Ctors[0]); err != nil {
			return err
		}
	} else {
		for i, c := range ctors {
			cd.Ctors = append(cd.Ctors, bytecode.CtorDescriptor{ParamTypes: c.ParamTypes()})
			if err := e.emitConstructorBody(ci, c, &cd.Ctors[i]); err != nil {
				return err
			}
		}
	}

	for i, m := range ci.OwnMethods {
		if m.Kind == ast.BodyForward {
			continue
		}
		if err := e.emitMethodBody(ci, m, &cd.Methods[i]); err != nil {
			return err
		}
	}

	return nil
}

// resolveVSlot implements spec.md §4.6 "every method is virtual": reuse
// the ancestor's slot (override) when a same-named, same-parameter-types
// method already exists above ci in the chain; otherwise allocate a new
// slot, shared by name across the whole class chain so overrides in
// deeper descendants keep landing on it too.
func (e *Emitter) resolveVSlot(ci *semantic.ClassInfo, m *ast.MethodDecl) (slot int, override bool) {
	for c := ci.BaseRef; c != nil; c = c.BaseRef {
		for _, am := range c.OwnMethods {
			if am.Name == m.Name && sameParamTypes(am.ParamTypes(), m.ParamTypes()) {
				return e.vslotFor(c, am), true
			}
		}
	}
	root := ci
	for root.BaseRef != nil {
		root = root.BaseRef
	}
	key := root.Name
	slot = e.vslotSeq[key]
	e.vslotSeq[key] = slot + 1
	return slot, false
}

// vslotFor returns the slot already assigned to owner's method mt,
// looked up in owner's already-built descriptor.
func (e *Emitter) vslotFor(owner *semantic.ClassInfo, mt *ast.MethodDecl) int {
	cd := e.descByClass[owner.Name]
	for _, md := range cd.Methods {
		if md.Name == mt.Name && sameParamTypes(md.ParamTypes, mt.ParamTypes()) {
			return md.VSlot
		}
	}
	return 0
}

func sameParamTypes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
