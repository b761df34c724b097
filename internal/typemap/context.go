// Package typemap implements the emitter's per-method build context
// (spec.md §4.5, "C6"): local/parameter slot allocation with erased
// storage types, cascading field lookup, type-name resolution, and the
// three-tier overload resolution the emitter uses to pick a concrete
// method or constructor at a call site.
package typemap

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/semantic"
)

// Slot is one allocated local-variable-table entry: a parameter or local,
// addressed by index. StorageType is what the emitter actually allocates
// space for (an erased container head, or "Object" for any user-class
// reference); RealType is the declared/inferred type, kept alongside so
// dispatch can be reconstructed against the value's real shape rather
// than its erased storage (spec.md §4.5 "storage erasure").
type Slot struct {
	Name        string
	StorageType string
	RealType    string
}

// BuildContext is instantiated once per method or constructor body by the
// emitter. Slot 0 is always the receiver.
type BuildContext struct {
	Classes *semantic.ClassTable
	Class   *semantic.ClassInfo

	Slots []Slot
	index map[string]int
}

// NewBuildContext creates a build context for a member of class, seeding
// slot 0 with the implicit receiver.
func NewBuildContext(classes *semantic.ClassTable, class *semantic.ClassInfo) *BuildContext {
	bc := &BuildContext{Classes: classes, Class: class, index: make(map[string]int)}
	bc.Slots = append(bc.Slots, Slot{Name: "this", StorageType: EraseStorage(class.Name), RealType: class.Name})
	bc.index["this"] = 0
	return bc
}

// DefineParameter allocates the next slot for a parameter, in declaration
// order (so parameter i of the source signature lands at index i+1, past
// the receiver).
func (bc *BuildContext) DefineParameter(name, typ string) int {
	return bc.define(name, typ)
}

// DefineLocal allocates the next slot for a `var` local. Locals share the
// same flat slot space as parameters (spec.md §4.3's scope is a stack,
// but the emitter's storage is flat per callable).
func (bc *BuildContext) DefineLocal(name, typ string) int {
	return bc.define(name, typ)
}

func (bc *BuildContext) define(name, typ string) int {
	idx := len(bc.Slots)
	bc.Slots = append(bc.Slots, Slot{Name: name, StorageType: EraseStorage(typ), RealType: typ})
	bc.index[name] = idx
	return idx
}

// Resolve returns the slot and index for a previously defined name
// (receiver, parameter, or local).
func (bc *BuildContext) Resolve(name string) (Slot, int, bool) {
	idx, ok := bc.index[name]
	if !ok {
		return Slot{}, 0, false
	}
	return bc.Slots[idx], idx, true
}

// FindField performs the cascading field lookup of spec.md §4.5, starting
// from bc.Class.
func (bc *BuildContext) FindField(name string) (*ast.FieldDecl, *semantic.ClassInfo, bool) {
	return bc.Class.FindField(name)
}

// TypeDescriptor is the resolved shape of a type name: exactly one of
// Primitive, Container (Array/List), or Class is meaningful, decided by
// Head. An unresolvable name resolves to the Object descriptor
// (Head == "Object", all flags false) rather than failing — the check
// pass has already rejected any name that wouldn't resolve to something
// real, so by the time the emitter asks, "didn't resolve to anything more
// specific" and "is Object" are the same fact.
type TypeDescriptor struct {
	Head      string
	Primitive bool
	Container bool
	ElemType  string // set when Container
	Class     *semantic.ClassInfo
}

// ResolveType implements spec.md §4.5's resolve_type: primitives resolve
// directly, Array[T]/List[T] resolve to an erased container descriptor
// carrying its element type, user names resolve to their ClassInfo, and
// anything else resolves to Object.
func (bc *BuildContext) ResolveType(name string) TypeDescriptor {
	head, args := ast.GenericHead(name)

	if ast.IsPrimitiveType(head) {
		return TypeDescriptor{Head: head, Primitive: true}
	}
	if ast.IsBuiltinGenericHead(head) {
		elem := "Object"
		if len(args) == 1 {
			elem = args[0]
		}
		return TypeDescriptor{Head: head, Container: true, ElemType: elem}
	}
	if ci, ok := bc.Classes.Lookup(head); ok {
		return TypeDescriptor{Head: head, Class: ci}
	}
	return TypeDescriptor{Head: "Object"}
}

// EraseStorage is the storage-level type the emitter allocates a slot or
// field as: primitives keep their own identity (Integer/Real/Boolean are
// unboxed-ish value slots; String is a reference slot), Array/List erase
// to their bare head, and every user-class reference erases to Object
// (spec.md §4.5/§9 "storage erasure").
func EraseStorage(typ string) string {
	head, _ := ast.GenericHead(typ)
	switch head {
	case "Integer", "Real", "Boolean", "String":
		return head
	case "Array", "List":
		return head
	default:
		return "Object"
	}
}

// FindMethod implements the three-tier method-overload resolution of
// spec.md §4.5/§9: exact parameter-type match in ci's own overload set;
// failing that, a match tolerant of Object-erased arguments; failing
// that, recurse into the base class. Constructors are never inherited
// (see FindConstructor) but methods are, so the recursion happens once
// per ancestor rather than over ci.FindMethods's combined list, to keep
// each class's own overload set resolved before falling back to its
// parent's.
func (bc *BuildContext) FindMethod(ci *semantic.ClassInfo, name string, argTypes []string) (*ast.MethodDecl, *semantic.ClassInfo, bool) {
	for c := ci; c != nil; c = c.BaseRef {
		var own []*ast.MethodDecl
		for _, m := range c.OwnMethods {
			if m.Name == name {
				own = append(own, m)
			}
		}
		if len(own) == 0 {
			continue
		}
		if m, ok := exactMethodMatch(own, argTypes); ok {
			return m, c, true
		}
		if m, ok := anyMethodMatch(own, argTypes); ok {
			return m, c, true
		}
	}
	return nil, nil, false
}

// FindConstructor resolves a constructor the same way, restricted to ci's
// own declared constructors (constructors are not inherited).
func (bc *BuildContext) FindConstructor(ci *semantic.ClassInfo, argTypes []string) (*ast.ConstructorDecl, bool) {
	if c, ok := exactCtorMatch(ci.OwnCtors, argTypes); ok {
		return c, true
	}
	return anyCtorMatch(ci.OwnCtors, argTypes)
}

func exactMethodMatch(cands []*ast.MethodDecl, argTypes []string) (*ast.MethodDecl, bool) {
	for _, m := range cands {
		if sameTypes(m.ParamTypes(), argTypes) {
			return m, true
		}
	}
	return nil, false
}

// anyMethodMatch tolerates a parameter or argument type of "Object": once
// a value is stored erased, the emitter can no longer tell exact user
// types apart statically, so a candidate whose signature matches modulo
// Object positions is accepted.
func anyMethodMatch(cands []*ast.MethodDecl, argTypes []string) (*ast.MethodDecl, bool) {
	for _, m := range cands {
		if looseTypesMatch(m.ParamTypes(), argTypes) {
			return m, true
		}
	}
	return nil, false
}

func exactCtorMatch(cands []*ast.ConstructorDecl, argTypes []string) (*ast.ConstructorDecl, bool) {
	for _, c := range cands {
		if sameTypes(c.ParamTypes(), argTypes) {
			return c, true
		}
	}
	return nil, false
}

func anyCtorMatch(cands []*ast.ConstructorDecl, argTypes []string) (*ast.ConstructorDecl, bool) {
	for _, c := range cands {
		if looseTypesMatch(c.ParamTypes(), argTypes) {
			return c, true
		}
	}
	return nil, false
}

func sameTypes(a, b []string) bool {
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

func looseTypesMatch(params, argTypes []string) bool {
	if len(params) != len(argTypes) {
		return false
	}
	for i := range params {
		if params[i] == argTypes[i] || params[i] == "Object" || argTypes[i] == "Object" {
			continue
		}
		return false
	}
	return true
}
