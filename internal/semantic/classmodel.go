package semantic

import (
	"fmt"

	"github.com/cwbudde/ocomp/internal/ast"
)

// ClassInfo is the resolved, per-class member table the rest of the
// compiler (type inference, overload resolution, the emitter) consults.
// It is built once by Analyzer.Check's three class-level traversals and never
// mutated afterwards — the optimise pass only ever removes AST nodes, not
// ClassInfo entries (spec.md §8 "Optimiser monotonicity").
type ClassInfo struct {
	Decl    *ast.ClassDecl
	Name    string
	Base    string // "" if no `extends` clause
	BaseRef *ClassInfo

	// OwnFields/OwnMethods/OwnCtors are this class's own members, in
	// source order; inherited members are reached through BaseRef.
	OwnFields  []*ast.FieldDecl
	OwnCtors   []*ast.ConstructorDecl
	OwnMethods []*ast.MethodDecl
}

// ClassTable is the whole-program registry of resolved classes, keyed by
// name, built in declaration order.
type ClassTable struct {
	byName map[string]*ClassInfo
	order  []*ClassInfo
}

func newClassTable() *ClassTable {
	return &ClassTable{byName: make(map[string]*ClassInfo)}
}

func (t *ClassTable) Lookup(name string) (*ClassInfo, bool) {
	ci, ok := t.byName[name]
	return ci, ok
}

func (t *ClassTable) InOrder() []*ClassInfo { return t.order }

// FindField performs cascading field lookup: this class's own fields
// first, then each ancestor in turn (spec.md §4.5 "cascading lookup").
func (ci *ClassInfo) FindField(name string) (*ast.FieldDecl, *ClassInfo, bool) {
	for c := ci; c != nil; c = c.BaseRef {
		for _, f := range c.OwnFields {
			if f.Name == name {
				return f, c, true
			}
		}
	}
	return nil, nil, false
}

// AllFields returns every field visible on ci, base-first, in the order
// the constructor protocol initialises them: inherited fields (outermost
// ancestor first) followed by this class's own fields in source order.
func (ci *ClassInfo) AllFields() []*ast.FieldDecl {
	var chain []*ClassInfo
	for c := ci; c != nil; c = c.BaseRef {
		chain = append(chain, c)
	}
	var out []*ast.FieldDecl
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, chain[i].OwnFields...)
	}
	return out
}

// FindMethods returns every method named `name` visible on ci (own
// overload set first, then ancestors), for use by overload resolution.
func (ci *ClassInfo) FindMethods(name string) []*ast.MethodDecl {
	var out []*ast.MethodDecl
	for c := ci; c != nil; c = c.BaseRef {
		for _, m := range c.OwnMethods {
			if m.Name == name {
				out = append(out, m)
			}
		}
	}
	return out
}

// FindConstructors returns ci's own declared constructors (constructors
// are never inherited).
func (ci *ClassInfo) FindConstructors() []*ast.ConstructorDecl {
	return ci.OwnCtors
}

// IsDescendantOf reports whether ci is base or a descendant of base,
// walking the (already cycle-checked) inheritance chain.
func (ci *ClassInfo) IsDescendantOf(base *ClassInfo) bool {
	for c := ci; c != nil; c = c.BaseRef {
		if c == base {
			return true
		}
	}
	return false
}

// registerClasses is the first check-pass traversal: register every class
// name, rejecting duplicates.
func registerClasses(prog *ast.Program) (*ClassTable, error) {
	t := newClassTable()
	for _, cd := range prog.Classes {
		if _, exists := t.byName[cd.Name]; exists {
			return nil, fmt.Errorf("duplicate class declaration %q", cd.Name)
		}
		ci := &ClassInfo{Decl: cd, Name: cd.Name, Base: cd.Base}
		t.byName[cd.Name] = ci
		t.order = append(t.order, ci)
	}
	return t, nil
}

// resolveBases is the second check-pass traversal: resolve each class's
// base name and verify the inheritance chain is finite (spec.md §8
// "Inheritance acyclicity").
func resolveBases(t *ClassTable) error {
	for _, ci := range t.order {
		if ci.Base == "" {
			continue
		}
		base, ok := t.Lookup(ci.Base)
		if !ok {
			return fmt.Errorf("class %q extends unknown class %q", ci.Name, ci.Base)
		}
		ci.BaseRef = base
	}
	for _, ci := range t.order {
		visited := map[*ClassInfo]bool{}
		for c := ci; c != nil; c = c.BaseRef {
			if visited[c] {
				return fmt.Errorf("cyclic inheritance involving class %q", ci.Name)
			}
			visited[c] = true
		}
	}
	return nil
}

// collectMembers is the third check-pass traversal: populate each
// ClassInfo's own fields, constructors, and methods, rejecting duplicate
// fields, duplicate constructors (identical parameter-type sequence), and
// duplicate method signatures (same name+params, unless one side is a
// forward declaration).
func collectMembers(t *ClassTable) error {
	for _, ci := range t.order {
		seenFields := map[string]bool{}
		for _, f := range ci.Decl.Fields {
			if seenFields[f.Name] {
				return fmt.Errorf("class %q: duplicate field %q", ci.Name, f.Name)
			}
			seenFields[f.Name] = true
			ci.OwnFields = append(ci.OwnFields, f)
		}

		seenCtors := map[string]bool{}
		for _, c := range ci.Decl.Constructors {
			key := sigKey(c.ParamTypes())
			if seenCtors[key] {
				return fmt.Errorf("class %q: duplicate constructor with parameter types %v", ci.Name, c.ParamTypes())
			}
			seenCtors[key] = true
			ci.OwnCtors = append(ci.OwnCtors, c)
		}

		seenMethods := map[string]*ast.MethodDecl{}
		for _, m := range ci.Decl.Methods {
			key := m.Name + "/" + sigKey(m.ParamTypes())
			if prev, exists := seenMethods[key]; exists {
				if prev.Kind != ast.BodyForward && m.Kind != ast.BodyForward {
					return fmt.Errorf("class %q: duplicate method %q with the same parameter types", ci.Name, m.Name)
				}
			}
			seenMethods[key] = m
			ci.OwnMethods = append(ci.OwnMethods, m)
		}
	}
	return nil
}

func sigKey(types []string) string {
	key := ""
	for _, t := range types {
		key += t + ","
	}
	return key
}

// builtinClassNames are pre-populated in the global scope so `Ident`
// resolution and New-target validation accept them without a ClassInfo
// (they have no user-visible fields/methods beyond the fixed builtin
// tables in builtins.go).
var builtinClassNames = map[string]bool{
	"Integer": true, "Real": true, "Boolean": true, "String": true,
	"Array": true, "List": true, "Object": true,
}
