// Package semantic implements the name-resolution, inheritance/type
// checking, and AST-rewriting compiler pass (spec.md §4.4).
package semantic

import (
	"fmt"

	"github.com/cwbudde/ocomp/internal/token"
)

// Kind classifies what a Symbol denotes.
type Kind int

const (
	SymClass Kind = iota
	SymMethod
	SymConstructor
	SymVariable
	SymParameter
)

// Symbol is one entry in a Scope: a name together with its Kind, its
// declared type (when known), and whether any later lookup has marked it
// used — the basis for the optimiser's dead-local/dead-field removal.
type Symbol struct {
	Name    string
	Kind    Kind
	Type    string // "" if not yet known
	Used    bool
	DeclPos token.Position
}

// Scope is a single lexical scope: a flat name->Symbol map plus a single
// parent link. Definitions are rejected when they would shadow a name
// already defined in the same scope; lookups walk outward through parents.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a scope enclosed by parent (nil for the global scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]*Symbol)}
}

// Define adds name to this scope. It fails if name is already defined in
// this exact scope (redefinition across scopes, i.e. shadowing, is fine).
func (s *Scope) Define(name string, kind Kind, typ string, pos token.Position) (*Symbol, error) {
	if _, exists := s.symbols[name]; exists {
		return nil, fmt.Errorf("%q is already declared in this scope", name)
	}
	sym := &Symbol{Name: name, Kind: kind, Type: typ, DeclPos: pos}
	s.symbols[name] = sym
	return sym, nil
}

// Resolve walks this scope and its parents, returning the first match.
func (s *Scope) Resolve(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// MarkUsed flags name as used, if it resolves from this scope.
func (s *Scope) MarkUsed(name string) {
	if sym, ok := s.Resolve(name); ok {
		sym.Used = true
	}
}

// Enter creates and returns a new scope nested under s.
func (s *Scope) Enter() *Scope { return NewScope(s) }

// Parent returns the enclosing scope (nil at the global scope).
func (s *Scope) Parent() *Scope { return s.parent }

// Own reports whether name is defined directly in this scope (not a
// parent), needed by callers that must not re-walk the chain themselves.
func (s *Scope) Own(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}
