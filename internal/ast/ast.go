// Package ast defines the Abstract Syntax Tree node types for the O
// language: a sequence of class declarations, each with fields,
// constructors, and methods built from statements and expressions.
package ast

import "github.com/cwbudde/ocomp/internal/token"

// Node is the interface satisfied by every AST node.
type Node interface {
	TokenLiteral() string
	Pos() token.Position
	String() string
}

// Statement is a Node that appears inside a method/constructor body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a value (or void, for calls used as
// statements).
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: an ordered sequence of class declarations.
type Program struct {
	Classes []*ClassDecl
}

func (p *Program) TokenLiteral() string {
	if len(p.Classes) == 0 {
		return ""
	}
	return p.Classes[0].TokenLiteral()
}
func (p *Program) Pos() token.Position {
	if len(p.Classes) == 0 {
		return token.Position{}
	}
	return p.Classes[0].Pos()
}
func (p *Program) String() string {
	s := ""
	for _, c := range p.Classes {
		s += c.String() + "\n"
	}
	return s
}

// Parameter is a single (name, type-name) pair in a parameter list.
type Parameter struct {
	Token    token.Token // the parameter's name token
	Name     string
	TypeName string
}

func (p *Parameter) TokenLiteral() string  { return p.Token.Literal }
func (p *Parameter) Pos() token.Position   { return p.Token.Pos }
func (p *Parameter) String() string        { return p.Name + ": " + p.TypeName }

// BodyKind distinguishes the three shapes a method body can take.
type BodyKind int

const (
	// BodyForward is a method declared with no body at all.
	BodyForward BodyKind = iota
	// BodyBlock is `is <locals/statements> end`.
	BodyBlock
	// BodyArrow is `=> expression`.
	BodyArrow
)

// Block holds a method/constructor body under three parallel
// projections. `Body` (the interleaved original order) is authoritative
// for code generation; `Locals` and `Statements` are O(1)-access views
// derived from it, kept purely so hoisting and scope checks don't need to
// re-scan `Body`. Invariant: the multiset union of Locals and Statements
// equals Body.
type Block struct {
	Body       []Statement
	Locals     []*VarDecl
	Statements []Statement
}

// VarDecl is a local variable declaration: `var name: Type := init` (or
// any combination of the optional type/initialiser being absent).
type VarDecl struct {
	Token token.Token // the 'var' token
	Name  string
	Type  string // "" if not declared
	Init  Expression
	// Used is filled in by the analyzer's check pass: whether any later
	// statement in the same callable reads this local. Consulted by the
	// optimiser's dead-local removal.
	Used bool
}

func (v *VarDecl) statementNode()        {}
func (v *VarDecl) TokenLiteral() string  { return v.Token.Literal }
func (v *VarDecl) Pos() token.Position   { return v.Token.Pos }
func (v *VarDecl) String() string {
	s := "var " + v.Name
	if v.Type != "" {
		s += ": " + v.Type
	}
	if v.Init != nil {
		s += " := " + v.Init.String()
	}
	return s
}
