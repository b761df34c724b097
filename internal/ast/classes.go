// This file contains AST nodes for class declarations and their members:
// fields, constructors, and methods.
package ast

import "github.com/cwbudde/ocomp/internal/token"

// ClassDecl is a single `class Name (extends Base)? is <members> end`.
type ClassDecl struct {
	Token        token.Token // the 'class' token
	Name         string
	Base         string // "" if no `extends` clause
	Fields       []*FieldDecl
	Constructors []*ConstructorDecl
	Methods      []*MethodDecl
}

func (c *ClassDecl) statementNode()       {}
func (c *ClassDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ClassDecl) String() string {
	s := "class " + c.Name
	if c.Base != "" {
		s += " extends " + c.Base
	}
	s += " is\n"
	for _, f := range c.Fields {
		s += "  " + f.String() + "\n"
	}
	for _, ctor := range c.Constructors {
		s += "  " + ctor.String() + "\n"
	}
	for _, m := range c.Methods {
		s += "  " + m.String() + "\n"
	}
	s += "end"
	return s
}

// FieldDecl is `var name: initialiser-expression`. The initialiser is
// either a real expression (typically a `New` call) or, when the source
// wrote just a bare type name, a placeholder `New` with no arguments whose
// class name is the declared type (see parser.parseField).
type FieldDecl struct {
	Token token.Token // the field name token
	Name  string
	Init  Expression
	// Type is the declared/inferred type name, filled in by the analyzer
	// once the initialiser's type has been inferred.
	Type string
	// ImplicitInit marks an Init the parser synthesised for the
	// type-only shorthand `var name: Type` (no `:=` at all), as opposed
	// to a real user-written initialiser expression. A synthesised Init
	// is always a zero-argument New of Type, but a user can write that
	// exact same construction explicitly (`var name: Type := Type()`),
	// so emit-time code must consult this flag rather than infer intent
	// from the Init's shape.
	ImplicitInit bool
}

func (f *FieldDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FieldDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FieldDecl) String() string       { return "var " + f.Name + " := " + f.Init.String() }

// ConstructorDecl is `this(params) is <block> end`.
type ConstructorDecl struct {
	Token  token.Token // the 'this' token
	Params []*Parameter
	Body   *Block
}

func (c *ConstructorDecl) TokenLiteral() string { return c.Token.Literal }
func (c *ConstructorDecl) Pos() token.Position  { return c.Token.Pos }
func (c *ConstructorDecl) String() string       { return "this(...) is ... end" }

// MethodDecl is `method name(params) (: ReturnType)? <body>`.
type MethodDecl struct {
	Token      token.Token // the 'method' token
	Name       string
	Params     []*Parameter
	ReturnType string // "" if no declared return type
	Kind       BodyKind
	Block      *Block     // set when Kind == BodyBlock
	Arrow      Expression // set when Kind == BodyArrow
}

func (m *MethodDecl) TokenLiteral() string { return m.Token.Literal }
func (m *MethodDecl) Pos() token.Position  { return m.Token.Pos }
func (m *MethodDecl) String() string       { return "method " + m.Name + "(...)" }

// ParamTypes returns the parameter type-name sequence, used as the
// overload-resolution key.
func (m *MethodDecl) ParamTypes() []string {
	out := make([]string, len(m.Params))
	for i, p := range m.Params {
		out[i] = p.TypeName
	}
	return out
}

// ParamTypes returns the parameter type-name sequence for a constructor.
func (c *ConstructorDecl) ParamTypes() []string {
	out := make([]string, len(c.Params))
	for i, p := range c.Params {
		out[i] = p.TypeName
	}
	return out
}
