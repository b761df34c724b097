package ast

import (
	"strconv"
	"strings"

	"github.com/cwbudde/ocomp/internal/token"
)

// IntLit is an integer literal (including the parser's negated-literal
// atom, e.g. `-5`, which folds the sign into Value directly).
type IntLit struct {
	Token token.Token
	Value int64
}

func (n *IntLit) expressionNode()      {}
func (n *IntLit) TokenLiteral() string { return n.Token.Literal }
func (n *IntLit) Pos() token.Position  { return n.Token.Pos }
func (n *IntLit) String() string       { return strconv.FormatInt(n.Value, 10) }

// RealLit is a real (floating point) literal.
type RealLit struct {
	Token token.Token
	Value float64
}

func (n *RealLit) expressionNode()      {}
func (n *RealLit) TokenLiteral() string { return n.Token.Literal }
func (n *RealLit) Pos() token.Position  { return n.Token.Pos }
func (n *RealLit) String() string       { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// BoolLit is `true` or `false`.
type BoolLit struct {
	Token token.Token
	Value bool
}

func (n *BoolLit) expressionNode()      {}
func (n *BoolLit) TokenLiteral() string { return n.Token.Literal }
func (n *BoolLit) Pos() token.Position  { return n.Token.Pos }
func (n *BoolLit) String() string       { return strconv.FormatBool(n.Value) }

// StringLit is a quoted string literal; Value holds the unescaped text.
type StringLit struct {
	Token token.Token
	Value string
}

func (n *StringLit) expressionNode()      {}
func (n *StringLit) TokenLiteral() string { return n.Token.Literal }
func (n *StringLit) Pos() token.Position  { return n.Token.Pos }
func (n *StringLit) String() string       { return strconv.Quote(n.Value) }

// This is the receiver reference inside a method/constructor body.
type This struct {
	Token token.Token
}

func (n *This) expressionNode()      {}
func (n *This) TokenLiteral() string { return n.Token.Literal }
func (n *This) Pos() token.Position  { return n.Token.Pos }
func (n *This) String() string       { return "this" }

// Ident is a bare name reference: a local, a parameter, a class name, or
// (when TypeArgs is non-empty) a generic class name carrying its bracketed
// type-argument suffix ahead of a call, e.g. the `Array[Integer]` in
// `Array[Integer](3)`.
type Ident struct {
	Token    token.Token
	Name     string
	TypeArgs []string
}

func (n *Ident) expressionNode()      {}
func (n *Ident) TokenLiteral() string { return n.Token.Literal }
func (n *Ident) Pos() token.Position  { return n.Token.Pos }
func (n *Ident) String() string {
	if len(n.TypeArgs) == 0 {
		return n.Name
	}
	return n.Name + "[" + strings.Join(n.TypeArgs, ",") + "]"
}

// MemberAccess is `target.member`, with no call attached.
type MemberAccess struct {
	Token  token.Token // the '.' token
	Target Expression
	Member string
}

func (n *MemberAccess) expressionNode()      {}
func (n *MemberAccess) TokenLiteral() string { return n.Token.Literal }
func (n *MemberAccess) Pos() token.Position  { return n.Token.Pos }
func (n *MemberAccess) String() string       { return n.Target.String() + "." + n.Member }

// Call is `callee(args)`, where callee is either an Ident (implicit-this
// call or class instantiation, see the parser) or a MemberAccess (method
// call on a receiver).
type Call struct {
	Token  token.Token // the '(' token
	Callee Expression
	Args   []Expression
}

func (n *Call) expressionNode()      {}
func (n *Call) TokenLiteral() string { return n.Token.Literal }
func (n *Call) Pos() token.Position  { return n.Token.Pos }
func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// New is `ClassName(args)`, possibly with a generic type argument
// (`Array[Integer](3)`, `List[T](x)`). TypeArgs is empty for non-generic
// classes.
type New struct {
	Token     token.Token // the class-name token
	ClassName string
	TypeArgs  []string
	Args      []Expression
}

func (n *New) expressionNode()      {}
func (n *New) TokenLiteral() string { return n.Token.Literal }
func (n *New) Pos() token.Position  { return n.Token.Pos }
func (n *New) String() string {
	name := n.ClassName
	if len(n.TypeArgs) > 0 {
		name += "[" + strings.Join(n.TypeArgs, ",") + "]"
	}
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}
