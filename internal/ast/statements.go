package ast

import "github.com/cwbudde/ocomp/internal/token"

// Assign is `target := value`, where target is either a bare identifier
// or `this.name`.
type Assign struct {
	Token      token.Token // the ':=' token
	TargetName string
	ViaThis    bool // true for `this.name := value`
	Value      Expression
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Pos() token.Position  { return a.Token.Pos }
func (a *Assign) String() string {
	target := a.TargetName
	if a.ViaThis {
		target = "this." + target
	}
	return target + " := " + a.Value.String()
}

// ExprStmt wraps an expression used for its side effects (a call).
type ExprStmt struct {
	Token token.Token
	Expr  Expression
}

func (e *ExprStmt) statementNode()       {}
func (e *ExprStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStmt) Pos() token.Position  { return e.Token.Pos }
func (e *ExprStmt) String() string       { return e.Expr.String() }

// While is `while condition loop <block> end`.
type While struct {
	Token     token.Token // the 'while' token
	Condition Expression
	Body      *Block
}

func (w *While) statementNode()       {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) Pos() token.Position  { return w.Token.Pos }
func (w *While) String() string       { return "while " + w.Condition.String() + " loop ... end" }

// If is `if condition then <block> (else <block>)? end`.
type If struct {
	Token     token.Token // the 'if' token
	Condition Expression
	Then      *Block
	Else      *Block // nil if no else-branch
}

func (i *If) statementNode()       {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() token.Position  { return i.Token.Pos }
func (i *If) String() string       { return "if " + i.Condition.String() + " then ... end" }

// Return is `return (value)?`.
type Return struct {
	Token token.Token // the 'return' token
	Value Expression  // nil if bare `return`
}

func (r *Return) statementNode()       {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() token.Position  { return r.Token.Pos }
func (r *Return) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}
