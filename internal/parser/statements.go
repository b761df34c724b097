package parser

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/token"
)

// parseBlock parses statements until one of stopAt is reached (without
// consuming it), building the three parallel projections described in
// spec.md §3 ("Blocks"). When stopAt is empty it defaults to stopping at
// `end` alone; `if`-then-blocks pass both `else` and `end` since either
// may close them.
func (p *Parser) parseBlock(stopAt ...token.Kind) *ast.Block {
	if len(stopAt) == 0 {
		stopAt = []token.Kind{token.END}
	}
	b := &ast.Block{}
	for !p.atAny(stopAt...) && !p.at(token.EOF) {
		stmt := p.parseStatement()
		b.Body = append(b.Body, stmt)
		if v, ok := stmt.(*ast.VarDecl); ok {
			b.Locals = append(b.Locals, v)
		} else {
			b.Statements = append(b.Statements, stmt)
		}
	}
	return b
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.at(k) {
			return true
		}
	}
	return false
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.at(token.VAR):
		return p.parseVarDecl()
	case p.at(token.WHILE):
		return p.parseWhile()
	case p.at(token.IF):
		return p.parseIf()
	case p.at(token.RETURN):
		return p.parseReturn()
	default:
		return p.parseAssignOrExprStmt()
	}
}

// parseVarDecl parses a local `var name (: Type)? (:= init)?`.
func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.expect(token.VAR)
	nameTok := p.expectIdentLike()
	v := &ast.VarDecl{Token: tok, Name: nameTok.Literal}
	if p.at(token.COLON) {
		p.advance()
		v.Type = p.parseTypeName()
	}
	if p.at(token.ASSIGN) {
		p.advance()
		v.Init = p.parseExpr()
	}
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	return v
}

func (p *Parser) parseWhile() *ast.While {
	tok := p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.LOOP)
	body := p.parseBlock(token.END)
	p.expect(token.END)
	return &ast.While{Token: tok, Condition: cond, Body: body}
}

func (p *Parser) parseIf() *ast.If {
	tok := p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.THEN)
	thenBlock := p.parseBlock(token.ELSE, token.END)
	node := &ast.If{Token: tok, Condition: cond, Then: thenBlock}
	if p.at(token.ELSE) {
		p.advance()
		node.Else = p.parseBlock(token.END)
	}
	p.expect(token.END)
	return node
}

func (p *Parser) parseReturn() *ast.Return {
	tok := p.expect(token.RETURN)
	r := &ast.Return{Token: tok}
	// A bare `return` is immediately followed by a token from the
	// termination set (spec.md §4.2); anything else starts a value
	// expression.
	if !terminatesExpr(p.cur().Kind) {
		r.Value = p.parseExpr()
	}
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	return r
}

// parseAssignOrExprStmt disambiguates an assignment target from a plain
// expression statement by looking ahead: `Identifier :=` (where
// Identifier may be a relaxed keyword) or `this . Identifier :=` is an
// Assign; anything else at statement position is parsed as an expression
// statement.
func (p *Parser) parseAssignOrExprStmt() ast.Statement {
	if (p.at(token.IDENT) || isRelaxedKeyword(p.cur().Kind)) && p.la(2).Kind == token.ASSIGN {
		nameTok := p.advance()
		assignTok := p.advance() // ':='
		value := p.parseExpr()
		if p.at(token.SEMICOLON) {
			p.advance()
		}
		return &ast.Assign{Token: assignTok, TargetName: nameTok.Literal, Value: value}
	}
	if p.at(token.THIS) && p.la(2).Kind == token.DOT &&
		(p.la(3).Kind == token.IDENT || isRelaxedKeyword(p.la(3).Kind)) && p.la(4).Kind == token.ASSIGN {
		p.advance() // this
		p.advance() // .
		nameTok := p.advance()
		assignTok := p.advance() // ':='
		value := p.parseExpr()
		if p.at(token.SEMICOLON) {
			p.advance()
		}
		return &ast.Assign{Token: assignTok, TargetName: nameTok.Literal, ViaThis: true, Value: value}
	}

	tok := p.cur()
	expr := p.parseExpr()
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	return &ast.ExprStmt{Token: tok, Expr: expr}
}
