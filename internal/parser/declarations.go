package parser

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/token"
)

// parseField parses `var name := initialiser-expression` or the
// type-only shorthand `var name: Type` (no initialiser expression at
// all — Table D's defaults apply at emit time). Either way a FieldDecl
// always has a non-nil Init after parsing: for the type-only shorthand we
// synthesize a zero-argument `New(Type)` so the rest of the pipeline only
// has to reason about one shape, and fd.ImplicitInit marks it so the
// emitter (emitFieldInit in internal/emitter) emits Table D's default
// instead of a construction.
func (p *Parser) parseField() *ast.FieldDecl {
	tok := p.expect(token.VAR)
	nameTok := p.expectIdentLike()
	fd := &ast.FieldDecl{Token: nameTok, Name: nameTok.Literal}

	switch {
	case p.at(token.ASSIGN):
		p.advance()
		fd.Init = p.parseExpr()
	case p.at(token.COLON):
		p.advance()
		typ := p.parseTypeName()
		fd.Type = typ
		fd.Init = &ast.New{Token: tok, ClassName: typ}
		fd.ImplicitInit = true
	default:
		p.fail(p.cur().Pos, "expected ':=' or ':' after field name %q", fd.Name)
	}
	if p.at(token.SEMICOLON) {
		p.advance()
	}
	return fd
}

// parseConstructor parses `this(params) is <block> end`.
func (p *Parser) parseConstructor() *ast.ConstructorDecl {
	tok := p.expect(token.THIS)
	params := p.parseParamList()
	p.expect(token.IS)
	body := p.parseBlock()
	p.expect(token.END)
	return &ast.ConstructorDecl{Token: tok, Params: params, Body: body}
}

// parseMethod parses `method name(params) (: ReturnType)? <body>` where
// body is one of: `is <block> end`, `=> expr`, or nothing (forward
// declaration).
func (p *Parser) parseMethod() *ast.MethodDecl {
	tok := p.expect(token.METHOD)
	nameTok := p.expectIdentLike()
	params := p.parseParamList()

	md := &ast.MethodDecl{Token: tok, Name: nameTok.Literal, Params: params}
	if p.at(token.COLON) {
		p.advance()
		md.ReturnType = p.parseTypeName()
	}

	switch {
	case p.at(token.IS):
		p.advance()
		md.Kind = ast.BodyBlock
		md.Block = p.parseBlock()
		p.expect(token.END)
	case p.at(token.ARROW):
		p.advance()
		md.Kind = ast.BodyArrow
		md.Arrow = p.parseExpr()
	default:
		md.Kind = ast.BodyForward
	}
	return md
}
