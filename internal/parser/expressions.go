// There are no infix operators in O: every operator is a method call, so
// the entire expression grammar is
//
//	expr := atom ( '(' args ')' | '.' Identifier ( '(' args ')' )? )*
//
// and atom handles literals, `this`, `true`/`false`, the `-literal`
// negation shorthand, and identifiers (optionally carrying a `[...]`
// generic type-argument suffix ahead of a call).
package parser

import (
	"strconv"

	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/token"
)

// parseExpr parses one expression: an atom followed by any number of call
// or member-access postfixes. Parsing stops at the first token that is
// neither '(' nor '.', which includes every token of the fixed termination
// set (spec.md §4.2); there is no explicit separator.
func (p *Parser) parseExpr() ast.Expression {
	expr := p.parseAtom()
	for {
		switch {
		case p.at(token.LPAREN):
			expr = p.finishCallOrNew(expr)
		case p.at(token.DOT):
			dotTok := p.advance()
			memberTok := p.expectIdentLike()
			member := &ast.MemberAccess{Token: dotTok, Target: expr, Member: memberTok.Literal}
			if p.at(token.LPAREN) {
				expr = p.finishCall(member)
			} else {
				expr = member
			}
		default:
			return expr
		}
	}
}

// finishCallOrNew handles the '(' that follows a bare atom. If that atom
// is an Ident naming a built-in type (or carrying a generic type-arg
// suffix), the call is a New; otherwise it's an implicit `this.name(args)`
// call (an Ident callee) or a plain method call (a MemberAccess callee,
// handled by the caller instead — this path only ever sees Ident atoms,
// since MemberAccess calls are finished directly in parseExpr).
func (p *Parser) finishCallOrNew(callee ast.Expression) ast.Expression {
	id, ok := callee.(*ast.Ident)
	if !ok {
		return p.finishCall(callee)
	}
	if len(id.TypeArgs) > 0 || isBuiltinTypeName(id.Name) {
		args := p.parseArgs()
		return &ast.New{Token: id.Token, ClassName: id.Name, TypeArgs: id.TypeArgs, Args: args}
	}
	return p.finishCall(callee)
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	tok := p.cur()
	args := p.parseArgs()
	return &ast.Call{Token: tok, Callee: callee, Args: args}
}

// isBuiltinTypeName reports whether name is a primitive wrapper or one of
// the two generic container heads, i.e. an identifier atom in call
// position that denotes instantiation rather than an implicit this-call.
func isBuiltinTypeName(name string) bool {
	return ast.IsPrimitiveType(name) || ast.IsBuiltinGenericHead(name)
}

// parseArgs parses a parenthesised, comma-separated, possibly empty
// expression list.
func (p *Parser) parseArgs() []ast.Expression {
	p.expect(token.LPAREN)
	var args []ast.Expression
	for !p.at(token.RPAREN) {
		args = append(args, p.parseExpr())
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parseAtom() ast.Expression {
	tok := p.cur()
	switch tok.Kind {
	case token.INTEGER:
		p.advance()
		return &ast.IntLit{Token: tok, Value: mustParseInt(tok.Literal)}
	case token.REAL:
		p.advance()
		return &ast.RealLit{Token: tok, Value: mustParseFloat(tok.Literal)}
	case token.STRING:
		p.advance()
		return &ast.StringLit{Token: tok, Value: tok.Literal}
	case token.TRUE:
		p.advance()
		return &ast.BoolLit{Token: tok, Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLit{Token: tok, Value: false}
	case token.THIS:
		p.advance()
		return &ast.This{Token: tok}
	case token.ILLEGAL:
		if tok.Literal == "-" {
			return p.parseNegatedLiteral()
		}
		p.fail(tok.Pos, "unexpected character %q", tok.Literal)
	case token.IDENT:
		return p.parseIdentAtom()
	}
	if isRelaxedKeyword(tok.Kind) {
		return p.parseIdentAtom()
	}
	p.fail(tok.Pos, "unexpected token %s %q in expression", tok.Kind, tok.Literal)
	return nil
}

// parseNegatedLiteral handles the lexer's "Unknown '-'" prefix: a '-'
// immediately followed by a numeric literal produces a negated literal
// atom directly, with no general unary-minus expression form.
func (p *Parser) parseNegatedLiteral() ast.Expression {
	minusTok := p.advance() // '-'
	numTok := p.cur()
	switch numTok.Kind {
	case token.INTEGER:
		p.advance()
		return &ast.IntLit{Token: minusTok, Value: -mustParseInt(numTok.Literal)}
	case token.REAL:
		p.advance()
		return &ast.RealLit{Token: minusTok, Value: -mustParseFloat(numTok.Literal)}
	}
	p.fail(minusTok.Pos, "expected a numeric literal after '-', got %s %q", numTok.Kind, numTok.Literal)
	return nil
}

// parseIdentAtom parses an identifier (possibly a relaxed keyword),
// followed by an optional `[TypeName (,TypeName)*]` generic suffix.
func (p *Parser) parseIdentAtom() ast.Expression {
	tok := p.expectIdentLike()
	id := &ast.Ident{Token: tok, Name: tok.Literal}
	if p.at(token.LBRACK) {
		p.advance()
		id.TypeArgs = append(id.TypeArgs, p.parseTypeName())
		for p.at(token.COMMA) {
			p.advance()
			id.TypeArgs = append(id.TypeArgs, p.parseTypeName())
		}
		p.expect(token.RBRACK)
	}
	return id
}

func mustParseInt(lit string) int64 {
	v, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		// The lexer only ever produces all-digit lexemes for INTEGER, so
		// this can only fail on overflow; fall back to the closest
		// representable value rather than a panic mid-parse.
		return v
	}
	return v
}

func mustParseFloat(lit string) float64 {
	v, _ := strconv.ParseFloat(lit, 64)
	return v
}
