package parser

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/token"
)

// parseTypeName parses `Identifier ('[' TypeName (',' TypeName)* ']')*`
// and canonicalizes it to `Name[arg1,arg2]` with no spaces.
func (p *Parser) parseTypeName() string {
	name := p.expectIdentLike().Literal
	for p.at(token.LBRACK) {
		p.advance()
		name += "["
		name += p.parseTypeName()
		for p.at(token.COMMA) {
			p.advance()
			name += "," + p.parseTypeName()
		}
		p.expect(token.RBRACK)
		name += "]"
	}
	return name
}

// parseParamList parses a parenthesised, possibly empty `(name: Type, ...)`
// list. Parameter names accept the keyword-as-identifier relaxation.
func (p *Parser) parseParamList() []*ast.Parameter {
	p.expect(token.LPAREN)
	var params []*ast.Parameter
	for !p.at(token.RPAREN) {
		nameTok := p.expectIdentLike()
		p.expect(token.COLON)
		typ := p.parseTypeName()
		params = append(params, &ast.Parameter{Token: nameTok, Name: nameTok.Literal, TypeName: typ})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	return params
}
