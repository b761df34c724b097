// Package parser implements the recursive-descent parser for the O
// language: tokens to AST, with one token of lookahead (LA(1)) plus
// explicit LA(k) where the grammar needs to disambiguate further ahead
// (assignment targets: `Identifier :=` needs LA(2), `this . Identifier :=`
// needs LA(4)).
package parser

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/lexer"
	"github.com/cwbudde/ocomp/internal/ocerrors"
	"github.com/cwbudde/ocomp/internal/token"
)

// Parser holds the full token stream (materialized once by the lexer) and
// a cursor into it. The grammar has no explicit statement separator, so
// nearly every production needs lookahead past the current token; keeping
// the whole stream in memory makes that cheap and keeps the grammar code
// free of lexer-buffering concerns.
type Parser struct {
	toks   []token.Token
	pos    int
	source string
	file   string
}

// New creates a Parser over source, tokenizing it immediately.
func New(source, file string) *Parser {
	return &Parser{toks: lexer.Tokenize(source), source: source, file: file}
}

// syntaxPanic is the internal payload thrown by fail(); ParseProgram
// recovers it and turns it back into a returned error, so the rest of the
// parser can be written straight-line without threading errors through
// every return.
type syntaxPanic struct{ diag *ocerrors.Diagnostic }

func (p *Parser) fail(pos token.Position, format string, args ...any) {
	panic(syntaxPanic{ocerrors.SyntaxError(pos, p.source, p.file, format, args...)})
}

// cur returns the current token (LA(1)).
func (p *Parser) cur() token.Token { return p.la(1) }

// la returns the token k positions ahead (1-based; la(1) == cur()).
func (p *Parser) la(k int) token.Token {
	i := p.pos + k - 1
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[i]
}

// advance consumes and returns the current token.
func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

// at reports whether the current token has kind k.
func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

// expect consumes the current token if it has kind k, else raises a
// syntax error naming what was expected.
func (p *Parser) expect(k token.Kind) token.Token {
	if !p.at(k) {
		p.fail(p.cur().Pos, "expected %s, got %s %q", k, p.cur().Kind, p.cur().Literal)
	}
	return p.advance()
}

// ParseProgram parses the full token stream into a Program. A syntax
// error aborts parsing immediately and is returned as err.
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			sp, ok := r.(syntaxPanic)
			if !ok {
				panic(r)
			}
			err = sp.diag
		}
	}()

	prog = &ast.Program{}
	for !p.at(token.EOF) {
		prog.Classes = append(prog.Classes, p.parseClass())
	}
	return prog, nil
}

// parseClass parses one `class Name (extends Base)? is <members> end`.
//
// Class-boundary recovery: if the member loop below encounters a `class`
// token, it stops (without consuming it) instead of demanding a matching
// `end`; this lets the outer ParseProgram loop pick the next class up
// directly. It tolerates source that is missing a trailing `end` between
// classes — see spec.md's "Open question: multiple class declarations
// without end". This implementation keeps that leniency rather than
// rejecting it.
func (p *Parser) parseClass() *ast.ClassDecl {
	tok := p.expect(token.CLASS)
	name := p.expectIdentLike().Literal

	cd := &ast.ClassDecl{Token: tok, Name: name}
	if p.at(token.EXTENDS) {
		p.advance()
		cd.Base = p.expectIdentLike().Literal
	}
	p.expect(token.IS)

	for !p.at(token.END) && !p.at(token.CLASS) && !p.at(token.EOF) {
		p.parseMember(cd)
	}
	if p.at(token.END) {
		p.advance()
	}
	return cd
}

func (p *Parser) parseMember(cd *ast.ClassDecl) {
	switch {
	case p.at(token.VAR):
		cd.Fields = append(cd.Fields, p.parseField())
	case p.at(token.THIS):
		cd.Constructors = append(cd.Constructors, p.parseConstructor())
	case p.at(token.METHOD):
		cd.Methods = append(cd.Methods, p.parseMethod())
	default:
		p.fail(p.cur().Pos, "expected a field, constructor, or method declaration, got %s %q", p.cur().Kind, p.cur().Literal)
	}
}

// expectIdentLike consumes an identifier, applying the keyword-as-
// identifier relaxation: the fixed set of keywords may stand in for an
// identifier when context makes that unambiguous (callers only reach here
// where the grammar requires a name, so any keyword token is safe to
// reinterpret literally as that spelling).
func (p *Parser) expectIdentLike() token.Token {
	if p.at(token.IDENT) || isRelaxedKeyword(p.cur().Kind) {
		return p.advance()
	}
	p.fail(p.cur().Pos, "expected identifier, got %s %q", p.cur().Kind, p.cur().Literal)
	return token.Token{}
}

// isRelaxedKeyword reports whether k is one of the keywords the grammar
// accepts as an identifier in parameter/variable-name/identifier-atom
// position (spec.md §4.2 "Keyword-as-identifier relaxation").
func isRelaxedKeyword(k token.Kind) bool {
	switch k {
	case token.LOOP, token.WHILE, token.IF, token.THEN, token.ELSE, token.END,
		token.CLASS, token.VAR, token.METHOD, token.THIS, token.RETURN,
		token.IS, token.EXTENDS, token.TRUE, token.FALSE:
		return true
	}
	return false
}

// terminatesExpr reports whether k is in the fixed termination set that
// ends expression parsing in the absence of an explicit statement
// separator (spec.md §4.2 "Termination set").
func terminatesExpr(k token.Kind) bool {
	switch k {
	case token.LOOP, token.THEN, token.END, token.ELSE, token.CLASS,
		token.WHILE, token.IF, token.RETURN, token.VAR,
		token.RPAREN, token.COMMA, token.RBRACK, token.EOF,
		// Not part of spec.md's termination set, but ';' is a punctuation
		// token the grammar never otherwise consumes; treating it as a
		// terminator too lets an optional statement separator appear
		// without special-casing every statement production.
		token.SEMICOLON:
		return true
	}
	return false
}
