package lexer

import (
	"testing"

	"github.com/cwbudde/ocomp/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenize_AlwaysEndsWithOneEOF(t *testing.T) {
	inputs := []string{"", "class C is end", "var x := 1;", "   \n\t  "}
	for _, in := range inputs {
		toks := Tokenize(in)
		if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("Tokenize(%q): expected trailing EOF, got %v", in, toks)
		}
		for _, tok := range toks[:len(toks)-1] {
			if tok.Kind == token.EOF {
				t.Fatalf("Tokenize(%q): EOF appeared before the end: %v", in, toks)
			}
		}
	}
}

func TestTokenize_ClassSkeleton(t *testing.T) {
	toks := Tokenize(`class C is this() is end method main() is end end`)
	want := []token.Kind{
		token.CLASS, token.IDENT, token.IS, token.THIS, token.LPAREN, token.RPAREN, token.IS, token.END,
		token.METHOD, token.IDENT, token.LPAREN, token.RPAREN, token.IS, token.END,
		token.END, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestTokenize_AssignAndArrow(t *testing.T) {
	toks := Tokenize(`x := 1 => 2`)
	if toks[1].Kind != token.ASSIGN || toks[1].Literal != ":=" {
		t.Fatalf("expected ASSIGN, got %v", toks[1])
	}
	if toks[3].Kind != token.ARROW || toks[3].Literal != "=>" {
		t.Fatalf("expected ARROW, got %v", toks[3])
	}
}

func TestTokenize_IntegerAndReal(t *testing.T) {
	toks := Tokenize(`1 1.5 1.`)
	if toks[0].Kind != token.INTEGER || toks[0].Literal != "1" {
		t.Fatalf("got %v", toks[0])
	}
	if toks[1].Kind != token.REAL || toks[1].Literal != "1.5" {
		t.Fatalf("got %v", toks[1])
	}
	// "1." with no trailing digit is NOT upgraded to REAL (spec: a '.'
	// immediately followed by digits upgrades it).
	if toks[2].Kind != token.INTEGER || toks[2].Literal != "1" {
		t.Fatalf("got %v", toks[2])
	}
	if toks[3].Kind != token.DOT {
		t.Fatalf("got %v", toks[3])
	}
}

func TestTokenize_String(t *testing.T) {
	toks := Tokenize(`"hello" 'world'`)
	if toks[0].Kind != token.STRING || toks[0].Literal != "hello" {
		t.Fatalf("got %v", toks[0])
	}
	if toks[1].Kind != token.STRING || toks[1].Literal != "world" {
		t.Fatalf("got %v", toks[1])
	}
}

func TestTokenize_NegativeNumberPrefix(t *testing.T) {
	toks := Tokenize(`-5`)
	if toks[0].Kind != token.ILLEGAL || toks[0].Literal != "-" {
		t.Fatalf("expected lexer to hand '-' through as Unknown, got %v", toks[0])
	}
	if toks[1].Kind != token.INTEGER || toks[1].Literal != "5" {
		t.Fatalf("got %v", toks[1])
	}
}

func TestTokenize_KeywordsAreNotCaseFolded(t *testing.T) {
	toks := Tokenize(`This`)
	if toks[0].Kind != token.IDENT {
		t.Fatalf("expected This (capitalized) to lex as IDENT, got %s", toks[0].Kind)
	}
}

func TestTokenize_UnicodeColumnsCountRunes(t *testing.T) {
	toks := Tokenize(`var Δ`)
	// v a r space Δ -> Δ is the 5th rune.
	if toks[1].Pos.Column != 5 {
		t.Fatalf("Δ column = %d, want 5", toks[1].Pos.Column)
	}
}

func TestTokenize_LexemesAreSubsequenceOfSource(t *testing.T) {
	src := "class C is method f(): Integer => Integer(1) end end"
	toks := Tokenize(src)
	idx := 0
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		pos := indexFrom(src, tok.Literal, idx)
		if pos < 0 {
			t.Fatalf("lexeme %q not found in source after index %d", tok.Literal, idx)
		}
		idx = pos + len(tok.Literal)
	}
}

func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	rel := indexOf(s[from:], substr)
	if rel < 0 {
		return -1
	}
	return from + rel
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
