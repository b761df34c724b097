package parser_test

import (
	"testing"

	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/parser"
)

// TestParseThisAssign_AcceptsRelaxedKeywordFieldName exercises the
// `this.name := value` branch of parseAssignOrExprStmt with a field name
// that is a relaxed keyword, mirroring expectIdentLike's own tolerance
// for keyword-shaped identifiers elsewhere in the grammar.
func TestParseThisAssign_AcceptsRelaxedKeywordFieldName(t *testing.T) {
	src := `class C is
var loop: Integer
method reset() is this.loop := Integer(0) end
end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(prog.Classes) != 1 {
		t.Fatalf("expected one class, got %d", len(prog.Classes))
	}
	md := prog.Classes[0].Methods[0]
	if len(md.Block.Statements) != 1 {
		t.Fatalf("expected one statement in reset(), got %d", len(md.Block.Statements))
	}
	assign, ok := md.Block.Statements[0].(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", md.Block.Statements[0])
	}
	if !assign.ViaThis || assign.TargetName != "loop" {
		t.Fatalf("expected this.loop assignment, got ViaThis=%v TargetName=%q", assign.ViaThis, assign.TargetName)
	}
}
