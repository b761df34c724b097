package semantic_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/parser"
	"github.com/cwbudde/ocomp/internal/semantic"
)

func checkAndOptimise(t *testing.T, src string) (*ast.Program, []string) {
	t.Helper()
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err != nil {
		t.Fatalf("check error: %v", err)
	}
	log := semantic.Optimise(prog)
	return prog, log
}

// Seed scenario 4: `if Boolean(true) then ... else ... end` collapses to
// just the then-branch's first statement.
func TestOptimise_CollapsesIfTrue(t *testing.T) {
	src := `class M is method main() is
if Boolean(true) then print(Integer(1)) else print(Integer(2)) end
end end`
	prog, log := checkAndOptimise(t, src)

	main := prog.Classes[0].Methods[0]
	if len(main.Block.Body) != 1 {
		t.Fatalf("expected the if to collapse to a single statement, got %d", len(main.Block.Body))
	}
	if _, ok := main.Block.Body[0].(*ast.ExprStmt); !ok {
		t.Fatalf("expected the surviving statement to be the then-branch's print call, got %T", main.Block.Body[0])
	}
	if !logMentions(log, "if(true)") {
		t.Fatalf("expected the optimiser log to mention if(true), got %v", log)
	}
}

// Seed scenario 5: an unused field is dropped with a log entry.
func TestOptimise_DropsUnusedField(t *testing.T) {
	src := `class M is var z: Integer method main() is return end end`
	prog, log := checkAndOptimise(t, src)

	if len(prog.Classes[0].Fields) != 0 {
		t.Fatalf("expected field z to be removed, got %d fields remaining", len(prog.Classes[0].Fields))
	}
	if !logMentions(log, `"z"`) {
		t.Fatalf("expected the optimiser log to mention the removed field, got %v", log)
	}
}

func TestOptimise_TrimsStatementsAfterReturn(t *testing.T) {
	src := `class M is method main() is
var x: Integer := Integer(1)
print(x)
return
print(x)
end end`
	prog, _ := checkAndOptimise(t, src)

	main := prog.Classes[0].Methods[0]
	for i, stmt := range main.Block.Body {
		if _, ok := stmt.(*ast.Return); ok && i != len(main.Block.Body)-1 {
			t.Fatalf("a statement follows Return at index %d", i)
		}
	}
}

func TestOptimise_DropsUnusedLocal(t *testing.T) {
	src := `class M is method main() is
var unused: Integer := Integer(1)
print(Integer(2))
end end`
	prog, log := checkAndOptimise(t, src)

	main := prog.Classes[0].Methods[0]
	for _, stmt := range main.Block.Body {
		if vd, ok := stmt.(*ast.VarDecl); ok && vd.Name == "unused" {
			t.Fatalf("expected local %q to be dropped", vd.Name)
		}
	}
	if !logMentions(log, `"unused"`) {
		t.Fatalf("expected the optimiser log to mention the removed local, got %v", log)
	}
}

func TestOptimise_RemovesWhileFalse(t *testing.T) {
	src := `class M is method main() is
while Boolean(false) loop print(Integer(1)) end
print(Integer(2))
end end`
	prog, log := checkAndOptimise(t, src)

	main := prog.Classes[0].Methods[0]
	if len(main.Block.Body) != 1 {
		t.Fatalf("expected while(false) to be removed, got %d statements", len(main.Block.Body))
	}
	if !logMentions(log, "while(false)") {
		t.Fatalf("expected the optimiser log to mention while(false), got %v", log)
	}
}

func logMentions(log []string, substr string) bool {
	for _, l := range log {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}
