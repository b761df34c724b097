package driver_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/ocomp/internal/driver"
	"github.com/cwbudde/ocomp/internal/ocerrors"
)

func TestCheck_RejectsSyntaxError(t *testing.T) {
	_, err := driver.Check(`class M is method main() is print(1 end end`, "bad.o")
	if err == nil {
		t.Fatalf("expected a syntax error")
	}
	if _, ok := err.(*ocerrors.Diagnostic); !ok {
		t.Fatalf("expected *ocerrors.Diagnostic, got %T", err)
	}
}

func TestCheck_ReportsUnusedVariableWarning(t *testing.T) {
	src := `class M is method main() is var x: Integer := Integer(1) end end`
	result, err := driver.Check(src, "warn.o")
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	found := false
	for _, w := range result.Analyzer.Warnings {
		if strings.Contains(w.Message, "unused variable") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unused-variable warning, got %v", result.Analyzer.Warnings)
	}
}

func TestCompile_ProducesEntryClassModule(t *testing.T) {
	src := `class M is method main() is print(Integer(1)) end end`
	result, err := driver.Compile(src, "ok.o", driver.CompileOptions{})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if result.Module.EntryClass != "M" {
		t.Fatalf("EntryClass = %q, want M", result.Module.EntryClass)
	}
}

func TestCompile_NoOptimizeSkipsOptimiseLog(t *testing.T) {
	src := `class M is
method main() is
var x: Integer := Integer(1)
print(Integer(2))
end
end`
	result, err := driver.Compile(src, "noopt.o", driver.CompileOptions{NoOptimize: true})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if len(result.OptimiseLog) != 0 {
		t.Fatalf("expected no optimise log entries with NoOptimize, got %v", result.OptimiseLog)
	}
}

func TestCompile_StartClassSelectsNamedEntry(t *testing.T) {
	src := `class A is method main() is print(Integer(1)) end end
class B is method main() is print(Integer(2)) end end`
	result, err := driver.Compile(src, "multi.o", driver.CompileOptions{StartClass: "B"})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if result.Module.EntryClass != "B" {
		t.Fatalf("EntryClass = %q, want B", result.Module.EntryClass)
	}
}

func TestCompile_SurvivesOptimiseFieldRemoval(t *testing.T) {
	// Optimise drops unused fields from the AST; Compile must re-check
	// against the rewritten tree before emitting (see pipeline.go's
	// re-Check-after-Optimise comment) so the emitter never consults a
	// stale ClassInfo.OwnFields built from the pre-optimise class body.
	src := `class C is
var unused: Integer
method main() is end
end
class M is method main() is var c: C := C() end end`
	result, err := driver.Compile(src, "optfield.o", driver.CompileOptions{})
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	if result.Module.EntryClass != "M" {
		t.Fatalf("EntryClass = %q, want M", result.Module.EntryClass)
	}
}
