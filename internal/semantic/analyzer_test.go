package semantic_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/ocomp/internal/parser"
	"github.com/cwbudde/ocomp/internal/semantic"
)

func mustParse(t *testing.T, src string) *semantic.Analyzer {
	t.Helper()
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err != nil {
		t.Fatalf("check error: %v", err)
	}
	return a
}

func TestCheck_VirtualDispatchOverride(t *testing.T) {
	src := `class A is method f(): Integer => Integer(1) end
class B extends A is method f(): Integer => Integer(2) end
class M is method main() is var a: A := B() print(a.f()) end end`
	mustParse(t, src)
}

func TestCheck_ArrayGetSet(t *testing.T) {
	src := `class M is method main() is
var xs: Array[Integer] := Array[Integer](3)
xs.set(Integer(0), Integer(7))
print(xs.get(Integer(0)))
end end`
	mustParse(t, src)
}

func TestCheck_MissingReturnValueIsError(t *testing.T) {
	src := `class M is method f(): Integer is return end end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	err = a.Check(prog)
	if err == nil {
		t.Fatalf("expected a semantic error for a typed method with a bare return")
	}
	if !strings.Contains(err.Error(), "must return a value") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheck_ReturnFromTypelessMethodWarns(t *testing.T) {
	src := `class M is method f() is return Integer(1) end end`
	a := mustParse(t, src)
	found := false
	for _, w := range a.Warnings {
		if strings.Contains(w.Message, "no declared return type") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning about returning a value from a type-less method, got %v", a.Warnings)
	}
}

func TestCheck_NonBooleanConditionIsError(t *testing.T) {
	src := `class M is method main() is if Integer(1) then print(Integer(1)) end end end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err == nil {
		t.Fatalf("expected a semantic error for a non-Boolean if condition")
	}
}

func TestCheck_UndeclaredIdentifierIsError(t *testing.T) {
	src := `class M is method main() is print(nope) end end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err == nil {
		t.Fatalf("expected a semantic error for an undeclared identifier")
	}
}

func TestCheck_CyclicInheritanceIsError(t *testing.T) {
	src := `class A extends B is end class B extends A is end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err == nil {
		t.Fatalf("expected a semantic error for cyclic inheritance")
	}
}

func TestCheck_WrongBuiltinArityIsError(t *testing.T) {
	src := `class M is method main() is print(Integer(1).Plus(Integer(2), Integer(3))) end end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err == nil {
		t.Fatalf("expected a semantic error for wrong builtin arity")
	}
}

func TestCheck_UnknownTypeIsError(t *testing.T) {
	src := `class M is method f(x: Nonexistent) is end end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err == nil {
		t.Fatalf("expected a semantic error for an unknown parameter type")
	}
}

func TestCheck_ArrayIndexMustBeInteger(t *testing.T) {
	src := `class M is method main() is
var xs: Array[Integer] := Array[Integer](3)
xs.set(Boolean(true), Integer(7))
end end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err == nil {
		t.Fatalf("expected a semantic error for a non-Integer array index")
	}
}
