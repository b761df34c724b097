package typemap_test

import (
	"testing"

	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/typemap"
)

func TestLookupBuiltinOp_MatchesOnGenericHead(t *testing.T) {
	op, ok := typemap.LookupBuiltinOp("Array[Integer]", "get")
	if !ok || op != bytecode.OpArrayGet {
		t.Fatalf("Array[Integer].get should resolve to OpArrayGet, got %v %v", op, ok)
	}
	op, ok = typemap.LookupBuiltinOp("List[Real]", "append")
	if !ok || op != bytecode.OpListAppend {
		t.Fatalf("List[Real].append should resolve to OpListAppend, got %v %v", op, ok)
	}
}

func TestLookupBuiltinOp_IntegerAndRealDoNotCollide(t *testing.T) {
	intOp, ok := typemap.LookupBuiltinOp("Integer", "Plus")
	if !ok || intOp != bytecode.OpIntPlus {
		t.Fatalf("Integer.Plus should resolve to OpIntPlus, got %v %v", intOp, ok)
	}
	realOp, ok := typemap.LookupBuiltinOp("Real", "Plus")
	if !ok || realOp != bytecode.OpRealPlus {
		t.Fatalf("Real.Plus should resolve to OpRealPlus, got %v %v", realOp, ok)
	}
	if intOp == realOp {
		t.Fatalf("Integer.Plus and Real.Plus must be distinct opcodes")
	}
}

func TestLookupBuiltinOp_UnknownMethodMisses(t *testing.T) {
	if _, ok := typemap.LookupBuiltinOp("Integer", "nope"); ok {
		t.Fatalf("expected no opcode for an undeclared builtin method")
	}
	if _, ok := typemap.LookupBuiltinOp("Widget", "Plus"); ok {
		t.Fatalf("expected no opcode for a non-builtin receiver type")
	}
}
