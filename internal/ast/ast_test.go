package ast

import "testing"

func TestGenericHead(t *testing.T) {
	cases := []struct {
		in       string
		wantHead string
		wantArgs []string
	}{
		{"Integer", "Integer", nil},
		{"Array[Integer]", "Array", []string{"Integer"}},
		{"List[Array[Integer]]", "List", []string{"Array[Integer]"}},
	}
	for _, c := range cases {
		head, args := GenericHead(c.in)
		if head != c.wantHead {
			t.Errorf("GenericHead(%q) head = %q, want %q", c.in, head, c.wantHead)
		}
		if len(args) != len(c.wantArgs) {
			t.Errorf("GenericHead(%q) args = %v, want %v", c.in, args, c.wantArgs)
			continue
		}
		for i := range args {
			if args[i] != c.wantArgs[i] {
				t.Errorf("GenericHead(%q) args[%d] = %q, want %q", c.in, i, args[i], c.wantArgs[i])
			}
		}
	}
}

func TestCanonicalizeTypeName(t *testing.T) {
	if got := CanonicalizeTypeName("Array", "Integer"); got != "Array[Integer]" {
		t.Errorf("got %q", got)
	}
	if got := CanonicalizeTypeName("List", "A", "B"); got != "List[A,B]" {
		t.Errorf("got %q", got)
	}
	if got := CanonicalizeTypeName("Integer"); got != "Integer" {
		t.Errorf("got %q", got)
	}
}

func TestIsPrimitiveType(t *testing.T) {
	for _, name := range []string{"Integer", "Real", "Boolean", "String"} {
		if !IsPrimitiveType(name) {
			t.Errorf("%q should be primitive", name)
		}
	}
	if IsPrimitiveType("Array[Integer]") {
		t.Error("Array[Integer] should not be primitive")
	}
}

// TestBlockFidelity exercises the documented invariant directly on a
// hand-built Block: Body must be a faithful interleaving of Locals and
// Statements in original order.
func TestBlockFidelity(t *testing.T) {
	v := &VarDecl{Name: "x"}
	ret := &Return{}
	block := &Block{
		Body:       []Statement{v, ret},
		Locals:     []*VarDecl{v},
		Statements: []Statement{ret},
	}
	if len(block.Body) != len(block.Locals)+len(block.Statements) {
		t.Fatalf("Body length %d != Locals+Statements %d", len(block.Body), len(block.Locals)+len(block.Statements))
	}
	if block.Body[0] != Statement(v) || block.Body[1] != Statement(ret) {
		t.Fatalf("Body order does not match source interleaving")
	}
}
