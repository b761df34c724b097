package emitter_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/emitter"
	"github.com/cwbudde/ocomp/internal/parser"
	"github.com/cwbudde/ocomp/internal/semantic"
)

// mustEmit parses and checks src, then emits it into a disassembled
// string for snapshot-style substring assertions (mirrors
// semantic_test.mustParse's pipeline-building helper).
func mustEmit(t *testing.T, src, start string) (*bytecode.Module, string) {
	t.Helper()
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err != nil {
		t.Fatalf("check error: %v", err)
	}

	em := emitter.New(a.Classes, src, "test.o")
	mod, err := em.Emit(prog, start)
	if err != nil {
		t.Fatalf("emit error: %v", err)
	}

	var sb strings.Builder
	bytecode.NewDisassembler(&sb).DisassembleModule(mod)
	return mod, sb.String()
}

func TestEmit_SimpleMainPrints(t *testing.T) {
	src := `class M is method main() is print(Integer(1)) end end`
	mod, dis := mustEmit(t, src, "M")

	if mod.EntryClass != "M" {
		t.Fatalf("EntryClass = %q, want M", mod.EntryClass)
	}
	if !strings.Contains(dis, "PRINT") {
		t.Fatalf("expected a PRINT instruction in:\n%s", dis)
	}
	if !strings.Contains(dis, "NEW_OBJECT") {
		t.Fatalf("expected entry synthesis to construct M:\n%s", dis)
	}
}

func TestEmit_IntegerArithmeticUsesDedicatedOpcodes(t *testing.T) {
	src := `class M is method main() is var x: Integer := Integer(1).Plus(Integer(2)) print(x) end end`
	_, dis := mustEmit(t, src, "M")
	if !strings.Contains(dis, "INT_PLUS") {
		t.Fatalf("expected INT_PLUS in:\n%s", dis)
	}
}

func TestEmit_FieldDefaultsFollowTableD(t *testing.T) {
	src := `class C is
var n: Integer
var r: Real
var b: Boolean
var s: String
method main() is end
end
class M is method main() is var c: C := C() end end`
	_, dis := mustEmit(t, src, "M")
	if !strings.Contains(dis, "LOAD_CONST") {
		t.Fatalf("expected Integer/Real field defaults to load constants in:\n%s", dis)
	}
	if !strings.Contains(dis, "LOAD_FALSE") {
		t.Fatalf("expected Boolean field default LOAD_FALSE in:\n%s", dis)
	}
	if !strings.Contains(dis, "LOAD_NULL") {
		t.Fatalf("expected String field default LOAD_NULL in:\n%s", dis)
	}
}

func TestEmit_ExplicitZeroArgFieldConstructionIsNotCollapsedToDefault(t *testing.T) {
	// Box() here is a real, user-written zero-arg constructor call with a
	// type matching the field's declared type -- structurally identical
	// to the parser's synthetic `var b: Box` placeholder, but it must
	// still construct a Box rather than collapse to Table D's LOAD_NULL.
	src := `class Box is var tag: Integer this() is tag := Integer(9) end end
class C is var b: Box := Box() method main() is end end
class M is method main() is var c: C := C() end end`
	_, dis := mustEmit(t, src, "M")
	start := strings.Index(dis, "== class C ==")
	end := strings.Index(dis, "== class M ==")
	if start < 0 || end < 0 || end < start {
		t.Fatalf("expected both class C and class M sections in disassembly:\n%s", dis)
	}
	ctorSection := dis[start:end]
	if !strings.Contains(ctorSection, "NEW_OBJECT") {
		t.Fatalf("expected explicit Box() field init to emit NEW_OBJECT, got LOAD_NULL collapse:\n%s", ctorSection)
	}
	if strings.Contains(ctorSection, "LOAD_NULL") {
		t.Fatalf("explicit Box() field init should not collapse to Table D's LOAD_NULL default:\n%s", ctorSection)
	}
}

func TestEmit_OverrideSharesVirtualSlot(t *testing.T) {
	src := `class A is method f(): Integer => Integer(1) end
class B extends A is method f(): Integer => Integer(2) end
class M is method main() is var a: A := B() print(a.f()) end end`
	mod, _ := mustEmit(t, src, "M")

	var aSlot, bSlot int = -1, -2
	for _, cd := range mod.Classes {
		for _, m := range cd.Methods {
			if cd.Name == "A" && m.Name == "f" {
				aSlot = m.VSlot
			}
			if cd.Name == "B" && m.Name == "f" {
				bSlot = m.VSlot
				if !m.Override {
					t.Fatalf("B.f should be marked Override")
				}
			}
		}
	}
	if aSlot != bSlot {
		t.Fatalf("A.f slot %d != B.f slot %d, override must share a virtual slot", aSlot, bSlot)
	}
}

func TestEmit_ConstructorCallsBaseBeforeOwnFields(t *testing.T) {
	src := `class A is var x: Integer method getX(): Integer => x end
class B extends A is var y: Integer end
class M is method main() is var b: B := B() end end`
	mod, _ := mustEmit(t, src, "M")

	var bd *bytecode.ClassDescriptor
	for _, cd := range mod.Classes {
		if cd.Name == "B" {
			bd = cd
		}
	}
	if bd == nil {
		t.Fatalf("class B not found in module")
	}
	if len(bd.Ctors) != 1 {
		t.Fatalf("expected one synthesised default constructor for B, got %d", len(bd.Ctors))
	}
	chunk := bd.Ctors[0].Chunk
	sawCallCtor, sawStoreField := false, false
	for _, inst := range chunk.Code {
		switch inst.OpCode() {
		case bytecode.OpCallCtor:
			sawCallCtor = true
			if sawStoreField {
				t.Fatalf("OpCallCtor must precede own-field initialisation")
			}
		case bytecode.OpStoreField:
			sawStoreField = true
		}
	}
	if !sawCallCtor {
		t.Fatalf("expected B's default constructor to call A's constructor")
	}
}

func TestEmit_ArrayGetSetUseDedicatedOpcodes(t *testing.T) {
	src := `class M is method main() is
var xs: Array[Integer] := Array[Integer](3)
xs.set(Integer(0), Integer(7))
print(xs.get(Integer(0)))
end end`
	_, dis := mustEmit(t, src, "M")
	for _, want := range []string{"ARRAY_NEW", "ARRAY_SET", "ARRAY_GET"} {
		if !strings.Contains(dis, want) {
			t.Fatalf("expected %s in:\n%s", want, dis)
		}
	}
}

func TestEmit_PrimitiveElementArrayAndListBoxAtAccessPoints(t *testing.T) {
	src := `class M is method main() is
var xs: Array[Integer] := Array[Integer](3)
xs.set(Integer(0), Integer(7))
print(xs.get(Integer(0)))
var ys: List[Integer] := List[Integer]()
ys.append(Integer(1))
print(ys.get(Integer(0)))
print(ys.head)
end end`
	_, dis := mustEmit(t, src, "M")
	if !strings.Contains(dis, "UNBOX") {
		t.Fatalf("expected UNBOX in:\n%s", dis)
	}
	// "BOX" alone (not as part of "UNBOX") confirms a standalone box site.
	if strings.Count(dis, "BOX") <= strings.Count(dis, "UNBOX") {
		t.Fatalf("expected a standalone BOX distinct from UNBOX in:\n%s", dis)
	}
}

func TestEmit_NonPrimitiveElementContainersDoNotBox(t *testing.T) {
	src := `class Widget is method main() is end end
class M is method main() is
var xs: Array[Widget] := Array[Widget](1)
xs.set(Integer(0), Widget())
print(xs.get(Integer(0)))
end end`
	_, dis := mustEmit(t, src, "M")
	if strings.Contains(dis, "BOX") || strings.Contains(dis, "UNBOX") {
		t.Fatalf("object-element container should not box/unbox:\n%s", dis)
	}
}

func TestEmit_EntrySynthesisFallsBackToCheapestConstructor(t *testing.T) {
	src := `class M is var n: Integer this(n: Integer) is this.n := n end method main() is print(n) end end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err != nil {
		t.Fatalf("check error: %v", err)
	}
	em := emitter.New(a.Classes, src, "test.o")
	mod, err := em.Emit(prog, "M")
	if err != nil {
		t.Fatalf("emit error: %v", err)
	}
	found := false
	for _, in := range mod.EntryChunk.Code {
		if in.OpCode() == bytecode.OpNewObject {
			found = true
			if in.A() != 1 {
				t.Fatalf("expected NEW_OBJECT argc=1 for M's sole one-arg constructor, got argc=%d", in.A())
			}
		}
	}
	if !found {
		t.Fatalf("expected a NEW_OBJECT instruction in entry chunk")
	}
}

func TestEmit_NoSuitableMainWarns(t *testing.T) {
	src := `class M is method run() is end end`
	prog, err := parser.New(src, "test.o").ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := semantic.New(src, "test.o")
	if err := a.Check(prog); err != nil {
		t.Fatalf("check error: %v", err)
	}
	em := emitter.New(a.Classes, src, "test.o")
	if _, err := em.Emit(prog, "M"); err != nil {
		t.Fatalf("emit error: %v", err)
	}
	if len(em.Warnings) == 0 {
		t.Fatalf("expected a warning when the start class has no suitable main")
	}
}

func TestEmit_WhileLoopJumpsBackToCondition(t *testing.T) {
	src := `class M is method main() is
var i: Integer := Integer(0)
while i.Less(Integer(3)) loop
  i := i.Plus(Integer(1))
end
end end`
	mod, _ := mustEmit(t, src, "M")
	chunk := mod.EntryChunk
	_ = chunk

	var md *bytecode.ClassDescriptor
	for _, cd := range mod.Classes {
		if cd.Name == "M" {
			md = cd
		}
	}
	var mainChunk *bytecode.Chunk
	for _, m := range md.Methods {
		if m.Name == "main" {
			mainChunk = m.Chunk
		}
	}
	if mainChunk == nil {
		t.Fatalf("main method chunk not found")
	}
	sawBackJump := false
	for i, inst := range mainChunk.Code {
		if inst.OpCode() == bytecode.OpJump && int(inst.SignedB())+i+1 < i {
			sawBackJump = true
		}
	}
	if !sawBackJump {
		t.Fatalf("expected a backward OpJump closing the while loop")
	}
}

func TestEmit_ListConstructionFromExistingListShortCircuits(t *testing.T) {
	src := `class M is method main() is
var a: List[Integer] := List[Integer]()
var b: List[Integer] := List[Integer](a)
end end`
	_, dis := mustEmit(t, src, "M")
	if strings.Count(dis, "LIST_NEW") != 1 {
		t.Fatalf("expected exactly one LIST_NEW (b's construction short-circuits to a), got:\n%s", dis)
	}
}
