package bytecode_test

import (
	"testing"

	"github.com/cwbudde/ocomp/internal/bytecode"
)

func buildSampleModule() *bytecode.Module {
	ctorChunk := bytecode.NewChunk("A.ctor")
	ctorChunk.Write(bytecode.OpLoadLocal, 0, 0, 1)
	ctorChunk.WriteSimple(bytecode.OpReturn, 1)

	methodChunk := bytecode.NewChunk("A.f")
	idx := methodChunk.AddConstant(bytecode.IntValue(7))
	methodChunk.Write(bytecode.OpLoadConst, 0, uint16(idx), 2)
	methodChunk.Write(bytecode.OpReturn, 1, 0, 2)

	cd := &bytecode.ClassDescriptor{
		Name: "A",
		Fields: []bytecode.FieldDescriptor{
			{Name: "x", StorageType: "Integer", RealType: "Integer"},
		},
		Ctors: []bytecode.CtorDescriptor{{Chunk: ctorChunk}},
		Methods: []bytecode.MethodDescriptor{
			{Name: "f", ReturnType: "Integer", VSlot: 0, Chunk: methodChunk},
		},
	}

	entry := bytecode.NewChunk("<entry>")
	entry.Write(bytecode.OpNewObject, 0, 0, 0)
	entry.WriteSimple(bytecode.OpReturn, 0)

	m := &bytecode.Module{
		Classes:    []*bytecode.ClassDescriptor{cd},
		EntryClass: "A",
		EntryChunk: entry,
	}
	m.InternCtor(0, 0)
	return m
}

func TestSerializeDeserialize_RoundTrip(t *testing.T) {
	want := buildSampleModule()
	data, err := bytecode.Serialize(want)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	got, err := bytecode.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}

	if got.EntryClass != want.EntryClass {
		t.Fatalf("EntryClass = %q, want %q", got.EntryClass, want.EntryClass)
	}
	if len(got.Classes) != 1 || got.Classes[0].Name != "A" {
		t.Fatalf("unexpected classes: %+v", got.Classes)
	}
	gotClass := got.Classes[0]
	if len(gotClass.Fields) != 1 || gotClass.Fields[0].Name != "x" {
		t.Fatalf("unexpected fields: %+v", gotClass.Fields)
	}
	if len(gotClass.Methods) != 1 || gotClass.Methods[0].Name != "f" {
		t.Fatalf("unexpected methods: %+v", gotClass.Methods)
	}
	if len(gotClass.Methods[0].Chunk.Constants) != 1 || gotClass.Methods[0].Chunk.Constants[0].Int != 7 {
		t.Fatalf("unexpected method constants: %+v", gotClass.Methods[0].Chunk.Constants)
	}
	if len(got.Ctors) != 1 || got.Ctors[0].ClassIndex != 0 || got.Ctors[0].CtorIndex != 0 {
		t.Fatalf("unexpected ctor table: %+v", got.Ctors)
	}
	if len(got.EntryChunk.Code) != len(want.EntryChunk.Code) {
		t.Fatalf("entry chunk code length mismatch: got %d want %d", len(got.EntryChunk.Code), len(want.EntryChunk.Code))
	}
}

func TestDeserialize_RejectsBadMagic(t *testing.T) {
	_, err := bytecode.Deserialize([]byte("not a module at all"))
	if err == nil {
		t.Fatalf("expected an error for a corrupt header")
	}
}
