package bytecode_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/ocomp/internal/bytecode"
)

func TestDisassembleModule_RendersClassesAndEntry(t *testing.T) {
	m := buildSampleModule()

	var sb strings.Builder
	bytecode.NewDisassembler(&sb).DisassembleModule(m)
	out := sb.String()

	for _, want := range []string{
		"== class A ==",
		"field x: Integer (storage Integer)",
		"-- constructor([]) --",
		"-- method f([]): Integer [slot 0, virtual] --",
		"== entry (A) ==",
		"NEW_OBJECT",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in disassembly:\n%s", want, out)
		}
	}
}

func TestDisassembleChunk_RendersConstantsAndJumpTargets(t *testing.T) {
	c := bytecode.NewChunk("branchy")
	idx := c.AddConstant(bytecode.IntValue(9))
	c.Write(bytecode.OpLoadConst, 0, uint16(idx), 1)
	jump := c.EmitJump(bytecode.OpJumpIfFalse, 2)
	c.WriteSimple(bytecode.OpLoadTrue, 3)
	if err := c.PatchJump(jump); err != nil {
		t.Fatalf("PatchJump() error = %v", err)
	}

	var sb strings.Builder
	bytecode.NewDisassembler(&sb).DisassembleChunk(c)
	out := sb.String()

	if !strings.Contains(out, "constants:") || !strings.Contains(out, "[0] 9") {
		t.Fatalf("expected constants section listing 9:\n%s", out)
	}
	if !strings.Contains(out, "-> 3") {
		t.Fatalf("expected jump target offset 3 in:\n%s", out)
	}
}

func TestDisassembleChunk_NilIsNoOp(t *testing.T) {
	var sb strings.Builder
	bytecode.NewDisassembler(&sb).DisassembleChunk(nil)
	if sb.String() != "" {
		t.Fatalf("expected no output for a nil chunk, got %q", sb.String())
	}
}
