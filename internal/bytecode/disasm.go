package bytecode

import (
	"fmt"
	"io"
)

// Disassembler renders a Module or a single Chunk as human-readable
// text (grounded on the teacher's internal/bytecode/disasm.go). Its
// output doubles as the stable go-snaps snapshot format for C7 tests
// (SPEC_FULL.md §8 "Disassembly is a stable snapshot").
type Disassembler struct {
	w io.Writer
}

func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// DisassembleModule renders every class descriptor in source order,
// followed by the synthetic entry chunk.
func (d *Disassembler) DisassembleModule(m *Module) {
	for _, cd := range m.Classes {
		d.disassembleClass(cd)
	}
	if m.EntryChunk != nil {
		fmt.Fprintf(d.w, "== entry (%s) ==\n", m.EntryClass)
		d.DisassembleChunk(m.EntryChunk)
	}
}

func (d *Disassembler) disassembleClass(cd *ClassDescriptor) {
	fmt.Fprintf(d.w, "== class %s", cd.Name)
	if cd.Base != "" {
		fmt.Fprintf(d.w, " extends %s", cd.Base)
	}
	fmt.Fprintf(d.w, " ==\n")
	for _, f := range cd.Fields {
		fmt.Fprintf(d.w, "  field %s: %s (storage %s)\n", f.Name, f.RealType, f.StorageType)
	}
	for _, c := range cd.Ctors {
		fmt.Fprintf(d.w, "-- constructor(%v) --\n", c.ParamTypes)
		d.DisassembleChunk(c.Chunk)
	}
	for _, mt := range cd.Methods {
		tag := "virtual"
		if mt.Override {
			tag = "override"
		}
		fmt.Fprintf(d.w, "-- method %s(%v): %s [slot %d, %s] --\n", mt.Name, mt.ParamTypes, mt.ReturnType, mt.VSlot, tag)
		d.DisassembleChunk(mt.Chunk)
	}
}

// DisassembleChunk prints every instruction of chunk, one per line.
func (d *Disassembler) DisassembleChunk(chunk *Chunk) {
	if chunk == nil {
		return
	}
	if len(chunk.Constants) > 0 {
		fmt.Fprintf(d.w, "  constants:\n")
		for i, v := range chunk.Constants {
			fmt.Fprintf(d.w, "    [%d] %s\n", i, v.String())
		}
	}
	for offset := range chunk.Code {
		d.disassembleInstruction(chunk, offset)
	}
}

func (d *Disassembler) disassembleInstruction(chunk *Chunk, offset int) {
	inst := chunk.Code[offset]
	op := inst.OpCode()
	line := chunk.GetLine(offset)
	fmt.Fprintf(d.w, "  %04d (line %d) %-18s", offset, line, op.String())

	switch op {
	case OpLoadConst:
		fmt.Fprintf(d.w, " const=%d", inst.B())
	case OpLoadLocal, OpStoreLocal:
		fmt.Fprintf(d.w, " slot=%d", inst.B())
	case OpLoadField, OpStoreField:
		fmt.Fprintf(d.w, " field=%d", inst.B())
	case OpJump, OpJumpIfFalse:
		fmt.Fprintf(d.w, " -> %d", offset+1+int(inst.SignedB()))
	case OpReturn:
		if inst.A() != 0 {
			fmt.Fprintf(d.w, " hasValue")
		}
	case OpNewObject:
		fmt.Fprintf(d.w, " argc=%d ctor=%d", inst.A(), inst.B())
	case OpCallVirtual, OpCallCtor:
		fmt.Fprintf(d.w, " argc=%d target=%d", inst.A(), inst.B())
	case OpArrayNew, OpListNew:
		fmt.Fprintf(d.w, " elemType=const[%d]", inst.B())
	}
	fmt.Fprintln(d.w)
}
