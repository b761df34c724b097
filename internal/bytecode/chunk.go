package bytecode

import "fmt"

// LineInfo run-length-encodes instruction-offset -> source-line mappings
// (grounded on the teacher's Chunk.Lines, internal/bytecode/bytecode.go).
type LineInfo struct {
	InstructionOffset int
	Line              int
}

// Chunk is one compiled method/constructor/entry-stub body: its
// instruction stream plus the local constant pool it indexes into.
type Chunk struct {
	Name       string
	Code       []Instruction
	Constants  []Value
	Lines      []LineInfo
	LocalCount int // size of the flat slot table, receiver included
}

func NewChunk(name string) *Chunk {
	return &Chunk{Name: name}
}

// Write appends an instruction with both operands and returns its index.
func (c *Chunk) Write(op OpCode, a byte, b uint16, line int) int {
	return c.append(MakeInstruction(op, a, b), line)
}

// WriteSimple appends a no-operand instruction.
func (c *Chunk) WriteSimple(op OpCode, line int) int {
	return c.append(MakeSimpleInstruction(op), line)
}

func (c *Chunk) append(inst Instruction, line int) int {
	idx := len(c.Code)
	c.Code = append(c.Code, inst)
	if len(c.Lines) == 0 || c.Lines[len(c.Lines)-1].Line != line {
		c.Lines = append(c.Lines, LineInfo{InstructionOffset: idx, Line: line})
	}
	return idx
}

// AddConstant interns value into the constant pool, returning its index.
func (c *Chunk) AddConstant(v Value) int {
	for i, existing := range c.Constants {
		if existing.Equal(v) {
			return i
		}
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// EmitJump writes a placeholder jump, to be fixed up by PatchJump once
// the target offset is known.
func (c *Chunk) EmitJump(op OpCode, line int) int {
	return c.Write(op, 0, 0xFFFF, line)
}

// PatchJump rewrites the jump instruction at jumpIdx so it targets the
// chunk's current end.
func (c *Chunk) PatchJump(jumpIdx int) error {
	offset := len(c.Code) - jumpIdx - 1
	if offset > 32767 || offset < -32768 {
		return fmt.Errorf("jump offset %d out of 16-bit range", offset)
	}
	inst := c.Code[jumpIdx]
	c.Code[jumpIdx] = MakeInstruction(inst.OpCode(), inst.A(), uint16(int16(offset)))
	return nil
}

// GetLine returns the source line for the instruction at idx.
func (c *Chunk) GetLine(idx int) int {
	result := 0
	for _, li := range c.Lines {
		if li.InstructionOffset > idx {
			break
		}
		result = li.Line
	}
	return result
}

// FieldDescriptor is one class field in the emitted module: its storage
// slot index (field order == AllFields() order) and its erased/real type
// pair (spec.md §4.5 "storage erasure").
type FieldDescriptor struct {
	Name        string
	StorageType string
	RealType    string
}

// MethodDescriptor is one compiled method. VSlot is its virtual-dispatch
// slot (spec.md §4.6 "every method is virtual"): a method reusing an
// ancestor's name+parameter-types reuses that ancestor's VSlot (override);
// otherwise it allocates a new one.
type MethodDescriptor struct {
	Name       string
	ParamTypes []string
	ReturnType string
	VSlot      int
	Override   bool
	Chunk      *Chunk
}

// CtorDescriptor is one compiled constructor.
type CtorDescriptor struct {
	ParamTypes []string
	Chunk      *Chunk
}

// ClassDescriptor is one compiled class (spec.md §4.6 "class descriptor").
type ClassDescriptor struct {
	Name    string
	Base    string // "" if none
	Fields  []FieldDescriptor
	Methods []MethodDescriptor
	Ctors   []CtorDescriptor
}

// CtorRef is the resolved call target OpNewObject/OpCallCtor index into,
// by class+constructor position, so the instruction stream never embeds
// a name lookup (spec.md §4.6's overload resolution happens once, at
// emit time). Method calls need no equivalent table: OpCallVirtual's B
// operand is the virtual slot number directly, since dispatch is always
// resolved against the receiver's actual runtime class.
type CtorRef struct {
	ClassIndex int
	CtorIndex  int
}

// Module is the whole compiled program: one descriptor per source class
// (spec.md §6 "Outputs"), the shared constructor reference table the
// instruction stream indexes into, plus the synthetic entry descriptor
// (C8).
type Module struct {
	Classes []*ClassDescriptor
	Ctors   []CtorRef

	EntryClass string
	EntryChunk *Chunk
}

// ClassIndex returns the index of the class named name, or -1.
func (m *Module) ClassIndex(name string) int {
	for i, cd := range m.Classes {
		if cd.Name == name {
			return i
		}
	}
	return -1
}

// InternCtor returns the Ctors-table index for (classIndex, ctorIndex),
// adding a new entry if this pair hasn't been referenced yet.
func (m *Module) InternCtor(classIndex, ctorIndex int) int {
	for i, r := range m.Ctors {
		if r.ClassIndex == classIndex && r.CtorIndex == ctorIndex {
			return i
		}
	}
	m.Ctors = append(m.Ctors, CtorRef{ClassIndex: classIndex, CtorIndex: ctorIndex})
	return len(m.Ctors) - 1
}
