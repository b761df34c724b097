// Package bytecode implements the stack-machine IL (spec.md §4.6, "C7")
// that the emitter lowers a checked AST onto: a flat 32-bit instruction
// encoding, a per-class/per-method chunk container, a disassembler, and a
// binary module serializer (spec.md §4.12, "C12").
package bytecode

// OpCode is one stack-machine instruction. Unlike a general-purpose VM,
// O has no infix operators at the bytecode level either: every primitive
// operator is still a dedicated opcode (grounded on the teacher's
// dedicated-opcode-per-operation style in internal/bytecode/instruction.go),
// but the set is driven entirely by spec.md §4.4's builtin method tables
// rather than a language's expression-operator grammar.
type OpCode byte

const (
	// ---- constants, locals, fields ----

	// OpLoadConst pushes constant pool entry B.
	// Stack: [] -> [value]
	OpLoadConst OpCode = iota
	// OpLoadTrue / OpLoadFalse push a Boolean literal directly.
	OpLoadTrue
	OpLoadFalse
	// OpLoadNull pushes the null reference (Table D default for String/
	// Array/List/user-class fields with no initialiser).
	OpLoadNull

	// OpLoadLocal / OpStoreLocal address the flat slot table a
	// typemap.BuildContext allocates for one method/constructor body.
	// Slot 0 is always the receiver.
	OpLoadLocal
	OpStoreLocal

	// OpLoadField / OpStoreField operate on the object already on the
	// stack (the constructor protocol loads the receiver first).
	// Stack: [obj] -> [value]            (load)
	// Stack: [obj, value] -> []          (store)
	OpLoadField
	OpStoreField

	// ---- stack shuffling ----

	OpPop
	OpDup

	// ---- control flow ----

	// OpJump unconditionally jumps by the signed offset in B.
	OpJump
	// OpJumpIfFalse pops a Boolean and jumps by the signed offset in B
	// when it is false.
	OpJumpIfFalse
	// OpReturn returns from the current method/constructor. A is 1 if a
	// value was pushed beforehand, 0 for a bare return.
	OpReturn

	// ---- calls ----

	// OpNewObject constructs a user-class instance. A is the argument
	// count already on the stack; B indexes Module.Ctors.
	// Stack: [arg1..argN] -> [object]
	OpNewObject
	// OpCallVirtual dispatches through the receiver's actual class at
	// the virtual slot in B (spec.md §4.6 "every method is virtual").
	// Stack: [obj, arg1..argN] -> [result?]
	OpCallVirtual
	// OpCallCtor runs a constructor body against an already-allocated
	// receiver (the constructor protocol's step 2, "call base-class
	// constructor"); unlike OpNewObject it does not allocate. A is the
	// argument count, B indexes Module.Ctors.
	// Stack: [obj, arg1..argN] -> []
	OpCallCtor
	// OpPrint implements the `print` intrinsic: pop one value, write it
	// to the output sink, push nothing.
	OpPrint

	// ---- primitive conversions (New(T) value-coercions, spec.md §4.6) ----

	OpIntToReal
	OpRealToInt
	OpIntToBool
	OpBoolToInt

	// ---- Integer builtin methods (semantic.builtinMethods["Integer"]) ----

	OpIntPlus
	OpIntMinus
	OpIntMult
	OpIntDiv
	OpIntRem
	OpIntLess
	OpIntGreater
	OpIntLessEqual
	OpIntGreaterEqual
	OpIntEqual
	OpIntUnaryMinus

	// ---- Real builtin methods (semantic.builtinMethods["Real"]) ----

	OpRealPlus
	OpRealMinus
	OpRealMult
	OpRealDiv
	OpRealLess
	OpRealGreater
	OpRealLessEqual
	OpRealGreaterEqual
	OpRealEqual
	OpRealUnaryMinus

	// ---- Boolean builtin methods (semantic.builtinMethods["Boolean"]) ----

	OpBoolAnd
	OpBoolOr
	OpBoolXor
	OpBoolNot

	// ---- Array builtin methods (semantic.builtinMethods["Array"]) ----

	// OpArrayNew allocates an opaque-ref array; A is unused, B indexes
	// the constant pool for the element type name (recorded for
	// box/unbox decisions at get/set sites).
	// Stack: [size] -> [array]
	OpArrayNew
	OpArrayGet
	OpArraySet
	OpArrayLength

	// ---- List builtin methods (semantic.builtinMethods["List"]) ----

	// OpListNew allocates an empty list; B indexes the constant pool for
	// the element type name, same as OpArrayNew.
	// Stack: [] -> [list]
	OpListNew
	OpListAppend
	OpListHead
	OpListTail
	OpListLength
	OpListGet

	// ---- boxing (spec.md §4.5/§9 "Polymorphic containers") ----

	// OpBox wraps the primitive value on top of the stack into a boxed
	// reference, emitted at the single point of store into a tracked
	// primitive-element Array[T]/List[T] (set/append).
	// Stack: [value] -> [boxed]
	OpBox
	// OpUnbox unwraps a boxed reference back to its primitive value,
	// emitted at the single point of load from a tracked
	// primitive-element Array[T]/List[T] (get/head).
	// Stack: [boxed] -> [value]
	OpUnbox

	opCodeCount
)

// opCodeNames mirrors the teacher's OpCodeNames debug table
// (internal/bytecode/instruction.go), used by the disassembler.
var opCodeNames = [...]string{
	OpLoadConst:        "LOAD_CONST",
	OpLoadTrue:         "LOAD_TRUE",
	OpLoadFalse:        "LOAD_FALSE",
	OpLoadNull:         "LOAD_NULL",
	OpLoadLocal:        "LOAD_LOCAL",
	OpStoreLocal:       "STORE_LOCAL",
	OpLoadField:        "LOAD_FIELD",
	OpStoreField:       "STORE_FIELD",
	OpPop:              "POP",
	OpDup:              "DUP",
	OpJump:             "JUMP",
	OpJumpIfFalse:      "JUMP_IF_FALSE",
	OpReturn:           "RETURN",
	OpNewObject:        "NEW_OBJECT",
	OpCallVirtual:      "CALL_VIRTUAL",
	OpCallCtor:         "CALL_CTOR",
	OpPrint:            "PRINT",
	OpIntToReal:        "INT_TO_REAL",
	OpRealToInt:        "REAL_TO_INT",
	OpIntToBool:        "INT_TO_BOOL",
	OpBoolToInt:        "BOOL_TO_INT",
	OpIntPlus:          "INT_PLUS",
	OpIntMinus:         "INT_MINUS",
	OpIntMult:          "INT_MULT",
	OpIntDiv:           "INT_DIV",
	OpIntRem:           "INT_REM",
	OpIntLess:          "INT_LESS",
	OpIntGreater:       "INT_GREATER",
	OpIntLessEqual:     "INT_LESS_EQUAL",
	OpIntGreaterEqual:  "INT_GREATER_EQUAL",
	OpIntEqual:         "INT_EQUAL",
	OpIntUnaryMinus:    "INT_UNARY_MINUS",
	OpRealPlus:         "REAL_PLUS",
	OpRealMinus:        "REAL_MINUS",
	OpRealMult:         "REAL_MULT",
	OpRealDiv:          "REAL_DIV",
	OpRealLess:         "REAL_LESS",
	OpRealGreater:      "REAL_GREATER",
	OpRealLessEqual:    "REAL_LESS_EQUAL",
	OpRealGreaterEqual: "REAL_GREATER_EQUAL",
	OpRealEqual:        "REAL_EQUAL",
	OpRealUnaryMinus:   "REAL_UNARY_MINUS",
	OpBoolAnd:          "BOOL_AND",
	OpBoolOr:           "BOOL_OR",
	OpBoolXor:          "BOOL_XOR",
	OpBoolNot:          "BOOL_NOT",
	OpArrayNew:         "ARRAY_NEW",
	OpArrayGet:         "ARRAY_GET",
	OpArraySet:         "ARRAY_SET",
	OpArrayLength:      "ARRAY_LENGTH",
	OpListNew:          "LIST_NEW",
	OpListAppend:       "LIST_APPEND",
	OpListHead:         "LIST_HEAD",
	OpListTail:         "LIST_TAIL",
	OpListLength:       "LIST_LENGTH",
	OpListGet:          "LIST_GET",
	OpBox:              "BOX",
	OpUnbox:            "UNBOX",
}

func (op OpCode) String() string {
	if int(op) < len(opCodeNames) && opCodeNames[op] != "" {
		return opCodeNames[op]
	}
	return "UNKNOWN"
}
