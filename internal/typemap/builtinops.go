package typemap

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
)

// BuiltinOp is the (receiver-head, method-name) key the emitter looks up
// to pick a concrete opcode for a primitive/Array/List method call,
// instead of a chain of if/switch per call site (SPEC_FULL.md §4.13,
// generalizing the teacher's dedicated-opcode-per-operation style in
// internal/bytecode/instruction.go).
type BuiltinOp struct {
	Recv string
	Name string
}

// BuiltinOpCodes is the small dispatch table spec.md §9 describes,
// grounded directly on semantic.builtinMethods' method names.
var BuiltinOpCodes = map[BuiltinOp]bytecode.OpCode{
	{"Integer", "Plus"}:         bytecode.OpIntPlus,
	{"Integer", "Minus"}:        bytecode.OpIntMinus,
	{"Integer", "Mult"}:         bytecode.OpIntMult,
	{"Integer", "Div"}:          bytecode.OpIntDiv,
	{"Integer", "Rem"}:          bytecode.OpIntRem,
	{"Integer", "Less"}:         bytecode.OpIntLess,
	{"Integer", "Greater"}:      bytecode.OpIntGreater,
	{"Integer", "LessEqual"}:    bytecode.OpIntLessEqual,
	{"Integer", "GreaterEqual"}: bytecode.OpIntGreaterEqual,
	{"Integer", "Equal"}:        bytecode.OpIntEqual,
	{"Integer", "UnaryMinus"}:   bytecode.OpIntUnaryMinus,
	{"Integer", "toReal"}:       bytecode.OpIntToReal,
	{"Integer", "toBoolean"}:    bytecode.OpIntToBool,

	{"Real", "Plus"}:         bytecode.OpRealPlus,
	{"Real", "Minus"}:        bytecode.OpRealMinus,
	{"Real", "Mult"}:         bytecode.OpRealMult,
	{"Real", "Div"}:          bytecode.OpRealDiv,
	{"Real", "Less"}:         bytecode.OpRealLess,
	{"Real", "Greater"}:      bytecode.OpRealGreater,
	{"Real", "LessEqual"}:    bytecode.OpRealLessEqual,
	{"Real", "GreaterEqual"}: bytecode.OpRealGreaterEqual,
	{"Real", "Equal"}:        bytecode.OpRealEqual,
	{"Real", "UnaryMinus"}:   bytecode.OpRealUnaryMinus,
	{"Real", "toInteger"}:    bytecode.OpRealToInt,

	{"Boolean", "And"}:       bytecode.OpBoolAnd,
	{"Boolean", "Or"}:        bytecode.OpBoolOr,
	{"Boolean", "Xor"}:       bytecode.OpBoolXor,
	{"Boolean", "Not"}:       bytecode.OpBoolNot,
	{"Boolean", "toInteger"}: bytecode.OpBoolToInt,

	{"Array", "get"}:    bytecode.OpArrayGet,
	{"Array", "set"}:    bytecode.OpArraySet,
	{"Array", "Length"}: bytecode.OpArrayLength,

	{"List", "append"}: bytecode.OpListAppend,
	{"List", "head"}:   bytecode.OpListHead,
	{"List", "tail"}:   bytecode.OpListTail,
	{"List", "Length"}: bytecode.OpListLength,
	{"List", "get"}:    bytecode.OpListGet,
}

// LookupBuiltinOp resolves a builtin call's opcode, matching recv on its
// generic head (Array[Integer] -> "Array").
func LookupBuiltinOp(recv, name string) (bytecode.OpCode, bool) {
	head, _ := ast.GenericHead(recv)
	op, ok := BuiltinOpCodes[BuiltinOp{Recv: head, Name: name}]
	return op, ok
}
