package bytecode

import "fmt"

// ValueType tags a constant-pool entry. Grounded on the teacher's
// internal/bytecode.Value tagged-union (bytecode.go), trimmed to the
// handful of shapes O's constant pool actually needs: object/array/list
// instances never live in the constant pool, only their element-type
// name strings do (see OpArrayNew/OpListNew).
type ValueType byte

const (
	ValueNil ValueType = iota
	ValueBool
	ValueInt
	ValueReal
	ValueString
)

var valueTypeNames = [...]string{
	ValueNil:    "nil",
	ValueBool:   "bool",
	ValueInt:    "int",
	ValueReal:   "real",
	ValueString: "string",
}

func (vt ValueType) String() string {
	if int(vt) < len(valueTypeNames) {
		return valueTypeNames[vt]
	}
	return "unknown"
}

// Value is one constant-pool entry.
type Value struct {
	Type ValueType
	Int  int64
	Real float64
	Str  string
}

func IntValue(i int64) Value    { return Value{Type: ValueInt, Int: i} }
func RealValue(f float64) Value { return Value{Type: ValueReal, Real: f} }
func StringValue(s string) Value {
	return Value{Type: ValueString, Str: s}
}

func (v Value) String() string {
	switch v.Type {
	case ValueInt:
		return fmt.Sprintf("%d", v.Int)
	case ValueReal:
		return fmt.Sprintf("%g", v.Real)
	case ValueString:
		return fmt.Sprintf("%q", v.Str)
	default:
		return "nil"
	}
}

func (v Value) Equal(o Value) bool {
	if v.Type != o.Type {
		return false
	}
	switch v.Type {
	case ValueInt:
		return v.Int == o.Int
	case ValueReal:
		return v.Real == o.Real
	case ValueString:
		return v.Str == o.Str
	default:
		return true
	}
}
