package semantic

import "github.com/cwbudde/ocomp/internal/ast"

// builtinSig is one entry in a receiver type's fixed method table: the
// method's arity and, when non-empty, its fixed return type. An empty
// Return means the return type depends on the call (primitive binary ops
// promote Integer/Real; see typeinfer.go).
type builtinSig struct {
	Arity  int
	Return string
}

// builtinMethods is spec.md §4.4's "Built-in method signatures" table,
// keyed by the receiver's erased head type (Integer, Real, Boolean,
// Array, List) and method name.
var builtinMethods = map[string]map[string]builtinSig{
	"Integer": {
		"Plus": {1, ""}, "Minus": {1, ""}, "Mult": {1, ""}, "Div": {1, ""}, "Rem": {1, "Integer"},
		"Less": {1, "Boolean"}, "Greater": {1, "Boolean"}, "LessEqual": {1, "Boolean"}, "GreaterEqual": {1, "Boolean"}, "Equal": {1, "Boolean"},
		"UnaryMinus": {0, "Integer"}, "toReal": {0, "Real"}, "toBoolean": {0, "Boolean"},
	},
	"Real": {
		"Plus": {1, ""}, "Minus": {1, ""}, "Mult": {1, ""}, "Div": {1, ""},
		"Less": {1, "Boolean"}, "Greater": {1, "Boolean"}, "LessEqual": {1, "Boolean"}, "GreaterEqual": {1, "Boolean"}, "Equal": {1, "Boolean"},
		"UnaryMinus": {0, "Real"}, "toInteger": {0, "Integer"},
	},
	"Boolean": {
		"And": {1, "Boolean"}, "Or": {1, "Boolean"}, "Xor": {1, "Boolean"},
		"Not": {0, "Boolean"}, "toInteger": {0, "Integer"},
	},
	"Array": {
		"get": {1, ""}, "set": {2, "void"}, "Length": {0, "Integer"},
	},
	"List": {
		"append": {1, "void"}, "head": {0, ""}, "tail": {0, ""}, "Length": {0, "Integer"}, "get": {1, ""},
	},
}

// lookupBuiltinMethod resolves name against receiverType's fixed table,
// where receiverType may be a bare primitive name or a generic
// instantiation (Array[T]/List[T], matched on its head).
func lookupBuiltinMethod(receiverType, name string) (builtinSig, bool) {
	head, _ := ast.GenericHead(receiverType)
	table, ok := builtinMethods[head]
	if !ok {
		return builtinSig{}, false
	}
	sig, ok := table[name]
	return sig, ok
}

// isBuiltinReceiverType reports whether a value of this type dispatches
// through the fixed builtin-method tables rather than user methods.
func isBuiltinReceiverType(typeName string) bool {
	head, _ := ast.GenericHead(typeName)
	_, ok := builtinMethods[head]
	return ok
}
