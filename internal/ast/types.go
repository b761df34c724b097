package ast

import "strings"

// CanonicalizeTypeName re-renders a parsed type name into its canonical
// textual form `Name[arg1,arg2]` (commas, no spaces). The parser already
// produces this shape directly; this helper exists for callers that build
// type names programmatically (semantic.InferType, for `New` expressions
// and `List.tail`).
func CanonicalizeTypeName(head string, args ...string) string {
	if len(args) == 0 {
		return head
	}
	return head + "[" + strings.Join(args, ",") + "]"
}

// GenericHead returns the head identifier of a (possibly generic) type
// name and its bracketed argument list, e.g. "Array[Integer]" -> ("Array",
// []string{"Integer"}). Non-generic names return (name, nil).
func GenericHead(typeName string) (head string, args []string) {
	i := strings.IndexByte(typeName, '[')
	if i < 0 || !strings.HasSuffix(typeName, "]") {
		return typeName, nil
	}
	head = typeName[:i]
	inner := typeName[i+1 : len(typeName)-1]
	if inner == "" {
		return head, nil
	}
	return head, strings.Split(inner, ",")
}

// IsBuiltinGenericHead reports whether head is one of the two recognised
// generic heads (Array, List).
func IsBuiltinGenericHead(head string) bool {
	return head == "Array" || head == "List"
}

// IsPrimitiveType reports whether name is one of the four primitive
// wrapper classes.
func IsPrimitiveType(name string) bool {
	switch name {
	case "Integer", "Real", "Boolean", "String":
		return true
	}
	return false
}
