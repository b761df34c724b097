package cmd

import (
	"fmt"
	"strings"

	"github.com/cwbudde/ocomp/internal/ast"
)

// dumpSExpr renders node as an indented S-expression tree -- a debug dump
// of the parser's output, not a pretty-printer (spec.md places
// AST-formatting out of scope, SPEC_FULL.md §4.9).
func dumpSExpr(sb *strings.Builder, node any, depth int) {
	indent := strings.Repeat("  ", depth)

	switch n := node.(type) {
	case *ast.Program:
		fmt.Fprintf(sb, "%s(program\n", indent)
		for _, c := range n.Classes {
			dumpSExpr(sb, c, depth+1)
		}
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.ClassDecl:
		fmt.Fprintf(sb, "%s(class %s", indent, n.Name)
		if n.Base != "" {
			fmt.Fprintf(sb, " extends %s", n.Base)
		}
		fmt.Fprintln(sb)
		for _, f := range n.Fields {
			dumpSExpr(sb, f, depth+1)
		}
		for _, c := range n.Constructors {
			dumpSExpr(sb, c, depth+1)
		}
		for _, m := range n.Methods {
			dumpSExpr(sb, m, depth+1)
		}
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.FieldDecl:
		fmt.Fprintf(sb, "%s(field %s\n", indent, n.Name)
		dumpSExpr(sb, n.Init, depth+1)
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.ConstructorDecl:
		fmt.Fprintf(sb, "%s(ctor %s\n", indent, paramList(n.Params))
		dumpSExpr(sb, n.Body, depth+1)
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.MethodDecl:
		fmt.Fprintf(sb, "%s(method %s %s", indent, n.Name, paramList(n.Params))
		if n.ReturnType != "" {
			fmt.Fprintf(sb, ": %s", n.ReturnType)
		}
		fmt.Fprintln(sb)
		switch n.Kind {
		case ast.BodyBlock:
			dumpSExpr(sb, n.Block, depth+1)
		case ast.BodyArrow:
			dumpSExpr(sb, n.Arrow, depth+1)
		}
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.Block:
		fmt.Fprintf(sb, "%s(block\n", indent)
		for _, s := range n.Body {
			dumpSExpr(sb, s, depth+1)
		}
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.VarDecl:
		fmt.Fprintf(sb, "%s(var %s", indent, n.Name)
		if n.Type != "" {
			fmt.Fprintf(sb, ": %s", n.Type)
		}
		fmt.Fprintln(sb)
		if n.Init != nil {
			dumpSExpr(sb, n.Init, depth+1)
		}
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.Assign:
		target := n.TargetName
		if n.ViaThis {
			target = "this." + target
		}
		fmt.Fprintf(sb, "%s(assign %s\n", indent, target)
		dumpSExpr(sb, n.Value, depth+1)
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.ExprStmt:
		fmt.Fprintf(sb, "%s(expr-stmt\n", indent)
		dumpSExpr(sb, n.Expr, depth+1)
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.While:
		fmt.Fprintf(sb, "%s(while\n", indent)
		dumpSExpr(sb, n.Condition, depth+1)
		dumpSExpr(sb, n.Body, depth+1)
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.If:
		fmt.Fprintf(sb, "%s(if\n", indent)
		dumpSExpr(sb, n.Condition, depth+1)
		dumpSExpr(sb, n.Then, depth+1)
		if n.Else != nil {
			dumpSExpr(sb, n.Else, depth+1)
		}
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.Return:
		if n.Value == nil {
			fmt.Fprintf(sb, "%s(return)\n", indent)
			return
		}
		fmt.Fprintf(sb, "%s(return\n", indent)
		dumpSExpr(sb, n.Value, depth+1)
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.IntLit:
		fmt.Fprintf(sb, "%s(int %d)\n", indent, n.Value)
	case *ast.RealLit:
		fmt.Fprintf(sb, "%s(real %g)\n", indent, n.Value)
	case *ast.BoolLit:
		fmt.Fprintf(sb, "%s(bool %v)\n", indent, n.Value)
	case *ast.StringLit:
		fmt.Fprintf(sb, "%s(string %q)\n", indent, n.Value)
	case *ast.This:
		fmt.Fprintf(sb, "%s(this)\n", indent)
	case *ast.Ident:
		fmt.Fprintf(sb, "%s(ident %s)\n", indent, n.String())

	case *ast.MemberAccess:
		fmt.Fprintf(sb, "%s(member %s\n", indent, n.Member)
		dumpSExpr(sb, n.Target, depth+1)
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.Call:
		fmt.Fprintf(sb, "%s(call\n", indent)
		dumpSExpr(sb, n.Callee, depth+1)
		for _, a := range n.Args {
			dumpSExpr(sb, a, depth+1)
		}
		fmt.Fprintf(sb, "%s)\n", indent)

	case *ast.New:
		fmt.Fprintf(sb, "%s(new %s\n", indent, n.String())
		for _, a := range n.Args {
			dumpSExpr(sb, a, depth+1)
		}
		fmt.Fprintf(sb, "%s)\n", indent)

	default:
		fmt.Fprintf(sb, "%s(%T %v)\n", indent, node, node)
	}
}

func paramList(params []*ast.Parameter) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
