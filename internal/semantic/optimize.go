package semantic

import (
	"fmt"

	"github.com/cwbudde/ocomp/internal/ast"
)

// Optimise runs the mutating optimise sub-pass of spec.md §4.4. It must
// only ever be called after Check has succeeded: it assumes every
// ast.VarDecl.Used has already been filled in by the check pass, and it
// never fails — any violation would have already been a check-pass error.
// It returns one log line per rewrite applied, in application order, for
// the driver to report (spec.md §4.4 "The optimiser must log each
// rewrite").
func Optimise(prog *ast.Program) []string {
	used := collectUsedNames(prog)

	var log []string
	for _, cd := range prog.Classes {
		cd.Fields, log = dropUnusedFields(cd, used, log)

		for _, c := range cd.Constructors {
			log = rewriteBlock(c.Body, cd.Name+".this", log)
		}
		for _, m := range cd.Methods {
			if m.Kind == ast.BodyBlock {
				log = rewriteBlock(m.Block, cd.Name+"."+m.Name, log)
			}
		}
	}
	return log
}

// dropUnusedFields removes every field whose name never appears anywhere
// in the program's field initialisers or method/constructor bodies
// (spec.md §4.4: "side-effect
// free in this language: initialisers are constructor calls with literal
// arguments", so a dropped field's initialiser can never have side
// effects worth preserving).
func dropUnusedFields(cd *ast.ClassDecl, used map[string]bool, log []string) ([]*ast.FieldDecl, []string) {
	var kept []*ast.FieldDecl
	for _, f := range cd.Fields {
		if used[f.Name] {
			kept = append(kept, f)
			continue
		}
		log = append(log, fmt.Sprintf("%s: unused field %q removed", cd.Name, f.Name))
	}
	return kept, log
}

// rewriteBlock applies the remaining rewrites to one block in place:
// drop unused locals, trim unreachable statements after a Return, and
// fold constant-condition While/If. label identifies the enclosing
// class/callable for log messages.
func rewriteBlock(b *ast.Block, label string, log []string) []string {
	var newBody []ast.Statement
	terminated := false

	for _, stmt := range b.Body {
		if terminated {
			log = append(log, fmt.Sprintf("%s: unreachable statement after return removed", label))
			continue
		}

		switch s := stmt.(type) {
		case *ast.VarDecl:
			if !s.Used {
				log = append(log, fmt.Sprintf("%s: unused local %q removed", label, s.Name))
				continue
			}
			newBody = append(newBody, s)

		case *ast.While:
			if v, ok := constBoolValue(s.Condition); ok && !v {
				log = append(log, fmt.Sprintf("%s: while(false) removed", label))
				continue
			}
			log = rewriteBlock(s.Body, label, log)
			newBody = append(newBody, s)

		case *ast.If:
			if v, ok := constBoolValue(s.Condition); ok {
				if v {
					log = append(log, fmt.Sprintf("%s: if(true) collapsed", label))
					log = rewriteBlock(s.Then, label, log)
					if len(s.Then.Body) > 0 {
						newBody = append(newBody, s.Then.Body[0])
					}
				} else {
					log = append(log, fmt.Sprintf("%s: if(false) collapsed", label))
					if s.Else != nil {
						log = rewriteBlock(s.Else, label, log)
						if len(s.Else.Body) > 0 {
							newBody = append(newBody, s.Else.Body[0])
						}
					}
				}
				continue
			}
			log = rewriteBlock(s.Then, label, log)
			if s.Else != nil {
				log = rewriteBlock(s.Else, label, log)
			}
			newBody = append(newBody, s)

		case *ast.Return:
			newBody = append(newBody, s)
			terminated = true

		default:
			newBody = append(newBody, s)
		}
	}

	b.Body = newBody
	b.Locals = nil
	b.Statements = nil
	for _, s := range newBody {
		if vd, ok := s.(*ast.VarDecl); ok {
			b.Locals = append(b.Locals, vd)
		} else {
			b.Statements = append(b.Statements, s)
		}
	}
	return log
}

// constBoolValue reports whether e is a compile-time-constant boolean: a
// bare BoolLit, or (the normal shape in source, since every value is an
// object) a `Boolean(true)`/`Boolean(false)` construction.
func constBoolValue(e ast.Expression) (bool, bool) {
	switch v := e.(type) {
	case *ast.BoolLit:
		return v.Value, true
	case *ast.New:
		if v.ClassName == "Boolean" && len(v.Args) == 1 {
			if lit, ok := v.Args[0].(*ast.BoolLit); ok {
				return lit.Value, true
			}
		}
	}
	return false, false
}

// collectUsedNames is the optimiser's pre-walk: every identifier-like
// name mentioned anywhere in the program's field initialisers,
// constructor bodies, and method bodies. Field removal below checks
// field names against this set directly (spec.md §4.4 "collecting
// identifier uses").
func collectUsedNames(prog *ast.Program) map[string]bool {
	names := map[string]bool{}
	for _, cd := range prog.Classes {
		for _, f := range cd.Fields {
			walkExprNames(f.Init, names)
		}
		for _, c := range cd.Constructors {
			walkBlockNames(c.Body, names)
		}
		for _, m := range cd.Methods {
			switch m.Kind {
			case ast.BodyBlock:
				walkBlockNames(m.Block, names)
			case ast.BodyArrow:
				walkExprNames(m.Arrow, names)
			}
		}
	}
	return names
}

func walkBlockNames(b *ast.Block, names map[string]bool) {
	for _, s := range b.Body {
		walkStmtNames(s, names)
	}
}

func walkStmtNames(s ast.Statement, names map[string]bool) {
	switch v := s.(type) {
	case *ast.VarDecl:
		if v.Init != nil {
			walkExprNames(v.Init, names)
		}
	case *ast.Assign:
		names[v.TargetName] = true
		walkExprNames(v.Value, names)
	case *ast.ExprStmt:
		walkExprNames(v.Expr, names)
	case *ast.While:
		walkExprNames(v.Condition, names)
		walkBlockNames(v.Body, names)
	case *ast.If:
		walkExprNames(v.Condition, names)
		walkBlockNames(v.Then, names)
		if v.Else != nil {
			walkBlockNames(v.Else, names)
		}
	case *ast.Return:
		if v.Value != nil {
			walkExprNames(v.Value, names)
		}
	}
}

func walkExprNames(e ast.Expression, names map[string]bool) {
	switch v := e.(type) {
	case *ast.Ident:
		names[v.Name] = true
		for _, t := range v.TypeArgs {
			names[t] = true
		}
	case *ast.MemberAccess:
		names[v.Member] = true
		walkExprNames(v.Target, names)
	case *ast.Call:
		walkExprNames(v.Callee, names)
		for _, a := range v.Args {
			walkExprNames(a, names)
		}
	case *ast.New:
		names[v.ClassName] = true
		for _, t := range v.TypeArgs {
			names[t] = true
		}
		for _, a := range v.Args {
			walkExprNames(a, names)
		}
	}
}
