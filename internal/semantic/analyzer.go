package semantic

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/ocerrors"
	"github.com/cwbudde/ocomp/internal/token"
)

// Analyzer runs the two semantic sub-passes in order: Check (non-
// mutating) then Optimise (mutating), per spec.md §4.4.
type Analyzer struct {
	Classes  *ClassTable
	Warnings []ocerrors.Warning

	global *Scope
	source string
	file   string

	// pendingLocals accumulates (VarDecl, Symbol) pairs created while
	// walking the callable currently being checked, so Symbol.Used can be
	// copied back onto the VarDecl once the whole body has been walked
	// (a local may be read by a statement that follows its declaration).
	pendingLocals []localBinding
}

type localBinding struct {
	vd  *ast.VarDecl
	sym *Symbol
}

// New creates an Analyzer for a parsed Program. It does not run either
// sub-pass yet.
func New(source, file string) *Analyzer {
	return &Analyzer{source: source, file: file}
}

func (a *Analyzer) fail(pos token.Position, format string, args ...any) error {
	return ocerrors.SemanticError(pos, a.source, a.file, format, args...)
}

func warningAt(pos token.Position, message string) ocerrors.Warning {
	return ocerrors.Warning{Pos: pos, Message: message}
}

// validateTypeName rejects a declared type name that resolves to nothing:
// not a primitive, not Array[T]/List[T] over a valid element type, not a
// known class (spec.md §7 "unknown types"). An empty name (no declared
// type) is always fine.
func (a *Analyzer) validateTypeName(pos token.Position, name string) error {
	if name == "" {
		return nil
	}
	head, args := ast.GenericHead(name)
	if ast.IsPrimitiveType(head) || builtinClassNames[head] {
		return nil
	}
	if ast.IsBuiltinGenericHead(head) {
		for _, arg := range args {
			if err := a.validateTypeName(pos, arg); err != nil {
				return err
			}
		}
		return nil
	}
	if _, ok := a.Classes.Lookup(head); ok {
		return nil
	}
	return a.fail(pos, "unknown type %q", name)
}

// Check runs the three class-level traversals of spec.md §4.4 plus
// expression validation, and fails fast on the first violation found.
func (a *Analyzer) Check(prog *ast.Program) error {
	classes, err := registerClasses(prog)
	if err != nil {
		return a.fail(prog.Pos(), "%s", err)
	}
	a.Classes = classes

	if err := resolveBases(classes); err != nil {
		return a.fail(prog.Pos(), "%s", err)
	}
	if err := collectMembers(classes); err != nil {
		return a.fail(prog.Pos(), "%s", err)
	}

	a.global = NewScope(nil)
	for name := range builtinClassNames {
		a.global.Define(name, SymClass, "", token.Position{})
	}
	for _, ci := range classes.InOrder() {
		a.global.Define(ci.Name, SymClass, "", ci.Decl.Pos())
	}

	for _, ci := range classes.InOrder() {
		if err := a.checkClass(ci); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkClass(ci *ClassInfo) error {
	classScope := a.global.Enter()

	for _, f := range ci.AllFields() {
		if f.Type == "" {
			f.Type = InferType(f.Init, &InferContext{Classes: a.Classes, CurrentClass: ci, Scope: classScope})
		}
		// AllFields does not de-duplicate: a field name redeclared in a
		// subclass appears once per declaring class, base-first, so only
		// the first (outermost ancestor's) declaration is defined here.
		if _, exists := classScope.Own(f.Name); !exists {
			classScope.Define(f.Name, SymVariable, f.Type, f.Pos())
		}
	}

	for _, f := range ci.OwnFields {
		if err := a.validateTypeName(f.Pos(), f.Type); err != nil {
			return err
		}
		if err := a.validateExpr(f.Init, &InferContext{Classes: a.Classes, CurrentClass: ci, Scope: classScope}); err != nil {
			return err
		}
	}

	for _, c := range ci.OwnCtors {
		if err := a.checkCallable(ci, classScope, c.Params, "", c.Body, nil); err != nil {
			return err
		}
	}
	for _, m := range ci.OwnMethods {
		if err := a.checkMethod(ci, classScope, m); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) checkMethod(ci *ClassInfo, classScope *Scope, m *ast.MethodDecl) error {
	switch m.Kind {
	case ast.BodyForward:
		return nil
	case ast.BodyArrow:
		methodScope := classScope.Enter()
		for _, p := range m.Params {
			if err := a.validateTypeName(p.Pos(), p.TypeName); err != nil {
				return err
			}
			methodScope.Define(p.Name, SymParameter, p.TypeName, p.Pos())
		}
		if err := a.validateTypeName(m.Pos(), m.ReturnType); err != nil {
			return err
		}
		ictx := &InferContext{Classes: a.Classes, CurrentClass: ci, Scope: methodScope}
		if err := a.validateExpr(m.Arrow, ictx); err != nil {
			return err
		}
		valueType := InferType(m.Arrow, ictx)
		if m.ReturnType == "" {
			a.Warnings = append(a.Warnings, warningAt(m.Pos(), "method "+m.Name+" returns a value but declares no return type"))
		} else if !IsAssignable(m.ReturnType, valueType) {
			return a.fail(m.Arrow.Pos(), "method %s: return value of type %s is not assignable to declared return type %s", m.Name, valueType, m.ReturnType)
		}
		return nil
	default: // BodyBlock
		if err := a.validateTypeName(m.Pos(), m.ReturnType); err != nil {
			return err
		}
		return a.checkCallable(ci, classScope, m.Params, m.ReturnType, m.Block, m)
	}
}

// checkCallable validates a constructor or block-bodied method: it opens
// a parameter scope, walks the block, and enforces the return-type rule
// (spec.md §4.4 "Return"). method is nil for constructors.
func (a *Analyzer) checkCallable(ci *ClassInfo, classScope *Scope, params []*ast.Parameter, returnType string, body *ast.Block, method *ast.MethodDecl) error {
	scope := classScope.Enter()
	for _, p := range params {
		if err := a.validateTypeName(p.Pos(), p.TypeName); err != nil {
			return err
		}
		scope.Define(p.Name, SymParameter, p.TypeName, p.Pos())
	}
	ictx := &InferContext{Classes: a.Classes, CurrentClass: ci, Scope: scope}

	prevPending := a.pendingLocals
	a.pendingLocals = nil
	returns, err := a.checkBlock(body, ictx, returnType)
	for _, lb := range a.pendingLocals {
		lb.vd.Used = lb.sym.Used
	}
	a.pendingLocals = prevPending
	if err != nil {
		return err
	}
	_ = returns

	for _, sym := range scope.symbols {
		if sym.Kind == SymVariable && !sym.Used {
			a.Warnings = append(a.Warnings, warningAt(sym.DeclPos, "unused variable "+sym.Name))
		}
	}
	return nil
}

// checkBlock validates every statement of a block in order, entering new
// local-variable bindings into ctx.Scope as VarDecls are encountered (a
// local's scope begins strictly after its own declaration).
func (a *Analyzer) checkBlock(b *ast.Block, ctx *InferContext, returnType string) (sawReturn bool, err error) {
	for _, stmt := range b.Body {
		if err := a.checkStatement(stmt, ctx, returnType); err != nil {
			return false, err
		}
		if _, ok := stmt.(*ast.Return); ok {
			sawReturn = true
		}
	}
	return sawReturn, nil
}
