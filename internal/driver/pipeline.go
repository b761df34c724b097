// Package driver wires the compiler stages (C1 lexer through C8 entry
// synthesis) into the single whole-program pipeline the CLI commands
// drive (SPEC_FULL.md §4.9 "C9"): lex -> parse -> check -> optimise ->
// emit. Kept separate from cmd/ocomp so `ocomp check` can run a prefix
// of it without pulling in the emitter.
package driver

import (
	"github.com/cwbudde/ocomp/internal/ast"
	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/emitter"
	"github.com/cwbudde/ocomp/internal/ocerrors"
	"github.com/cwbudde/ocomp/internal/parser"
	"github.com/cwbudde/ocomp/internal/semantic"
)

// CheckResult is the output of running the lexer/parser/analyzer
// (`ocomp check`, and the prefix `ocomp compile` always runs first).
type CheckResult struct {
	Program  *ast.Program
	Analyzer *semantic.Analyzer
}

// Check parses source and runs the semantic analyzer's check pass. It
// does not optimise or emit.
func Check(source, file string) (*CheckResult, error) {
	prog, err := parser.New(source, file).ParseProgram()
	if err != nil {
		return nil, err
	}
	a := semantic.New(source, file)
	if err := a.Check(prog); err != nil {
		return nil, err
	}
	return &CheckResult{Program: prog, Analyzer: a}, nil
}

// CompileOptions controls the optional stages of Compile.
type CompileOptions struct {
	// StartClass names the class to construct and run `main` on. Empty
	// means "the first declared class" (spec.md §4.8).
	StartClass string
	// NoOptimize skips the optimise sub-pass (spec.md §4.4), emitting the
	// checked-but-unrewritten AST directly.
	NoOptimize bool
}

// CompileResult is the output of a full compile.
type CompileResult struct {
	Module      *bytecode.Module
	Warnings    []ocerrors.Warning
	OptimiseLog []string
}

// Compile runs the complete C1->C8 pipeline over source, returning the
// emitted module.
func Compile(source, file string, opts CompileOptions) (*CompileResult, error) {
	checked, err := Check(source, file)
	if err != nil {
		return nil, err
	}

	analyzer := checked.Analyzer
	var log []string
	if !opts.NoOptimize {
		log = semantic.Optimise(checked.Program)

		// Optimise mutates the AST in place (dropped fields/locals,
		// collapsed branches); re-run Check so the ClassInfo table the
		// emitter consults reflects the rewritten tree rather than a
		// stale pre-optimise snapshot. A rewritten program that already
		// passed Check once cannot newly fail it.
		analyzer = semantic.New(source, file)
		if err := analyzer.Check(checked.Program); err != nil {
			return nil, err
		}
	}

	em := emitter.New(analyzer.Classes, source, file)
	mod, err := em.Emit(checked.Program, opts.StartClass)
	if err != nil {
		return nil, err
	}

	warnings := append(append([]ocerrors.Warning{}, analyzer.Warnings...), em.Warnings...)
	return &CompileResult{
		Module:      mod,
		Warnings:    warnings,
		OptimiseLog: log,
	}, nil
}
