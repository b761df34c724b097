// Package ocerrors defines the compiler's diagnostic kinds: syntax,
// semantic, and emit errors, plus non-fatal warnings. Each carries a
// source Position; errors format themselves with a caret pointing at the
// offending column, the way the teacher's internal/errors package does,
// while a warning renders as a single position-prefixed line.
package ocerrors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/ocomp/internal/token"
	"golang.org/x/text/width"
)

// Kind distinguishes the three error categories of spec.md §7; the fourth
// category, warnings, is the separate Warning type.
type Kind string

const (
	Syntax   Kind = "syntax"
	Semantic Kind = "semantic"
	Emit     Kind = "emit"
)

// Diagnostic is a single compiler error, unrecoverable at the point it is
// raised: the stage that detects it stops and returns it to the driver.
type Diagnostic struct {
	Kind    Kind
	Pos     token.Position
	Message string
	Source  string // the full source text, for the caret excerpt
	File    string
}

func (d *Diagnostic) Error() string { return d.Format() }

// Format renders "File:Line:Column: kind error: message", followed by the
// offending source line and a caret. Column alignment accounts for
// East-Asian-wide runes (each counts as two terminal cells) via
// golang.org/x/text/width, so the caret lines up even when the source
// line contains CJK identifiers or fullwidth literals.
func (d *Diagnostic) Format() string {
	var sb strings.Builder
	loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
	if d.File != "" {
		loc = d.File + ":" + loc
	}
	fmt.Fprintf(&sb, "%s: %s error: %s\n", loc, d.Kind, d.Message)

	line := sourceLine(d.Source, d.Pos.Line)
	if line != "" {
		fmt.Fprintf(&sb, "  %s\n", line)
		sb.WriteString("  ")
		sb.WriteString(caretPad(line, d.Pos.Column))
		sb.WriteString("^\n")
	}
	return sb.String()
}

func sourceLine(source string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// caretPad builds the whitespace prefix that positions a caret under
// column col (1-based, in runes) of line, doubling the padding for any
// East-Asian-wide rune that precedes it.
func caretPad(line string, col int) string {
	var sb strings.Builder
	runes := []rune(line)
	limit := col - 1
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := 0; i < limit; i++ {
		p := width.LookupRune(runes[i])
		if p.Kind() == width.EastAsianWide || p.Kind() == width.EastAsianFullwidth {
			sb.WriteString("  ")
		} else {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// SyntaxError constructs a syntax-error Diagnostic.
func SyntaxError(pos token.Position, source, file, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: Syntax, Pos: pos, Source: source, File: file, Message: fmt.Sprintf(format, args...)}
}

// SemanticError constructs a semantic-error Diagnostic.
func SemanticError(pos token.Position, source, file, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: Semantic, Pos: pos, Source: source, File: file, Message: fmt.Sprintf(format, args...)}
}

// EmitError constructs an emit-error Diagnostic.
func EmitError(pos token.Position, source, file, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: Emit, Pos: pos, Source: source, File: file, Message: fmt.Sprintf(format, args...)}
}

// Warning is a non-fatal diagnostic: unused variables, returning a value
// from a type-less method. Warnings never abort compilation.
type Warning struct {
	Pos     token.Position
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%d:%d: warning: %s", w.Pos.Line, w.Pos.Column, w.Message)
}
