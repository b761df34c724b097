// Package diag implements the compiler's line-oriented diagnostic
// reporter (spec.md §7, SPEC_FULL.md §4.10 "C10"): one glyph-prefixed
// line per event, with the teacher's caret-excerpt formatting
// (internal/errors.CompilerError.Format) behind the error glyph; warnings
// print as a single position-prefixed line.
package diag

import (
	"fmt"
	"io"

	"github.com/cwbudde/ocomp/internal/ocerrors"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter prints info/success/warning/error lines to a writer, colorized
// when the writer is a terminal.
type Reporter struct {
	out   io.Writer
	err   io.Writer
	color bool
}

// New creates a Reporter writing phase/success/info messages to out and
// warnings/errors to errOut. Color is auto-detected from errOut's file
// descriptor unless noColor forces it off.
func New(out, errOut io.Writer, noColor bool) *Reporter {
	r := &Reporter{out: out, err: errOut}
	if noColor {
		return r
	}
	if f, ok := errOut.(interface{ Fd() uintptr }); ok {
		r.color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return r
}

func (r *Reporter) paint(c *color.Color, glyph, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if !r.color {
		return fmt.Sprintf("%s %s", glyph, msg)
	}
	return c.Sprintf("%s %s", glyph, msg)
}

// Info prints an "ℹ" phase/progress message to stdout.
func (r *Reporter) Info(format string, args ...any) {
	fmt.Fprintln(r.out, r.paint(color.New(color.FgCyan), "ℹ", format, args...))
}

// Success prints a "✓" completion message to stdout.
func (r *Reporter) Success(format string, args ...any) {
	fmt.Fprintln(r.out, r.paint(color.New(color.FgGreen), "✓", format, args...))
}

// Warning prints a "⚠" warning to stderr.
func (r *Reporter) Warning(w ocerrors.Warning) {
	fmt.Fprintln(r.err, r.paint(color.New(color.FgYellow), "⚠", "%s", w.String()))
}

// Error prints a "✗" diagnostic (with its caret-pointed source excerpt)
// to stderr.
func (r *Reporter) Error(d *ocerrors.Diagnostic) {
	fmt.Fprintln(r.err, r.paint(color.New(color.FgRed, color.Bold), "✗", "%s", d.Format()))
}

// Rewrite prints one "ℹ" line per optimiser rewrite (spec.md §4.4's
// per-rewrite log).
func (r *Reporter) Rewrite(msg string) {
	r.Info("optimise: %s", msg)
}
