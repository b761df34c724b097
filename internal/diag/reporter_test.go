package diag_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/ocomp/internal/diag"
	"github.com/cwbudde/ocomp/internal/ocerrors"
	"github.com/cwbudde/ocomp/internal/token"
)

// bytes.Buffer has no Fd() method, so New always resolves to no-color
// here regardless of the noColor argument: these tests exercise the
// glyph/message formatting, not the isatty branch.
func newReporter() (*diag.Reporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return diag.New(&out, &errOut, false), &out, &errOut
}

func TestReporter_InfoAndSuccessGoToOut(t *testing.T) {
	r, out, errOut := newReporter()
	r.Info("compiling %s", "a.o")
	r.Success("%s compiled", "a.o")

	if !strings.Contains(out.String(), "ℹ compiling a.o") {
		t.Fatalf("out = %q, missing info line", out.String())
	}
	if !strings.Contains(out.String(), "✓ a.o compiled") {
		t.Fatalf("out = %q, missing success line", out.String())
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected nothing on errOut, got %q", errOut.String())
	}
}

func TestReporter_WarningAndErrorGoToErr(t *testing.T) {
	r, out, errOut := newReporter()
	r.Warning(ocerrors.Warning{Pos: token.Position{Line: 1, Column: 1}, Message: "unused variable x"})
	r.Error(&ocerrors.Diagnostic{Kind: ocerrors.Semantic, Message: "unknown type", Pos: token.Position{Line: 2, Column: 3}})

	if !strings.Contains(errOut.String(), "⚠") || !strings.Contains(errOut.String(), "unused variable x") {
		t.Fatalf("errOut = %q, missing warning line", errOut.String())
	}
	if !strings.Contains(errOut.String(), "✗") || !strings.Contains(errOut.String(), "unknown type") {
		t.Fatalf("errOut = %q, missing error line", errOut.String())
	}
	if out.Len() != 0 {
		t.Fatalf("expected nothing on out, got %q", out.String())
	}
}

func TestReporter_RewriteIsAnInfoLine(t *testing.T) {
	r, out, _ := newReporter()
	r.Rewrite(`C: unused field "n" removed`)

	if !strings.Contains(out.String(), "ℹ optimise:") {
		t.Fatalf("out = %q, expected a prefixed optimise info line", out.String())
	}
}
