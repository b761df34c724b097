package cmd

import (
	"os"
	"path/filepath"

	"github.com/cwbudde/ocomp/internal/ocerrors"
)

// asDiagnostic recovers the *ocerrors.Diagnostic a pipeline stage failed
// with, falling back to a bare Diagnostic wrapping any other error so the
// reporter always has something to format.
func asDiagnostic(err error) *ocerrors.Diagnostic {
	if d, ok := err.(*ocerrors.Diagnostic); ok {
		return d
	}
	return &ocerrors.Diagnostic{Message: err.Error()}
}

// writeFileAtomically writes data to path via a temp file in the same
// directory followed by a rename, so a failed or interrupted write never
// leaves a partial output file behind (SPEC_FULL.md §4.13 "no partial
// success", grounded on the teacher's compile.go write strategy).
func writeFileAtomically(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ocomp-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
