package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ocomp/internal/driver"
	"github.com/cwbudde/ocomp/internal/ocerrors"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var checkReportFormat string

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Lex, parse, and type-check a file without emitting bytecode",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkReportFormat, "report", "text", `diagnostic format: "text", or "json" for one JSON diagnostic per line`)
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	checkReportJSON := checkReportFormat == "json"
	rep := reporter()
	result, cerr := driver.Check(string(content), filename)
	if cerr != nil {
		d := asDiagnostic(cerr)
		if checkReportJSON {
			fmt.Println(string(diagnosticJSON(d)))
		} else {
			rep.Error(d)
		}
		return fmt.Errorf("check failed")
	}

	for _, w := range result.Analyzer.Warnings {
		if checkReportJSON {
			fmt.Println(string(warningJSON(w)))
		} else {
			rep.Warning(w)
		}
	}
	if !checkReportJSON {
		rep.Success("%s: check passed", filename)
	}
	return nil
}

// diagnosticJSON builds one diagnostic line incrementally with
// sjson.SetBytes (SPEC_FULL.md §9 "Why gjson/sjson") rather than
// constructing a Go struct purely for a one-shot line format.
func diagnosticJSON(d *ocerrors.Diagnostic) []byte {
	b, _ := sjson.SetBytes(nil, "kind", string(d.Kind))
	b, _ = sjson.SetBytes(b, "file", d.File)
	b, _ = sjson.SetBytes(b, "line", d.Pos.Line)
	b, _ = sjson.SetBytes(b, "column", d.Pos.Column)
	b, _ = sjson.SetBytes(b, "message", d.Message)
	return b
}

func warningJSON(w ocerrors.Warning) []byte {
	b, _ := sjson.SetBytes(nil, "kind", "warning")
	b, _ = sjson.SetBytes(b, "line", w.Pos.Line)
	b, _ = sjson.SetBytes(b, "column", w.Pos.Column)
	b, _ = sjson.SetBytes(b, "message", w.Message)
	return b
}
