package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/ocomp/internal/parser"
	"github.com/spf13/cobra"
)

var parseDumpAST bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a file and print its AST (debug aid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpAST, "dump-ast", true, "print the parsed AST as an S-expression tree")
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	prog, perr := parser.New(string(content), filename).ParseProgram()
	if perr != nil {
		reporter().Error(asDiagnostic(perr))
		return fmt.Errorf("parsing failed")
	}

	if parseDumpAST {
		var sb strings.Builder
		dumpSExpr(&sb, prog, 0)
		fmt.Print(sb.String())
	}
	return nil
}
