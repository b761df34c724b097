package cmd

import (
	"os"

	"github.com/cwbudde/ocomp/internal/diag"
	"github.com/spf13/cobra"
)

var (
	// Version information, set by build ldflags (grounded on the
	// teacher's cmd/dwscript/cmd/root.go).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "ocomp",
	Short: "Whole-program compiler for the O language",
	Long: `ocomp compiles O programs -- every value an object, operators are
method calls, a program is a set of class declarations run by
constructing a designated start class and calling its main -- down to a
stack-machine bytecode module.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colorized diagnostics")
}

func reporter() *diag.Reporter {
	return diag.New(os.Stdout, os.Stderr, noColor)
}
