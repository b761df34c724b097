// Command ocomp is the whole-program compiler driver for the O language
// (spec.md §6 "External interfaces", SPEC_FULL.md §4.9 "C9").
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/ocomp/cmd/ocomp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
