package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/ocomp/internal/lexer"
	"github.com/cwbudde/ocomp/internal/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a file and print the token stream (debug aid)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", args[0], err)
	}

	for _, tok := range lexer.Tokenize(string(content)) {
		fmt.Printf("%-14s %-20q @%s\n", tok.Kind, tok.Literal, tok.Pos)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}
