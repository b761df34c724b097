package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cwbudde/ocomp/internal/bytecode"
	"github.com/cwbudde/ocomp/internal/config"
	"github.com/cwbudde/ocomp/internal/driver"
	"github.com/cwbudde/ocomp/internal/lexer"
	"github.com/cwbudde/ocomp/internal/parser"
	"github.com/spf13/cobra"
)

var (
	compileOutput     string
	compileNoOptimize bool
	compileNet        bool
	compileStart      string
	compileDumpAST    bool
	compileDumpTokens bool
	compileEmitAsm    bool
	compileConfigPath string
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a file through the full lex/parse/check/optimise/emit pipeline",
	Long: `compile runs the whole-program pipeline (C1 lexer through C8 entry
synthesis) over a single source file.

With --compile-net the emitted module is serialized and written to disk
(default: the input's basename with a .ovm extension, or -o). With
--emit-asm the disassembled module is printed to stdout, whether or not
--compile-net also writes it. Neither
flag is required: a bare "ocomp compile file.o" still runs every stage
and reports success or failure, which is enough to validate a program
without producing any output artifact.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output module path (default: <input>.ovm)")
	compileCmd.Flags().BoolVar(&compileNoOptimize, "no-optimize", false, "skip the optimise sub-pass")
	compileCmd.Flags().BoolVar(&compileNet, "compile-net", false, "serialize the emitted module and write it to disk")
	compileCmd.Flags().StringVar(&compileStart, "start", "", "entry class (default: first declared)")
	compileCmd.Flags().BoolVar(&compileDumpAST, "dump-ast", false, "print the parsed AST before compiling")
	compileCmd.Flags().BoolVar(&compileDumpTokens, "dump-tokens", false, "print the token stream before compiling")
	compileCmd.Flags().BoolVar(&compileEmitAsm, "emit-asm", false, "print the disassembled module instead of (or alongside) writing it")
	compileCmd.Flags().StringVar(&compileConfigPath, "config", "", "path to an .ocomp.yaml config file (default: .ocomp.yaml next to the source)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)
	rep := reporter()

	if compileDumpTokens {
		for _, tok := range lexer.Tokenize(source) {
			fmt.Printf("%-14s %-20q @%s\n", tok.Kind, tok.Literal, tok.Pos)
		}
	}

	if compileDumpAST {
		prog, perr := parser.New(source, filename).ParseProgram()
		if perr != nil {
			rep.Error(asDiagnostic(perr))
			return fmt.Errorf("parsing failed")
		}
		var sb strings.Builder
		dumpSExpr(&sb, prog, 0)
		fmt.Print(sb.String())
	}

	cfgPath := compileConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(filepath.Dir(filename), ".ocomp.yaml")
	}
	cfg, cfgErr := config.Load(cfgPath)
	if cfgErr != nil {
		return fmt.Errorf("failed to read config %s: %w", cfgPath, cfgErr)
	}

	flags := cmd.Flags()
	start, output, noOptimize, net := config.Merge(cfg,
		compileStart, compileOutput, compileNoOptimize, compileNet,
		flags.Changed("start"), flags.Changed("output"), flags.Changed("no-optimize"), flags.Changed("compile-net"))

	rep.Info("compiling %s", filename)
	result, cerr := driver.Compile(source, filename, driver.CompileOptions{
		StartClass: start,
		NoOptimize: noOptimize,
	})
	if cerr != nil {
		rep.Error(asDiagnostic(cerr))
		return fmt.Errorf("compilation failed")
	}

	for _, line := range result.OptimiseLog {
		rep.Rewrite(line)
	}
	for _, w := range result.Warnings {
		rep.Warning(w)
	}

	if compileEmitAsm {
		var sb strings.Builder
		bytecode.NewDisassembler(&sb).DisassembleModule(result.Module)
		fmt.Print(sb.String())
	}

	if net {
		data, serr := bytecode.Serialize(result.Module)
		if serr != nil {
			return fmt.Errorf("failed to serialize module: %w", serr)
		}
		outPath := output
		if outPath == "" {
			outPath = defaultModulePath(filename)
		}
		if err := writeFileAtomically(outPath, data); err != nil {
			return fmt.Errorf("failed to write module %s: %w", outPath, err)
		}
		rep.Success("%s -> %s (%d bytes)", filename, outPath, len(data))
		return nil
	}

	rep.Success("%s compiled successfully", filename)
	return nil
}

func defaultModulePath(filename string) string {
	ext := filepath.Ext(filename)
	if ext == "" {
		return filename + ".ovm"
	}
	return strings.TrimSuffix(filename, ext) + ".ovm"
}
