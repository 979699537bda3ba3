package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/afil/internal/ast"
	"github.com/cwbudde/afil/internal/evaluator"
	"github.com/cwbudde/afil/pkg/afil"
	"github.com/spf13/cobra"
)

var runStackSize int

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run an afil source file",
	Long: `Parse, analyse, and evaluate an afil program, printing main's
return value as the process exit code.`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVar(&runStackSize, "stack-size", afil.DefaultStackSize, "activation stack size in bytes")
}

func runFile(_ *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	mod, parseErrs := afil.Parse(filename, string(data))
	if len(parseErrs) > 0 {
		for _, e := range parseErrs {
			fmt.Fprintln(os.Stderr, e.Format(true))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}

	program, semErrs := afil.Analyse([]*ast.Module{mod}, []int{0}, []string{string(data)})
	if len(semErrs) > 0 {
		for _, e := range semErrs {
			fmt.Fprintln(os.Stderr, e.Format(true))
		}
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(semErrs))
	}

	code, err := afil.Run(program, runStackSize)
	if up, ok := err.(*evaluator.UnmetPrecondition); ok {
		fmt.Fprintf(os.Stderr, "runtime error: %s\n", up.Error())
		os.Exit(1)
	} else if err != nil {
		return err
	}

	os.Exit(int(code))
	return nil
}
