package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/afil/pkg/afil"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse afil source and print its module structure",
	Long: `Parse afil source code and print a summary of the resulting module
(declarations by kind). Reads from stdin if no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	var input string
	var filename string

	if len(args) == 1 {
		filename = args[0]
		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	} else {
		filename = "<stdin>"
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	mod, errs := afil.Parse(filename, input)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format(true))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	fmt.Printf("module %q: %d declaration(s), %d global variable(s)\n",
		mod.Name, len(mod.Declarations), len(mod.GlobalVariables))
	for _, decl := range mod.Declarations {
		fmt.Printf("  %T\n", decl)
	}
	return nil
}
