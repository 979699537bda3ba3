package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "afil",
	Short: "afil compiler and evaluator",
	Long: `afil is a compiler and evaluator for afil, a small statically-typed,
value-semantic programming language:
  - Static types with limited inference, value semantics by default
  - Mutable references (` + "`let mut`" + `, ` + "`mut T`" + `) opted into at the declaration site
  - Function and struct templates, constrained by a ` + "`compiles{}`" + ` probe
  - Preconditions checked at every call, runtime or compile time`,
	Version: Version,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
