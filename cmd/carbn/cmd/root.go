package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "carbn",
	Short: "Bytecode virtual machine for the carbn.py language",
	Long: `carbn is the host CLI around a stack-based bytecode virtual machine:
a tagged-value operand stack, structured loops, call frames, and a small
closed set of fatal runtime errors.

This CLI runs already-compiled bytecode files; no compiler is included.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
`, GitCommit))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose host diagnostics on stderr")
}
