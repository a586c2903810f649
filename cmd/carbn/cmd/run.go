package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Thoq-jar/carbn.py/internal/config"
	"github.com/Thoq-jar/carbn.py/internal/diag"
	"github.com/Thoq-jar/carbn.py/internal/vm"
)

var (
	configPath string
	trace      bool
	watchPath  string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a compiled bytecode file",
	Long: `Execute a bytecode file against the virtual machine.

Examples:
  # Run a bytecode file
  carbn run program.cbc

  # Run with an explicit run-configuration file
  carbn run --config carbn.yaml program.cbc

  # Run with a trace dump after execution
  carbn run --trace program.cbc`,
	Args: cobra.ExactArgs(1),
	RunE: runBytecode,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&configPath, "config", "", "path to a carbn.yaml run-configuration file")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print a state trace after execution")
	runCmd.Flags().StringVar(&watchPath, "watch", "", "gjson path to query from the post-execution snapshot")
}

func runBytecode(_ *cobra.Command, args []string) error {
	filename := args[0]

	code, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read bytecode file %s: %w", filename, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Trace {
		trace = true
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[carbn] running %s (%d bytes)\n", filename, len(code))
	}

	machine := vm.New(
		vm.WithOutput(os.Stdout),
		vm.WithStdin(os.Stdin),
		vm.WithStackCapacity(cfg.StackCapacity),
		vm.WithStdinBufferSize(cfg.StdinBufferSize),
	)

	runErr := machine.Execute(code)

	if trace || watchPath != "" {
		snap := diag.Capture(machine)
		if watchPath != "" {
			value, qerr := snap.Query(watchPath)
			if qerr != nil {
				fmt.Fprintf(os.Stderr, "[carbn] watch: %s\n", qerr)
			} else {
				fmt.Fprintf(os.Stderr, "[carbn] watch %s = %s\n", watchPath, value)
			}
		}
		if trace {
			diag.WriteTrace(os.Stderr, machine)
		}
	}

	machine.Teardown()

	if runErr != nil {
		return describeRuntimeError(runErr)
	}
	return nil
}

// describeRuntimeError maps a VM error to a CLI-facing message without
// attempting to recover or retry; the process exit code stays non-zero via
// main's error handling.
func describeRuntimeError(err error) error {
	var vmErr *vm.VMError
	if errors.As(err, &vmErr) {
		return fmt.Errorf("runtime error: %s", vmErr.Error())
	}
	return fmt.Errorf("runtime error: %w", err)
}
