package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Thoq-jar/carbn.py/internal/vm"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Print a human-readable instruction listing for a bytecode file",
	Args:  cobra.ExactArgs(1),
	RunE:  disassembleFile,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func disassembleFile(_ *cobra.Command, args []string) error {
	filename := args[0]

	code, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read bytecode file %s: %w", filename, err)
	}

	dis := vm.NewDisassembler(os.Stdout)
	if err := dis.Disassemble(code); err != nil {
		return fmt.Errorf("disassembly failed: %w", err)
	}
	return nil
}
