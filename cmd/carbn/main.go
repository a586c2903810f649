// Command carbn runs compiled bytecode files against the virtual machine
// in internal/vm.
package main

import (
	"fmt"
	"os"

	"github.com/Thoq-jar/carbn.py/cmd/carbn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
