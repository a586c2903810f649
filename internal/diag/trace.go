package diag

import (
	"io"

	"github.com/kr/pretty"

	"github.com/Thoq-jar/carbn.py/internal/vm"
)

// WriteTrace pretty-prints a Snapshot to w in the struct-field layout
// kr/pretty produces, for --trace output — denser than JSON, meant for a
// human reading a terminal rather than for machine consumption.
func WriteTrace(w io.Writer, v *vm.VM) {
	snap := Capture(v)
	pretty.Fprintf(w, "%# v\n", snap)
}
