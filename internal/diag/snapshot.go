// Package diag provides read-only diagnostic views over a running VM:
// JSON state snapshots for the --watch flag and a pretty-printed trace
// dump for --trace. Nothing here feeds back into execution.
package diag

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/Thoq-jar/carbn.py/internal/vm"
)

// Snapshot is a JSON-serializable capture of VM state at one point in
// execution: the operand stack depth, call-frame depth, the current loop
// index, and the bound global names.
type Snapshot struct {
	StackDepth       int      `json:"stack_depth"`
	FrameDepth       int      `json:"frame_depth"`
	CurrentLoopIndex int64    `json:"current_loop_index"`
	Globals          []string `json:"globals"`
	Allocations      uint64   `json:"allocations"`
	Releases         uint64   `json:"releases"`
}

// Capture builds a Snapshot from the current state of v.
func Capture(v *vm.VM) Snapshot {
	globalsMap := v.GlobalSnapshot()
	names := make([]string, 0, len(globalsMap))
	for name := range globalsMap {
		names = append(names, name)
	}
	return Snapshot{
		StackDepth:       v.StackDepth(),
		FrameDepth:       v.FrameDepth(),
		CurrentLoopIndex: v.CurrentLoopIndex(),
		Globals:          names,
		Allocations:      v.Stats().Allocations(),
		Releases:         v.Stats().Releases(),
	}
}

// JSON renders the snapshot as a JSON document.
func (s Snapshot) JSON() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("diag: marshaling snapshot: %w", err)
	}
	return string(raw), nil
}

// Query evaluates a gjson path against the snapshot's JSON rendering, for
// the --watch flag's point-query mode (e.g. "stack_depth" or
// "globals.0").
func (s Snapshot) Query(path string) (string, error) {
	raw, err := s.JSON()
	if err != nil {
		return "", err
	}
	result := gjson.Get(raw, path)
	if !result.Exists() {
		return "", fmt.Errorf("diag: path %q not found in snapshot", path)
	}
	return result.String(), nil
}

// WithAnnotation returns the snapshot's JSON rendering with an extra
// caller-supplied string field set at path, via sjson. The CLI does not
// call it.
func (s Snapshot) WithAnnotation(path, value string) (string, error) {
	raw, err := s.JSON()
	if err != nil {
		return "", err
	}
	annotated, err := sjson.Set(raw, path, value)
	if err != nil {
		return "", fmt.Errorf("diag: annotating snapshot: %w", err)
	}
	return annotated, nil
}
