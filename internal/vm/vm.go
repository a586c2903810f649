package vm

import (
	"bufio"
	"io"
)

// maxStdinLine bounds how much of an input line STDIN reads, per §4.4.
const maxStdinLine = 1024

// VM is the bytecode virtual machine: an operand stack, a call stack of
// frames, a global variable environment, an injectable output sink, and an
// injectable input source. It owns exactly one execution — no state is
// shared across VM instances beyond what the caller hands in.
type VM struct {
	stack   *Stack
	frames  []CallFrame
	globals *VarEnv
	output  io.Writer
	stdin   *bufio.Reader
	stats   AllocStats

	// currentLoopIndex is the single VM-global loop counter described by
	// spec §4.4/§9: nested LOOP_START executions all write through this
	// one field, so an outer loop's index is clobbered by an inner loop's
	// iterations. This is a documented quirk of the design, preserved
	// rather than silently fixed; see DESIGN.md.
	currentLoopIndex int64

	// stdinBufferSize bounds STDIN reads; the contract fixes 1024 as a
	// floor, but a host config may raise it.
	stdinBufferSize int
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithOutput sets the PRINT sink. The default is io.Discard.
func WithOutput(w io.Writer) Option {
	return func(v *VM) { v.output = w }
}

// WithStdin sets the STDIN source. The default is an empty reader.
func WithStdin(r io.Reader) Option {
	return func(v *VM) { v.stdin = bufio.NewReader(r) }
}

// WithStackCapacity overrides the operand stack's pre-reserved capacity
// (still clamped to the §3 minimum of 256).
func WithStackCapacity(capacity int) Option {
	return func(v *VM) { v.stack = NewStack(capacity) }
}

// WithStdinBufferSize overrides the STDIN line buffer size (still clamped
// to the §4.4 minimum of 1024).
func WithStdinBufferSize(size int) Option {
	return func(v *VM) {
		if size > maxStdinLine {
			v.stdinBufferSize = size
		}
	}
}

// New constructs a VM ready to Execute a code slice.
func New(opts ...Option) *VM {
	vm := &VM{
		stack:           NewStack(defaultStackCapacity),
		frames:          make([]CallFrame, 0, 16),
		globals:         NewVarEnv(),
		output:          io.Discard,
		stdin:           bufio.NewReader(discardReader{}),
		stdinBufferSize: maxStdinLine,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

type discardReader struct{}

func (discardReader) Read(_ []byte) (int, error) { return 0, io.EOF }

// Stats exposes the allocation/release counters so callers can assert
// leak-freedom (spec invariant 2).
func (vm *VM) Stats() *AllocStats { return &vm.stats }

// CurrentLoopIndex exposes the single VM-global loop counter, for
// diagnostics; see the field comment on VM for the clobbering behavior it
// reflects.
func (vm *VM) CurrentLoopIndex() int64 { return vm.currentLoopIndex }

// Teardown releases every live value still held by the VM: the operand
// stack, every call frame's locals, and the global environment. It is safe
// to call after any exit path, success or failure, to guarantee
// leak-freedom.
func (vm *VM) Teardown() {
	vm.stack.Drain(&vm.stats)
	for i := range vm.frames {
		vm.frames[i].Locals.Drain(&vm.stats)
	}
	vm.frames = vm.frames[:0]
	vm.globals.Drain(&vm.stats)
}

// activeFrame returns the top call frame, or nil if the call stack is
// empty (meaning lookups and stores go to globals).
func (vm *VM) activeFrame() *CallFrame {
	if len(vm.frames) == 0 {
		return nil
	}
	return &vm.frames[len(vm.frames)-1]
}

// lookupVar implements the §4.6 lookup rule: top-frame locals first, then
// globals.
func (vm *VM) lookupVar(name string) (Value, bool) {
	if frame := vm.activeFrame(); frame != nil {
		if v, ok := frame.Locals.Get(name); ok {
			return v, ok
		}
	}
	return vm.globals.Get(name)
}

// storeVar implements the §4.6 write rule: the top frame if any, else
// globals.
func (vm *VM) storeVar(name string, v Value) {
	if frame := vm.activeFrame(); frame != nil {
		frame.Locals.Store(name, v, &vm.stats)
		return
	}
	vm.globals.Store(name, v, &vm.stats)
}

// GlobalSnapshot returns a copy of the global environment's name-to-value
// bindings, for diagnostics. Values are returned as logical borrows and
// must not be released by the caller.
func (vm *VM) GlobalSnapshot() map[string]Value {
	out := make(map[string]Value, len(vm.globals.bindings))
	for k, v := range vm.globals.bindings {
		out[k] = v
	}
	return out
}

// StackDepth reports the current operand stack depth, for diagnostics and
// the balance invariant (spec invariant 1).
func (vm *VM) StackDepth() int { return vm.stack.Len() }

// FrameDepth reports the current call stack depth.
func (vm *VM) FrameDepth() int { return len(vm.frames) }

// Run executes code from instruction pointer 0 and tears the VM down
// unconditionally afterward, success or failure, so leak-freedom holds on
// every exit path without the caller having to remember to call Teardown.
func (vm *VM) Run(code []byte) error {
	defer vm.Teardown()
	return vm.Execute(code)
}
