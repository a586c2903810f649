package vm

// CallFrame holds the return instruction pointer to resume at when RET
// fires, a base-pointer snapshot of the operand-stack length at the call
// site (informational in this VM — it is never used to rewind operands),
// and a local variable map with the same contract as the global
// environment.
type CallFrame struct {
	ReturnIP    int
	BasePointer int
	Locals      *VarEnv
}

// newCallFrame constructs a frame with a fresh, empty local environment.
func newCallFrame(returnIP, basePointer int) CallFrame {
	return CallFrame{ReturnIP: returnIP, BasePointer: basePointer, Locals: NewVarEnv()}
}
