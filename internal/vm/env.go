package vm

// VarEnv is a mapping from name to Value sharing the contract of §3's
// variable environment: keys are owned independently of any program-source
// reference, and a prior binding is released before rebinding. The same
// type backs both the global environment and each call frame's locals.
//
// The spec permits a small-vector optimization (inline up to 8 bindings
// before spilling to a map) as observationally equivalent; this
// implementation uses a plain map throughout; see DESIGN.md for why the
// SVO was not worth the complexity here.
type VarEnv struct {
	bindings map[string]Value
}

// NewVarEnv constructs an empty variable environment.
func NewVarEnv() *VarEnv {
	return &VarEnv{bindings: make(map[string]Value)}
}

// Get looks up name, returning the bound value and whether it was present.
func (e *VarEnv) Get(name string) (Value, bool) {
	v, ok := e.bindings[name]
	return v, ok
}

// Store binds name to v, releasing any prior binding's owned storage first.
func (e *VarEnv) Store(name string, v Value, stats *AllocStats) {
	if old, ok := e.bindings[name]; ok {
		old.Release(stats)
	}
	e.bindings[name] = v
}

// Drain releases every live binding, used at frame teardown and VM
// teardown to guarantee leak-freedom on every exit path.
func (e *VarEnv) Drain(stats *AllocStats) {
	for name, v := range e.bindings {
		v.Release(stats)
		delete(e.bindings, name)
	}
}
