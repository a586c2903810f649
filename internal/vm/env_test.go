package vm

import "testing"

func TestVarEnvGetStore(t *testing.T) {
	var stats AllocStats
	e := NewVarEnv()

	t.Run("get on unbound name", func(t *testing.T) {
		if _, ok := e.Get("x"); ok {
			t.Errorf("Get on unbound name: want ok=false")
		}
	})

	t.Run("store then get", func(t *testing.T) {
		e.Store("x", IntValue(5), &stats)
		v, ok := e.Get("x")
		if !ok || v.I != 5 {
			t.Errorf("Get(x) = (%v, %v), want (5, true)", v, ok)
		}
	})

	t.Run("rebinding releases the prior value", func(t *testing.T) {
		e.Store("s", NewString([]byte("old"), &stats), &stats)
		e.Store("s", NewString([]byte("new"), &stats), &stats)
		v, _ := e.Get("s")
		if string(v.Str.Bytes) != "new" {
			t.Errorf("Get(s) = %q, want %q", v.Str.Bytes, "new")
		}
		e.Drain(&stats)
		if !stats.Balanced() {
			t.Errorf("after Drain: allocations=%d releases=%d, want balanced", stats.Allocations(), stats.Releases())
		}
	})
}

func TestVarEnvDrainEmptiesBindings(t *testing.T) {
	var stats AllocStats
	e := NewVarEnv()
	e.Store("a", IntValue(1), &stats)
	e.Store("b", IntValue(2), &stats)
	e.Drain(&stats)

	if _, ok := e.Get("a"); ok {
		t.Errorf("Get(a) after Drain: want ok=false")
	}
	if len(e.bindings) != 0 {
		t.Errorf("bindings after Drain = %d, want 0", len(e.bindings))
	}
}
