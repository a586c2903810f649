package vm

import "testing"

func TestStackPushPop(t *testing.T) {
	t.Run("pop from empty stack errors", func(t *testing.T) {
		s := NewStack(defaultStackCapacity)
		if _, err := s.Pop(); err == nil {
			t.Fatalf("Pop on empty stack: want error, got nil")
		}
	})

	t.Run("push then pop returns same value", func(t *testing.T) {
		s := NewStack(defaultStackCapacity)
		s.Push(IntValue(42))
		v, err := s.Pop()
		if err != nil {
			t.Fatalf("Pop: unexpected error: %v", err)
		}
		if v.Tag != TagInt || v.I != 42 {
			t.Errorf("Pop = %v, want integer 42", v)
		}
	})

	t.Run("peek does not remove", func(t *testing.T) {
		s := NewStack(defaultStackCapacity)
		s.Push(IntValue(7))
		if _, err := s.Peek(); err != nil {
			t.Fatalf("Peek: unexpected error: %v", err)
		}
		if s.Len() != 1 {
			t.Errorf("Len after Peek = %d, want 1", s.Len())
		}
	})

	t.Run("swap exchanges top two", func(t *testing.T) {
		s := NewStack(defaultStackCapacity)
		s.Push(IntValue(1))
		s.Push(IntValue(2))
		if err := s.Swap(); err != nil {
			t.Fatalf("Swap: unexpected error: %v", err)
		}
		top, _ := s.Pop()
		bottom, _ := s.Pop()
		if top.I != 1 || bottom.I != 2 {
			t.Errorf("after Swap, top=%v bottom=%v, want 1 then 2", top.I, bottom.I)
		}
	})

	t.Run("swap with fewer than two operands errors", func(t *testing.T) {
		s := NewStack(defaultStackCapacity)
		s.Push(IntValue(1))
		if err := s.Swap(); err == nil {
			t.Fatalf("Swap with one operand: want error, got nil")
		}
	})
}

func TestStackDrainReleasesOwnedValues(t *testing.T) {
	var stats AllocStats
	s := NewStack(defaultStackCapacity)
	s.Push(NewString([]byte("hello"), &stats))
	s.Push(IntValue(1))
	s.Drain(&stats)

	if !stats.Balanced() {
		t.Errorf("after Drain: allocations=%d releases=%d, want balanced", stats.Allocations(), stats.Releases())
	}
	if s.Len() != 0 {
		t.Errorf("Len after Drain = %d, want 0", s.Len())
	}
}
