// Package vm implements the bytecode virtual machine: instruction decoding,
// the tagged value model, the arithmetic/comparison engine, call frames, and
// the dispatch loop described by the language's bytecode contract.
package vm

import "fmt"

// Tag identifies which payload field of a Value is live.
type Tag byte

const (
	TagInt Tag = iota
	TagBigInt
	TagFloat
	TagString
	TagBool
	TagArray
	TagNull
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "integer"
	case TagBigInt:
		return "big_integer"
	case TagFloat:
		return "float"
	case TagString:
		return "string"
	case TagBool:
		return "boolean"
	case TagArray:
		return "array"
	case TagNull:
		return "null"
	default:
		return "unknown"
	}
}

// StringObj is the heap storage backing a TagString Value. A Value carrying
// a StringObj exclusively owns it; the Released flag catches accidental
// double-release during development and keeps AllocStats honest.
type StringObj struct {
	Bytes    []byte
	Released bool
}

// ArrayObj is the heap storage backing a TagArray Value. Its element slice
// and every heap-carrying element are exclusively owned by this object.
type ArrayObj struct {
	Elems    []Value
	Released bool
}

// Value is the tagged sum described in the data model: integer, big_integer,
// float, string, boolean, array, or null. Only one payload field is live at
// a time, selected by Tag.
type Value struct {
	Tag Tag
	I   int64
	F   float64
	Big Int128
	Bl  bool
	Str *StringObj
	Arr *ArrayObj
}

// AllocStats counts heap allocations and releases of owned Values so that
// leak-freedom (spec invariant: total allocations == total releases) can be
// asserted under test, standing in for an instrumented allocator.
type AllocStats struct {
	allocations uint64
	releases    uint64
}

func (s *AllocStats) recordAlloc() {
	if s != nil {
		s.allocations++
	}
}

func (s *AllocStats) recordRelease() {
	if s != nil {
		s.releases++
	}
}

// Allocations returns the number of owned heap objects created so far.
func (s *AllocStats) Allocations() uint64 { return s.allocations }

// Releases returns the number of owned heap objects released so far.
func (s *AllocStats) Releases() uint64 { return s.releases }

// Balanced reports whether every allocation has been matched by exactly one
// release, i.e. the leak-freedom invariant holds.
func (s *AllocStats) Balanced() bool { return s.allocations == s.releases }

// NilValue constructs the null value.
func NilValue() Value { return Value{Tag: TagNull} }

// IntValue constructs a signed 64-bit integer value.
func IntValue(i int64) Value { return Value{Tag: TagInt, I: i} }

// BigIntValue constructs a 128-bit integer value.
func BigIntValue(b Int128) Value { return Value{Tag: TagBigInt, Big: b} }

// FloatValue constructs a float value.
func FloatValue(f float64) Value { return Value{Tag: TagFloat, F: f} }

// BoolValue constructs a boolean value.
func BoolValue(b bool) Value { return Value{Tag: TagBool, Bl: b} }

// NewString allocates an owned copy of b and returns a TagString Value.
// Every call must be matched by exactly one Release for leak-freedom.
func NewString(b []byte, stats *AllocStats) Value {
	owned := make([]byte, len(b))
	copy(owned, b)
	stats.recordAlloc()
	return Value{Tag: TagString, Str: &StringObj{Bytes: owned}}
}

// NewArray allocates an array of the given length filled with null.
func NewArray(length int, stats *AllocStats) Value {
	elems := make([]Value, length)
	for i := range elems {
		elems[i] = NilValue()
	}
	stats.recordAlloc()
	return Value{Tag: TagArray, Arr: &ArrayObj{Elems: elems}}
}

// NewArrayFrom allocates an array owning the given elements directly
// (elements must already be independently owned; no copy is made of the
// slice header's backing contents beyond what the caller already built).
func NewArrayFrom(elems []Value, stats *AllocStats) Value {
	stats.recordAlloc()
	return Value{Tag: TagArray, Arr: &ArrayObj{Elems: elems}}
}

// IsNil reports whether v is the null value.
func (v Value) IsNil() bool { return v.Tag == TagNull }

// IsNumeric reports whether v is integer, big_integer, or float.
func (v Value) IsNumeric() bool {
	return v.Tag == TagInt || v.Tag == TagBigInt || v.Tag == TagFloat
}

// Clone deep-copies v: scalars are bit-copied, strings and arrays get fresh
// owned storage (arrays recursively). This is the contract LOAD_VAR and DUP
// rely on.
func (v Value) Clone(stats *AllocStats) Value {
	switch v.Tag {
	case TagString:
		if v.Str == nil {
			return v
		}
		return NewString(v.Str.Bytes, stats)
	case TagArray:
		if v.Arr == nil {
			return v
		}
		cloned := make([]Value, len(v.Arr.Elems))
		for i, elem := range v.Arr.Elems {
			cloned[i] = elem.Clone(stats)
		}
		return NewArrayFrom(cloned, stats)
	default:
		return v
	}
}

// Release frees the heap storage owned by v, recursing into array elements.
// It is safe to call on scalars (a no-op) and is guarded against
// accidental double-release of the same object, though the VM's own
// discipline never releases a live Value twice.
func (v Value) Release(stats *AllocStats) {
	switch v.Tag {
	case TagString:
		if v.Str == nil || v.Str.Released {
			return
		}
		v.Str.Released = true
		stats.recordRelease()
	case TagArray:
		if v.Arr == nil || v.Arr.Released {
			return
		}
		v.Arr.Released = true
		for _, elem := range v.Arr.Elems {
			elem.Release(stats)
		}
		stats.recordRelease()
	}
}

// Truthy projects v to boolean per the truthiness rules: nonzero numerics,
// non-empty string/array, true boolean are truthy; null and empty
// aggregates are falsy.
func (v Value) Truthy() bool {
	switch v.Tag {
	case TagInt:
		return v.I != 0
	case TagBigInt:
		return !v.Big.IsZero()
	case TagFloat:
		return v.F != 0
	case TagString:
		return v.Str != nil && len(v.Str.Bytes) > 0
	case TagBool:
		return v.Bl
	case TagArray:
		return v.Arr != nil && len(v.Arr.Elems) > 0
	case TagNull:
		return false
	default:
		return false
	}
}

// GoString supports %#v-style debugging without leaking raw pointers.
func (v Value) GoString() string {
	return fmt.Sprintf("Value{%s}", Render(v))
}
