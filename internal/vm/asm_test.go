package vm

import (
	"encoding/binary"
	"math"
)

// asm is a tiny big-endian bytecode assembler used only by tests, mirroring
// the wire format the Decoder reads: single opcode bytes, 8-byte big-endian
// integer/float immediates, one-byte-length-prefixed strings.
type asm struct {
	buf []byte
}

func newAsm() *asm { return &asm{} }

func (a *asm) op(o OpCode) *asm {
	a.buf = append(a.buf, byte(o))
	return a
}

func (a *asm) u64(n uint64) *asm {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], n)
	a.buf = append(a.buf, b[:]...)
	return a
}

func (a *asm) i64(n int64) *asm { return a.u64(uint64(n)) }

func (a *asm) f64(f float64) *asm { return a.u64(math.Float64bits(f)) }

func (a *asm) str(s string) *asm {
	a.buf = append(a.buf, byte(len(s)))
	a.buf = append(a.buf, []byte(s)...)
	return a
}

func (a *asm) bytes() []byte { return a.buf }

// loadInt, loadFloat, loadBool, loadConst, loadVar, store chain full
// instructions for readability at call sites.
func (a *asm) loadInt(n int64) *asm    { return a.op(OpLoadInt).i64(n) }
func (a *asm) loadFloat(f float64) *asm { return a.op(OpLoadFloat).f64(f) }
func (a *asm) loadBool(b bool) *asm {
	var n int64
	if b {
		n = 1
	}
	return a.op(OpLoadBool).i64(n)
}
func (a *asm) loadConst(s string) *asm { return a.op(OpLoadConst).str(s) }
func (a *asm) loadVar(name string) *asm { return a.op(OpLoadVar).str(name) }
func (a *asm) store(name string) *asm   { return a.op(OpStore).str(name) }
func (a *asm) loadNull() *asm           { return a.op(OpLoadNull) }
func (a *asm) jmp(target uint64) *asm   { return a.op(OpJmp).u64(target) }
