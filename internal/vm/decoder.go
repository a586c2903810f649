package vm

import (
	"encoding/binary"
	"math"
)

// Decoder reads primitive wire values from a bytecode slice at a moving
// instruction pointer, per the wire format: big-endian 8-byte integers and
// floats, one-byte-length-prefixed strings. It never retains the source
// slice for string payloads — each decoded string gets freshly owned
// storage.
type Decoder struct {
	code []byte
	ip   int
}

// NewDecoder wraps code starting at instruction pointer 0.
func NewDecoder(code []byte) *Decoder {
	return &Decoder{code: code}
}

// IP returns the current instruction pointer.
func (d *Decoder) IP() int { return d.ip }

// SetIP repositions the instruction pointer, e.g. for JMP/CALL/RET.
func (d *Decoder) SetIP(ip int) { d.ip = ip }

// Len returns the length of the underlying code slice.
func (d *Decoder) Len() int { return len(d.code) }

// Done reports whether the instruction pointer has reached the end of code.
func (d *Decoder) Done() bool { return d.ip >= len(d.code) }

// ReadU8 reads one byte and advances the instruction pointer by 1.
func (d *Decoder) ReadU8() (byte, error) {
	if d.ip >= len(d.code) {
		return 0, &VMError{Kind: ErrInvalidOpcode, Message: "decode: truncated opcode byte"}
	}
	b := d.code[d.ip]
	d.ip++
	return b, nil
}

// ReadU64 reads eight big-endian bytes, advances by 8, and returns their
// two's-complement signed reinterpretation. ReadRawU64 returns the unsigned
// bits instead.
func (d *Decoder) ReadU64() (int64, error) {
	if d.ip+8 > len(d.code) {
		return 0, &VMError{Kind: ErrInvalidOpcode, Message: "decode: truncated u64 operand"}
	}
	bits := binary.BigEndian.Uint64(d.code[d.ip : d.ip+8])
	d.ip += 8
	return int64(bits), nil
}

// ReadRawU64 reads eight big-endian bytes as an unsigned 64-bit value
// without a signed reinterpretation, used by jump/call targets.
func (d *Decoder) ReadRawU64() (uint64, error) {
	if d.ip+8 > len(d.code) {
		return 0, &VMError{Kind: ErrInvalidOpcode, Message: "decode: truncated u64 operand"}
	}
	bits := binary.BigEndian.Uint64(d.code[d.ip : d.ip+8])
	d.ip += 8
	return bits, nil
}

// ReadF64 reads eight big-endian bytes as an IEEE-754 double.
func (d *Decoder) ReadF64() (float64, error) {
	if d.ip+8 > len(d.code) {
		return 0, &VMError{Kind: ErrInvalidOpcode, Message: "decode: truncated f64 operand"}
	}
	bits := binary.BigEndian.Uint64(d.code[d.ip : d.ip+8])
	d.ip += 8
	return math.Float64frombits(bits), nil
}

// ReadString reads a one-byte length prefix followed by that many payload
// bytes, copying the payload into a freshly owned buffer.
func (d *Decoder) ReadString() ([]byte, error) {
	if d.ip >= len(d.code) {
		return nil, &VMError{Kind: ErrInvalidOpcode, Message: "decode: truncated string length"}
	}
	length := int(d.code[d.ip])
	d.ip++
	if d.ip+length > len(d.code) {
		return nil, &VMError{Kind: ErrInvalidOpcode, Message: "decode: truncated string payload"}
	}
	owned := make([]byte, length)
	copy(owned, d.code[d.ip:d.ip+length])
	d.ip += length
	return owned, nil
}
