package vm

import (
	"fmt"
	"io"
)

// Disassembler prints a human-readable instruction listing for a code
// slice, for --trace/--disasm style tooling. It walks the same decode
// rules as Execute but never mutates VM state.
type Disassembler struct {
	writer io.Writer
}

// NewDisassembler constructs a disassembler writing to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{writer: w}
}

// Disassemble prints every instruction in code in order, one per line,
// prefixed by its byte offset.
func (dis *Disassembler) Disassemble(code []byte) error {
	d := NewDecoder(code)
	for !d.Done() {
		offset := d.IP()
		opByte, err := d.ReadU8()
		if err != nil {
			return err
		}
		op := OpCode(opByte)

		operand, err := dis.readOperand(d, op)
		if err != nil {
			return err
		}

		if operand == "" {
			fmt.Fprintf(dis.writer, "%04d  %s\n", offset, op)
		} else {
			fmt.Fprintf(dis.writer, "%04d  %-14s %s\n", offset, op, operand)
		}
	}
	return nil
}

func (dis *Disassembler) readOperand(d *Decoder, op OpCode) (string, error) {
	switch op {
	case OpLoadInt, OpLoadBool:
		n, err := d.ReadU64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", n), nil

	case OpLoadFloat:
		f, err := d.ReadF64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%g", f), nil

	case OpLoadConst, OpLoadVar, OpStore:
		s, err := d.ReadString()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%q", s), nil

	case OpJmp, OpJmpIfFalse, OpJmpIfTrue, OpCall:
		target, err := d.ReadRawU64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("-> %04d", target), nil

	case OpLoopStart:
		start, err := d.ReadRawU64()
		if err != nil {
			return "", err
		}
		end, err := d.ReadRawU64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d..%d", start, end), nil

	case OpBuildList, OpBuildTuple, OpBuildDict:
		count, err := d.ReadRawU64()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("count=%d", count), nil

	default:
		return "", nil
	}
}
