package vm

import (
	"bytes"
)

// Execute runs one code slice to completion: it decodes and dispatches
// instructions sequentially from instruction pointer 0 until the pointer
// reaches the end of code or a RET fires with no active call frame, at
// which point control returns to the caller (the top-level caller for the
// outermost invocation, or the LOOP_START iteration driver for a
// recursive invocation over a loop body — see runLoop).
//
// On any error, Execute returns immediately without releasing state; the
// caller (ultimately the top-level Run) is responsible for calling
// Teardown exactly once to guarantee leak-freedom on every exit path.
func (vm *VM) Execute(code []byte) error {
	d := NewDecoder(code)

	for !d.Done() {
		opByte, err := d.ReadU8()
		if err != nil {
			return err
		}
		op := OpCode(opByte)

		if reservedUnimplemented(op) {
			return newError(ErrInvalidOpcode, "opcode %s is reserved but unimplemented", op)
		}

		switch op {
		case OpLoadInt:
			n, err := d.ReadU64()
			if err != nil {
				return err
			}
			vm.stack.Push(IntValue(n))

		case OpLoadFloat:
			f, err := d.ReadF64()
			if err != nil {
				return err
			}
			vm.stack.Push(FloatValue(f))

		case OpLoadBool:
			n, err := d.ReadU64()
			if err != nil {
				return err
			}
			vm.stack.Push(BoolValue(n != 0))

		case OpLoadConst:
			payload, err := d.ReadString()
			if err != nil {
				return err
			}
			vm.stack.Push(NewString(payload, &vm.stats))

		case OpLoadNull:
			vm.stack.Push(NilValue())

		case OpLoadVar:
			name, err := d.ReadString()
			if err != nil {
				return err
			}
			if v, ok := vm.lookupVar(string(name)); ok {
				vm.stack.Push(v.Clone(&vm.stats))
			} else {
				vm.stack.Push(IntValue(0))
			}

		case OpStore:
			name, err := d.ReadString()
			if err != nil {
				return err
			}
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			vm.storeVar(string(name), v)

		case OpDup:
			top, err := vm.stack.Peek()
			if err != nil {
				return err
			}
			vm.stack.Push(top.Clone(&vm.stats))

		case OpSwap:
			if err := vm.stack.Swap(); err != nil {
				return err
			}

		case OpPop:
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			v.Release(&vm.stats)

		case OpPrint:
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			rendered := Render(v)
			v.Release(&vm.stats)
			if _, err := vm.output.Write([]byte(rendered + "\n")); err != nil {
				return newError(ErrOutOfMemory, "PRINT: write failed: %v", err)
			}

		case OpStdin:
			line, err := vm.readStdinLine()
			if err != nil {
				return err
			}
			vm.stack.Push(NewString(line, &vm.stats))

		case OpAdd, OpSub, OpMul, OpDiv, OpMod:
			if err := vm.execBinaryArith(op); err != nil {
				return err
			}

		case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
			if err := vm.execCompare(op); err != nil {
				return err
			}

		case OpAnd, OpOr:
			if err := vm.execLogicalBinary(op); err != nil {
				return err
			}

		case OpNot:
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			result := !v.Truthy()
			v.Release(&vm.stats)
			vm.stack.Push(BoolValue(result))

		case OpIsNull:
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			result := v.IsNil()
			v.Release(&vm.stats)
			vm.stack.Push(BoolValue(result))

		case OpJmp:
			target, err := d.ReadRawU64()
			if err != nil {
				return err
			}
			if err := vm.checkJumpTarget(target, len(code)); err != nil {
				return err
			}
			d.SetIP(int(target))

		case OpJmpIfFalse, OpJmpIfTrue:
			target, err := d.ReadRawU64()
			if err != nil {
				return err
			}
			cond, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			truthy := cond.Truthy()
			cond.Release(&vm.stats)
			shouldJump := (op == OpJmpIfFalse && !truthy) || (op == OpJmpIfTrue && truthy)
			if shouldJump {
				if err := vm.checkJumpTarget(target, len(code)); err != nil {
					return err
				}
				d.SetIP(int(target))
			}

		case OpCall:
			target, err := d.ReadRawU64()
			if err != nil {
				return err
			}
			if err := vm.checkJumpTarget(target, len(code)); err != nil {
				return err
			}
			vm.frames = append(vm.frames, newCallFrame(d.IP(), vm.stack.Len()))
			d.SetIP(int(target))

		case OpRet:
			if len(vm.frames) == 0 {
				return nil
			}
			top := vm.frames[len(vm.frames)-1]
			top.Locals.Drain(&vm.stats)
			vm.frames = vm.frames[:len(vm.frames)-1]
			d.SetIP(top.ReturnIP)

		case OpLoopStart:
			if err := vm.runLoop(d, code); err != nil {
				return err
			}

		case OpLoopEnd:
			// runLoop hands a recursive Execute a body slice that stops
			// before its own terminator, so this arm is reached only by a
			// LOOP_END byte with no matching LOOP_START; it ends the current
			// invocation.
			return nil

		case OpArrayNew:
			sizeVal, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			size, err := toArraySize(sizeVal)
			sizeVal.Release(&vm.stats)
			if err != nil {
				return err
			}
			vm.stack.Push(NewArray(size, &vm.stats))

		case OpArrayLen:
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			length, err := arrayLen(v)
			v.Release(&vm.stats)
			if err != nil {
				return err
			}
			vm.stack.Push(IntValue(int64(length)))

		case OpBuildList, OpBuildTuple:
			count, err := d.ReadRawU64()
			if err != nil {
				return err
			}
			elems, err := vm.popN(int(count))
			if err != nil {
				return err
			}
			vm.stack.Push(NewArrayFrom(elems, &vm.stats))

		case OpBuildDict:
			count, err := d.ReadRawU64()
			if err != nil {
				return err
			}
			pairs, err := vm.popN(int(count) * 2)
			if err != nil {
				return err
			}
			for _, v := range pairs {
				v.Release(&vm.stats)
			}
			vm.stack.Push(NewArray(0, &vm.stats))

		case OpCastInt:
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			result, err := ToInt(v)
			v.Release(&vm.stats)
			if err != nil {
				return err
			}
			vm.stack.Push(result)

		case OpCastFloat:
			v, err := vm.stack.Pop()
			if err != nil {
				return err
			}
			result, err := ToFloat(v)
			v.Release(&vm.stats)
			if err != nil {
				return err
			}
			vm.stack.Push(result)

		default:
			return newError(ErrInvalidOpcode, "unrecognized opcode byte %d", opByte)
		}
	}

	return nil
}

// checkJumpTarget enforces the §4.4 bounds contract shared by JMP,
// JMP_IF_FALSE, JMP_IF_TRUE, and CALL: the target may be equal to the code
// length (falling off the end on the next iteration) but not beyond it.
func (vm *VM) checkJumpTarget(target uint64, codeLen int) error {
	if target > uint64(codeLen) {
		return newError(ErrInvalidJump, "jump target %d exceeds code length %d", target, codeLen)
	}
	return nil
}

// popN pops count values off the stack and returns them in source (push)
// order: the first popped value (the most recently pushed) lands at the
// last index, matching BUILD_LIST/BUILD_TUPLE's "top becomes the last
// element" contract.
func (vm *VM) popN(count int) ([]Value, error) {
	if count < 0 {
		return nil, newError(ErrInvalidCast, "negative element count %d", count)
	}
	elems := make([]Value, count)
	for i := count - 1; i >= 0; i-- {
		v, err := vm.stack.Pop()
		if err != nil {
			for _, already := range elems[i+1:] {
				already.Release(&vm.stats)
			}
			return nil, err
		}
		elems[i] = v
	}
	return elems, nil
}

func arrayLen(v Value) (int, error) {
	switch v.Tag {
	case TagArray:
		if v.Arr == nil {
			return 0, nil
		}
		return len(v.Arr.Elems), nil
	case TagString:
		if v.Str == nil {
			return 0, nil
		}
		return len(v.Str.Bytes), nil
	default:
		return 0, newError(ErrInvalidCast, "ARRAY_LEN: %s has no length", v.Tag)
	}
}

func (vm *VM) execBinaryArith(op OpCode) error {
	b, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	a, err := vm.stack.Pop()
	if err != nil {
		b.Release(&vm.stats)
		return err
	}

	var result Value
	switch op {
	case OpAdd:
		result, err = Add(a, b, &vm.stats)
	case OpSub:
		result, err = Sub(a, b)
	case OpMul:
		result, err = Mul(a, b)
	case OpDiv:
		result, err = Div(a, b)
	case OpMod:
		result, err = Mod(a, b)
	}
	a.Release(&vm.stats)
	b.Release(&vm.stats)
	if err != nil {
		return err
	}
	vm.stack.Push(result)
	return nil
}

func (vm *VM) execCompare(op OpCode) error {
	b, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	a, err := vm.stack.Pop()
	if err != nil {
		b.Release(&vm.stats)
		return err
	}

	var result bool
	switch op {
	case OpEq:
		result = Eq(a, b)
	case OpNe:
		result = Ne(a, b)
	case OpLt:
		result = Lt(a, b)
	case OpLe:
		result = Le(a, b)
	case OpGt:
		result = Gt(a, b)
	case OpGe:
		result = Ge(a, b)
	}
	a.Release(&vm.stats)
	b.Release(&vm.stats)
	vm.stack.Push(BoolValue(result))
	return nil
}

func (vm *VM) execLogicalBinary(op OpCode) error {
	b, err := vm.stack.Pop()
	if err != nil {
		return err
	}
	a, err := vm.stack.Pop()
	if err != nil {
		b.Release(&vm.stats)
		return err
	}

	var result bool
	if op == OpAnd {
		result = a.Truthy() && b.Truthy()
	} else {
		result = a.Truthy() || b.Truthy()
	}
	a.Release(&vm.stats)
	b.Release(&vm.stats)
	vm.stack.Push(BoolValue(result))
	return nil
}

// readStdinLine reads the next input line, the trailing newline excluded,
// and keeps at most vm.stdinBufferSize bytes of it (maxStdinLine unless a
// host raised it via WithStdinBufferSize).
func (vm *VM) readStdinLine() ([]byte, error) {
	raw, err := vm.stdin.ReadBytes('\n')
	if err != nil && len(raw) == 0 {
		// EOF with nothing read: treat as an empty line, matching a
		// closed/exhausted stdin without failing the program.
		return nil, nil
	}
	line := bytes.TrimSuffix(raw, []byte("\n"))
	if len(line) > vm.stdinBufferSize {
		line = line[:vm.stdinBufferSize]
	}
	return line, nil
}
