package vm

// OpCode is a single instruction's opcode byte. The numeric assignments
// below are part of the wire contract: a compiler and this VM must agree
// on them byte-for-byte.
type OpCode byte

const (
	// OpPrint pops a value, renders it, and writes the rendering followed
	// by a newline to the output sink.
	// Stack: [v] -> []
	OpPrint OpCode = 1

	// OpLoadConst pushes an owned copy of a length-prefixed string
	// immediate.
	// Stack: [] -> [string]
	OpLoadConst OpCode = 2

	// OpLoadInt pushes the signed 64-bit reinterpretation of an 8-byte
	// big-endian immediate.
	// Stack: [] -> [integer]
	OpLoadInt OpCode = 3

	// OpLoopStart reads two u64 immediates (start, end) and begins the
	// structured loop; see Execute's LOOP_START handling.
	OpLoopStart OpCode = 4

	// OpLoopEnd marks the end of a structured loop body.
	OpLoopEnd OpCode = 5

	// OpLoadVar pushes a deep copy of a named variable (frame-locals then
	// globals), or integer 0 if unbound.
	// Stack: [] -> [value]
	OpLoadVar OpCode = 6

	// OpStdin reads one line from standard input (up to 1024 bytes,
	// delimiter excluded) and pushes it as an owned string.
	// Stack: [] -> [string]
	OpStdin OpCode = 7

	// OpStore pops a value and binds it to a named variable (frame-locals
	// if a frame is active, else globals), releasing any prior binding.
	// Stack: [v] -> []
	OpStore OpCode = 8

	// OpAdd pops two values and pushes their sum under the numeric
	// promotion lattice, or a string concatenation.
	// Stack: [a, b] -> [a + b]
	OpAdd OpCode = 9

	// OpSub pops two values and pushes their numeric difference.
	// Stack: [a, b] -> [a - b]
	OpSub OpCode = 10

	// OpMul pops two values and pushes their numeric product.
	// Stack: [a, b] -> [a * b]
	OpMul OpCode = 11

	// OpDiv pops two values and pushes their truncating numeric quotient.
	// Stack: [a, b] -> [a / b]
	OpDiv OpCode = 12

	// OpMod pops two values and pushes the numeric remainder (sign of the
	// dividend).
	// Stack: [a, b] -> [a mod b]
	OpMod OpCode = 13

	// OpEq pops two values and pushes their equality.
	// Stack: [a, b] -> [a == b]
	OpEq OpCode = 14

	// OpNe pops two values and pushes their inequality.
	// Stack: [a, b] -> [a != b]
	OpNe OpCode = 15

	// OpLt pops two values and pushes a < b (false for non-numeric
	// operands).
	OpLt OpCode = 16

	// OpLe pops two values and pushes a <= b.
	OpLe OpCode = 17

	// OpGt pops two values and pushes a > b.
	OpGt OpCode = 18

	// OpGe pops two values and pushes a >= b.
	OpGe OpCode = 19

	// OpAnd pops two values and pushes the boolean AND of their
	// truthiness. Both sides are always evaluated.
	OpAnd OpCode = 20

	// OpOr pops two values and pushes the boolean OR of their truthiness.
	OpOr OpCode = 21

	// OpNot pops one value and pushes the negation of its truthiness.
	OpNot OpCode = 22

	// OpJmp reads a u64 target and sets ip to it unconditionally.
	OpJmp OpCode = 23

	// OpJmpIfFalse pops a condition and jumps to a u64 target if falsy.
	OpJmpIfFalse OpCode = 24

	// OpJmpIfTrue pops a condition and jumps to a u64 target if truthy.
	OpJmpIfTrue OpCode = 25

	// OpCall reads a u64 target, pushes a call frame capturing the return
	// address, and jumps.
	OpCall OpCode = 26

	// OpRet pops the top call frame and resumes at its return address, or
	// ends execution if no frame is active.
	OpRet OpCode = 27

	// OpLoadFloat pushes an 8-byte big-endian IEEE-754 double immediate.
	OpLoadFloat OpCode = 28

	// OpCastInt pops a value and pushes it coerced to integer (or
	// big_integer if the source already doesn't fit signed 64-bit).
	OpCastInt OpCode = 29

	// OpCastFloat pops a value and pushes it coerced to float.
	OpCastFloat OpCode = 30

	// OpArrayNew pops a size (coerced to int) and pushes a new array of
	// that length, filled with null.
	OpArrayNew OpCode = 31

	// OpArrayGet is reserved but unimplemented; it always raises
	// InvalidOpcode.
	OpArrayGet OpCode = 32

	// OpArraySet is reserved but unimplemented; it always raises
	// InvalidOpcode.
	OpArraySet OpCode = 33

	// OpArrayLen pops an array or string and pushes its element/byte
	// count.
	OpArrayLen OpCode = 34

	// OpDup duplicates the top of stack: scalars bit-copy, strings/arrays
	// deep-copy.
	OpDup OpCode = 35

	// OpSwap exchanges the top two stack values.
	OpSwap OpCode = 36

	// OpPop pops and releases the top of stack.
	OpPop OpCode = 37

	// OpLoadNull pushes the null value.
	OpLoadNull OpCode = 38

	// OpIsNull pops a value and pushes whether it was null.
	OpIsNull OpCode = 39

	// OpLoadBool pushes boolean(immediate != 0) from an 8-byte immediate.
	OpLoadBool OpCode = 40

	// OpBuildList pops a u64 count of values (top becomes the last
	// element) and pushes them as an array.
	OpBuildList OpCode = 41

	// OpBuildTuple behaves identically to OpBuildList.
	OpBuildTuple OpCode = 42

	// OpBuildDict pops count key/value pairs (2*count values), releases
	// them, and pushes
	// an empty array placeholder (see spec §9 on the dictionary value).
	OpBuildDict OpCode = 43
)

var opCodeNames = map[OpCode]string{
	OpPrint:      "PRINT",
	OpLoadConst:  "LOAD_CONST",
	OpLoadInt:    "LOAD_INT",
	OpLoopStart:  "LOOP_START",
	OpLoopEnd:    "LOOP_END",
	OpLoadVar:    "LOAD_VAR",
	OpStdin:      "STDIN",
	OpStore:      "STORE",
	OpAdd:        "ADD",
	OpSub:        "SUB",
	OpMul:        "MUL",
	OpDiv:        "DIV",
	OpMod:        "MOD",
	OpEq:         "EQ",
	OpNe:         "NE",
	OpLt:         "LT",
	OpLe:         "LE",
	OpGt:         "GT",
	OpGe:         "GE",
	OpAnd:        "AND",
	OpOr:         "OR",
	OpNot:        "NOT",
	OpJmp:        "JMP",
	OpJmpIfFalse: "JMP_IF_FALSE",
	OpJmpIfTrue:  "JMP_IF_TRUE",
	OpCall:       "CALL",
	OpRet:        "RET",
	OpLoadFloat:  "LOAD_FLOAT",
	OpCastInt:    "CAST_INT",
	OpCastFloat:  "CAST_FLOAT",
	OpArrayNew:   "ARRAY_NEW",
	OpArrayGet:   "ARRAY_GET",
	OpArraySet:   "ARRAY_SET",
	OpArrayLen:   "ARRAY_LEN",
	OpDup:        "DUP",
	OpSwap:       "SWAP",
	OpPop:        "POP",
	OpLoadNull:   "LOAD_NULL",
	OpIsNull:     "IS_NULL",
	OpLoadBool:   "LOAD_BOOL",
	OpBuildList:  "BUILD_LIST",
	OpBuildTuple: "BUILD_TUPLE",
	OpBuildDict:  "BUILD_DICT",
}

// String renders the opcode's mnemonic, or "UNKNOWN" for unassigned bytes.
func (op OpCode) String() string {
	if name, ok := opCodeNames[op]; ok {
		return name
	}
	return "UNKNOWN"
}

// reservedUnimplemented reports opcodes that occupy a wire slot but are not
// implemented, per §6.1: encountering them raises InvalidOpcode just like an
// unassigned byte.
func reservedUnimplemented(op OpCode) bool {
	return op == OpArrayGet || op == OpArraySet
}
