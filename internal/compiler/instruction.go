package compiler

import (
	"strconv"

	"ashlang/internal/field"
)

type Op uint8

const (
	// OpLabel is a pseudo-op marking the position of Target.
	OpLabel Op = iota
	OpPush
	OpPop
	OpDup
	OpSwap
	OpAdd
	OpMul
	OpInvert
	OpEq
	OpLt
	OpSkiz
	OpCall
	OpReturn
	OpRecurse
	OpAssert
	OpHalt
	OpReadIO
	OpWriteIO
	OpDivine
	OpNop
)

var mnemonics = [...]string{
	OpLabel:   "",
	OpPush:    "push",
	OpPop:     "pop",
	OpDup:     "dup",
	OpSwap:    "swap",
	OpAdd:     "add",
	OpMul:     "mul",
	OpInvert:  "invert",
	OpEq:      "eq",
	OpLt:      "lt",
	OpSkiz:    "skiz",
	OpCall:    "call",
	OpReturn:  "return",
	OpRecurse: "recurse",
	OpAssert:  "assert",
	OpHalt:    "halt",
	OpReadIO:  "read_io",
	OpWriteIO: "write_io",
	OpDivine:  "divine",
	OpNop:     "nop",
}

// Mnemonic returns the assembly name of op.
func (op Op) Mnemonic() string {
	if int(op) < len(mnemonics) {
		return mnemonics[op]
	}
	return "?"
}

// Instruction is one element of an Instruction Stream.
type Instruction struct {
	Op     Op
	Value  field.Element // OpPush
	N      uint8         // OpPop, OpDup, OpSwap, OpReadIO, OpWriteIO, OpDivine
	Target Label         // OpCall, OpLabel
}

func (in Instruction) String() string {
	switch in.Op {
	case OpLabel:
		return in.Target.String() + ":"
	case OpPush:
		return "push " + in.Value.String()
	case OpPop, OpDup, OpSwap, OpReadIO, OpWriteIO, OpDivine:
		return in.Op.Mnemonic() + " " + strconv.Itoa(int(in.N))
	case OpCall:
		return "call " + in.Target.String()
	default:
		return in.Op.Mnemonic()
	}
}

// stackEffect is the net change of the operational stack height.
// Calls are accounted for by the code generator, which knows the callee.
func (in Instruction) stackEffect() int {
	switch in.Op {
	case OpPush, OpDup:
		return 1
	case OpPop, OpWriteIO:
		return -int(in.N)
	case OpReadIO, OpDivine:
		return int(in.N)
	case OpAdd, OpMul, OpEq, OpLt, OpSkiz, OpAssert:
		return -1
	default:
		return 0
	}
}

func push(v field.Element) Instruction { return Instruction{Op: OpPush, Value: v} }
func op(o Op) Instruction              { return Instruction{Op: o} }
func opN(o Op, n int) Instruction      { return Instruction{Op: o, N: uint8(n)} }
func call(l Label) Instruction         { return Instruction{Op: OpCall, Target: l} }
func labelDef(l Label) Instruction     { return Instruction{Op: OpLabel, Target: l} }
