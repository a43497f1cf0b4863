package tvm

// Opcode identifies one machine instruction.
type Opcode uint8

const (
	OpInvalid Opcode = iota
	OpPop
	OpPush
	OpDivine
	OpDup
	OpSwap
	OpNop
	OpSkiz
	OpCall
	OpReturn
	OpRecurse
	OpAssert
	OpHalt
	OpAdd
	OpMul
	OpInvert
	OpEq
	OpLt
	OpReadIO
	OpWriteIO
)

// ArgKind describes the argument an instruction takes.
type ArgKind uint8

const (
	ArgNone ArgKind = iota
	// ArgCount is a small element count, pop/read_io/write_io/divine.
	ArgCount
	// ArgStackIndex is a stack register index, dup/swap.
	ArgStackIndex
	// ArgField is a canonical field literal, push.
	ArgField
	// ArgLabel is a jump target, call.
	ArgLabel
)

type opInfo struct {
	name string
	arg  ArgKind
	min  uint64
	max  uint64
	// code is the word the opcode encodes to in the program digest.
	code uint64
}

var opTable = [...]opInfo{
	OpInvalid: {name: "?"},
	OpPop:     {name: "pop", arg: ArgCount, min: 1, max: 5, code: 3},
	OpPush:    {name: "push", arg: ArgField, code: 1},
	OpDivine:  {name: "divine", arg: ArgCount, min: 1, max: 5, code: 9},
	OpDup:     {name: "dup", arg: ArgStackIndex, min: 0, max: 15, code: 17},
	OpSwap:    {name: "swap", arg: ArgStackIndex, min: 1, max: 15, code: 25},
	OpNop:     {name: "nop", code: 8},
	OpSkiz:    {name: "skiz", code: 2},
	OpCall:    {name: "call", arg: ArgLabel, code: 49},
	OpReturn:  {name: "return", code: 16},
	OpRecurse: {name: "recurse", code: 24},
	OpAssert:  {name: "assert", code: 10},
	OpHalt:    {name: "halt", code: 0},
	OpAdd:     {name: "add", code: 42},
	OpMul:     {name: "mul", code: 50},
	OpInvert:  {name: "invert", code: 64},
	OpEq:      {name: "eq", code: 18},
	OpLt:      {name: "lt", code: 6},
	OpReadIO:  {name: "read_io", arg: ArgCount, min: 1, max: 5, code: 41},
	OpWriteIO: {name: "write_io", arg: ArgCount, min: 1, max: 5, code: 11},
}

var byName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opTable))
	for i := range opTable {
		op := Opcode(i)
		if op == OpInvalid {
			continue
		}
		m[opTable[i].name] = op
	}
	return m
}()

// Lookup finds the opcode for a mnemonic.
func Lookup(name string) (Opcode, bool) {
	op, ok := byName[name]
	return op, ok
}

func (op Opcode) info() opInfo {
	if int(op) < len(opTable) {
		return opTable[op]
	}
	return opTable[OpInvalid]
}

func (op Opcode) String() string { return op.info().name }

// Arg reports which argument the opcode expects.
func (op Opcode) Arg() ArgKind { return op.info().arg }

// Size is the number of program words the instruction occupies.
func (op Opcode) Size() uint64 {
	if op.Arg() == ArgNone {
		return 1
	}
	return 2
}
