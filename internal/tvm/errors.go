package tvm

import (
	"errors"
	"fmt"

	"ashlang/internal/diag"
)

// SyntaxError reports assembly text that does not parse.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("asm %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (e *SyntaxError) Code() diag.Code { return diag.AsmSyntax }

// LinkError reports labels that are undefined or defined twice.
type LinkError struct {
	Label string
	Line  int
	Msg   string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("asm %d: label %s %s", e.Line, e.Label, e.Msg)
}

func (e *LinkError) Code() diag.Code { return diag.AsmLink }

// TrapKind classifies a runtime failure of the engine.
type TrapKind uint8

const (
	TrapAssert TrapKind = iota + 1
	TrapInverseOfZero
	TrapNotU32
	TrapPublicInputExhausted
	TrapSecretInputExhausted
	TrapOpStackUnderflow
	TrapJumpStackEmpty
	TrapIPOutOfBounds
	TrapCycleLimit
)

var trapNames = map[TrapKind]string{
	TrapAssert:               "assertion failed",
	TrapInverseOfZero:        "inverse of zero",
	TrapNotU32:               "operand is not u32",
	TrapPublicInputExhausted: "public input exhausted",
	TrapSecretInputExhausted: "secret input exhausted",
	TrapOpStackUnderflow:     "op stack underflow",
	TrapJumpStackEmpty:       "jump stack is empty",
	TrapIPOutOfBounds:        "instruction pointer out of bounds",
	TrapCycleLimit:           "cycle limit exceeded",
}

func (k TrapKind) String() string {
	if s, ok := trapNames[k]; ok {
		return s
	}
	return "unknown trap"
}

// TrapError is an execution failure at a given instruction.
type TrapError struct {
	Kind  TrapKind
	IP    uint64
	Cycle uint64
	Instr string
}

func (e *TrapError) Error() string {
	if e.Instr == "" {
		return fmt.Sprintf("vm trap at ip %d (cycle %d): %s", e.IP, e.Cycle, e.Kind)
	}
	return fmt.Sprintf("vm trap at ip %d (cycle %d, %s): %s", e.IP, e.Cycle, e.Instr, e.Kind)
}

// IsTrap reports whether err carries a trap of the given kind.
func IsTrap(err error, kind TrapKind) bool {
	var te *TrapError
	return errors.As(err, &te) && te.Kind == kind
}
