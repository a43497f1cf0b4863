package compiler

import (
	"errors"
	"slices"
)

var errSealed = errors.New("instruction stream is sealed")

// FuncInfo describes one compiled function in the stream.
type FuncInfo struct {
	Name    string
	Label   Label
	Arity   int
	Returns int
	Path    string
}

// Stream is the ordered output of one Compile run. Chunks are appended while
// compiling; once sealed the stream is read-only.
type Stream struct {
	Entry     FuncInfo
	Functions []FuncInfo // discovery order, entry first

	instrs []Instruction
	sealed bool
}

func (s *Stream) append(chunk ...Instruction) error {
	if s.sealed {
		return errSealed
	}
	s.instrs = append(s.instrs, chunk...)
	return nil
}

func (s *Stream) seal() { s.sealed = true }

// Sealed reports whether compilation finished.
func (s *Stream) Sealed() bool { return s.sealed }

// Instructions returns a copy of the instruction list, without the prelude.
func (s *Stream) Instructions() []Instruction { return slices.Clone(s.instrs) }

func (s *Stream) Len() int { return len(s.instrs) }

// Prelude is the boot sequence placed before the stream: read the entry
// arguments from public input, call the entry, write its result, halt.
func (s *Stream) Prelude() []Instruction {
	out := make([]Instruction, 0, s.Entry.Arity+3)
	for range s.Entry.Arity {
		out = append(out, opN(OpReadIO, 1))
	}
	out = append(out, call(s.Entry.Label))
	if s.Entry.Returns > 0 {
		out = append(out, opN(OpWriteIO, 1))
	}
	return append(out, op(OpHalt))
}

// Count returns how many instructions with opcode o the stream holds.
func (s *Stream) Count(o Op) int {
	n := 0
	for _, in := range s.instrs {
		if in.Op == o {
			n++
		}
	}
	return n
}

// DefinedLabels returns every label defined in the stream, in order.
func (s *Stream) DefinedLabels() []Label {
	var out []Label
	for _, in := range s.instrs {
		if in.Op == OpLabel {
			out = append(out, in.Target)
		}
	}
	return out
}
