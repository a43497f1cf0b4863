package tvm

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"fortio.org/safecast"
	"golang.org/x/crypto/sha3"

	"ashlang/internal/field"
)

// Digest is a SHA3-256 hash.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Instruction is a linked instruction with its word address.
type Instruction struct {
	Addr   uint64
	Op     Opcode
	Arg    field.Element
	Target string // label name for call, kept for rendering
	Line   int
}

func (in Instruction) String() string {
	switch in.Op.Arg() {
	case ArgNone:
		return in.Op.String()
	case ArgLabel:
		return in.Op.String() + " " + in.Target
	default:
		return in.Op.String() + " " + in.Arg.String()
	}
}

// Program is linked, executable code.
type Program struct {
	Instructions []Instruction
	Labels       map[string]uint64
	Words        []field.Element

	// at maps a word address to its instruction index; argument words map to -1.
	at     []int
	digest Digest
}

// Digest identifies the program by hashing its encoded words.
func (p *Program) Digest() Digest { return p.digest }

// Len is the program size in words.
func (p *Program) Len() int { return len(p.Words) }

// Link resolves label references to word addresses.
func Link(lines []Line) (*Program, error) {
	labels := make(map[string]uint64)
	labelLine := make(map[string]int)
	var addr uint64
	for _, ln := range lines {
		if ln.Kind == LineLabel {
			if first, dup := labelLine[ln.Label]; dup {
				return nil, &LinkError{Label: ln.Label, Line: ln.Number, Msg: fmt.Sprintf("already defined on line %d", first)}
			}
			labels[ln.Label] = addr
			labelLine[ln.Label] = ln.Number
			continue
		}
		addr += ln.Op.Size()
	}

	p := &Program{Labels: labels}
	for _, ln := range lines {
		if ln.Kind == LineLabel {
			continue
		}
		in := Instruction{Op: ln.Op, Arg: ln.Arg, Target: ln.Target, Line: ln.Number}
		if ln.Op.Arg() == ArgLabel {
			dest, ok := labels[ln.Target]
			if !ok {
				return nil, &LinkError{Label: ln.Target, Line: ln.Number, Msg: "is not defined"}
			}
			in.Arg = field.New(dest)
		}
		idx := len(p.Instructions)
		n, err := safecast.Conv[uint64](len(p.Words))
		if err != nil {
			return nil, fmt.Errorf("link: %w", err)
		}
		in.Addr = n
		p.Instructions = append(p.Instructions, in)
		p.Words = append(p.Words, field.New(ln.Op.info().code))
		p.at = append(p.at, idx)
		if ln.Op.Arg() != ArgNone {
			p.Words = append(p.Words, in.Arg)
			p.at = append(p.at, -1)
		}
	}
	p.digest = hashWords(p.Words)
	return p, nil
}

// Assemble parses and links assembly text.
func Assemble(text string) (*Program, error) {
	lines, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Link(lines)
}

func hashWords(words []field.Element) Digest {
	h := sha3.New256()
	var buf [8]byte
	for _, w := range words {
		binary.LittleEndian.PutUint64(buf[:], w.Uint64())
		h.Write(buf[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// instructionAt returns the instruction starting at word address ip.
func (p *Program) instructionAt(ip uint64) (Instruction, bool) {
	if ip >= uint64(len(p.at)) {
		return Instruction{}, false
	}
	idx := p.at[ip]
	if idx < 0 {
		return Instruction{}, false
	}
	return p.Instructions[idx], true
}
