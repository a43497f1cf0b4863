package tvm

import (
	"context"
	"encoding/binary"
	"slices"

	"golang.org/x/crypto/sha3"

	"ashlang/internal/field"
)

const (
	// NumRegisters is the number of op stack registers, all zero at boot.
	NumRegisters = 16
	// DefaultMaxCycles bounds a run unless configured otherwise.
	DefaultMaxCycles = 1 << 20

	ctxCheckInterval = 4096
)

// Step describes one executed cycle, for tracing hooks.
type Step struct {
	Cycle uint64
	IP    uint64
	Instr Instruction
	Depth int
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxCycles sets the cycle limit. Zero keeps the default.
func WithMaxCycles(n uint64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxCycles = n
		}
	}
}

// WithParameters sets the parameters reported in the artifacts.
func WithParameters(p Parameters) Option {
	return func(e *Engine) { e.params = p }
}

// WithStepHook installs a callback invoked before every cycle.
func WithStepHook(fn func(Step)) Option {
	return func(e *Engine) { e.onStep = fn }
}

// Engine executes programs and packages the run as artifacts.
type Engine struct {
	maxCycles uint64
	params    Parameters
	onStep    func(Step)
}

// NewEngine builds an engine with default parameters and cycle limit.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{maxCycles: DefaultMaxCycles, params: DefaultParameters()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Parameters returns the configured parameter set.
func (e *Engine) Parameters() Parameters { return e.params }

// Execution is the observable result of a run.
type Execution struct {
	Output []field.Element
	Cycles uint64
	// TraceRoot is the Merkle root over one SHA3-256 digest per executed cycle.
	TraceRoot Digest
}

type frame struct {
	origin uint64
	dest   uint64
}

type machine struct {
	prog   *Program
	stack  []field.Element
	jumps  []frame
	public []field.Element
	secret []field.Element
	output []field.Element
	ip     uint64
	cycle  uint64
	instr  Instruction
}

// Prove executes the program and commits to its trace.
func (e *Engine) Prove(ctx context.Context, p *Program, public, secret []field.Element) (Artifacts, error) {
	ex, err := e.Execute(ctx, p, public, secret)
	if err != nil {
		return Artifacts{}, err
	}
	return Artifacts{
		Parameters: e.params,
		Claim: Claim{
			ProgramDigest: p.Digest(),
			Input:         slices.Clone(public),
			Output:        ex.Output,
		},
		Proof: Proof{
			Cycles:       ex.Cycles,
			PaddedHeight: nextPow2(ex.Cycles + 1),
			MerkleRoot:   ex.TraceRoot,
		},
	}, nil
}

// Execute runs the program until halt or a trap.
func (e *Engine) Execute(ctx context.Context, p *Program, public, secret []field.Element) (Execution, error) {
	m := &machine{
		prog:   p,
		stack:  make([]field.Element, NumRegisters, 64),
		public: public,
		secret: secret,
	}
	var commit merkleAccumulator
	for {
		if m.cycle%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Execution{}, err
			}
		}
		if m.cycle >= e.maxCycles {
			return Execution{}, m.trap(TrapCycleLimit)
		}
		in, ok := p.instructionAt(m.ip)
		if !ok {
			m.instr = Instruction{}
			return Execution{}, m.trap(TrapIPOutOfBounds)
		}
		m.instr = in
		if e.onStep != nil {
			e.onStep(Step{Cycle: m.cycle, IP: m.ip, Instr: in, Depth: len(m.stack)})
		}
		commit.add(m.row())
		halted, err := m.step()
		if err != nil {
			return Execution{}, err
		}
		m.cycle++
		if halted {
			return Execution{Output: m.output, Cycles: m.cycle, TraceRoot: commit.root()}, nil
		}
	}
}

func (m *machine) trap(kind TrapKind) *TrapError {
	te := &TrapError{Kind: kind, IP: m.ip, Cycle: m.cycle}
	if m.instr.Op != OpInvalid {
		te.Instr = m.instr.String()
	}
	return te
}

// row hashes the processor state before the current instruction executes.
func (m *machine) row() Digest {
	h := sha3.New256()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	put(m.cycle)
	put(m.ip)
	put(m.instr.Op.info().code)
	put(m.instr.Arg.Uint64())
	put(uint64(len(m.jumps)))
	put(uint64(len(m.stack)))
	for i := range NumRegisters {
		put(m.stack[len(m.stack)-1-i].Uint64())
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (m *machine) top() field.Element { return m.stack[len(m.stack)-1] }

func (m *machine) push(v field.Element) { m.stack = append(m.stack, v) }

func (m *machine) pop() (field.Element, error) {
	if len(m.stack) <= NumRegisters {
		return 0, m.trap(TrapOpStackUnderflow)
	}
	v := m.top()
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *machine) pop2() (field.Element, field.Element, error) {
	a, err := m.pop()
	if err != nil {
		return 0, 0, err
	}
	b, err := m.pop()
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// step executes the current instruction and advances ip.
func (m *machine) step() (bool, error) {
	in := m.instr
	next := m.ip + in.Op.Size()
	n := int(in.Arg.Uint64())

	switch in.Op {
	case OpHalt:
		return true, nil
	case OpNop:
	case OpPush:
		m.push(in.Arg)
	case OpPop:
		for range n {
			if _, err := m.pop(); err != nil {
				return false, err
			}
		}
	case OpDup:
		m.push(m.stack[len(m.stack)-1-n])
	case OpSwap:
		i, j := len(m.stack)-1, len(m.stack)-1-n
		m.stack[i], m.stack[j] = m.stack[j], m.stack[i]
	case OpSkiz:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		if v.IsZero() {
			skipped, ok := m.prog.instructionAt(next)
			if !ok {
				return false, m.trap(TrapIPOutOfBounds)
			}
			next += skipped.Op.Size()
		}
	case OpCall:
		m.jumps = append(m.jumps, frame{origin: next, dest: in.Arg.Uint64()})
		next = in.Arg.Uint64()
	case OpReturn:
		if len(m.jumps) == 0 {
			return false, m.trap(TrapJumpStackEmpty)
		}
		next = m.jumps[len(m.jumps)-1].origin
		m.jumps = m.jumps[:len(m.jumps)-1]
	case OpRecurse:
		if len(m.jumps) == 0 {
			return false, m.trap(TrapJumpStackEmpty)
		}
		next = m.jumps[len(m.jumps)-1].dest
	case OpAssert:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		if v != field.One {
			return false, m.trap(TrapAssert)
		}
	case OpAdd, OpMul, OpEq:
		a, b, err := m.pop2()
		if err != nil {
			return false, err
		}
		switch in.Op {
		case OpAdd:
			m.push(a.Add(b))
		case OpMul:
			m.push(a.Mul(b))
		default:
			m.push(boolElement(a == b))
		}
	case OpLt:
		a, b, err := m.pop2()
		if err != nil {
			return false, err
		}
		if !a.IsU32() || !b.IsU32() {
			return false, m.trap(TrapNotU32)
		}
		m.push(boolElement(a < b))
	case OpInvert:
		v, err := m.pop()
		if err != nil {
			return false, err
		}
		inv, ierr := v.Inverse()
		if ierr != nil {
			return false, m.trap(TrapInverseOfZero)
		}
		m.push(inv)
	case OpReadIO:
		if len(m.public) < n {
			return false, m.trap(TrapPublicInputExhausted)
		}
		for _, v := range m.public[:n] {
			m.push(v)
		}
		m.public = m.public[n:]
	case OpDivine:
		if len(m.secret) < n {
			return false, m.trap(TrapSecretInputExhausted)
		}
		for _, v := range m.secret[:n] {
			m.push(v)
		}
		m.secret = m.secret[n:]
	case OpWriteIO:
		for range n {
			v, err := m.pop()
			if err != nil {
				return false, err
			}
			m.output = append(m.output, v)
		}
	default:
		return false, m.trap(TrapIPOutOfBounds)
	}
	m.ip = next
	return false, nil
}

func boolElement(b bool) field.Element {
	if b {
		return field.One
	}
	return field.Zero
}
