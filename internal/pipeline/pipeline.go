// Package pipeline orchestrates one acc run: locate the include roots,
// compile the entry function, emit and assemble the program, then prove it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ashlang/internal/compiler"
	"ashlang/internal/emit"
	"ashlang/internal/inputs"
	"ashlang/internal/locator"
	"ashlang/internal/observ"
	"ashlang/internal/prover"
	"ashlang/internal/source"
	"ashlang/internal/trace"
	"ashlang/internal/tvm"
)

// Request configures a run.
type Request struct {
	Entry    string
	Includes []string
	Public   inputs.Sequence
	Secret   inputs.Sequence

	// SkipProve stops after assembling.
	SkipProve bool
	// OnAssembly, when set, receives the emitted assembly as soon as the
	// emit stage succeeds, before the program is assembled or proved.
	OnAssembly func(asm string)
	// Engine proves the program; nil uses a default tvm engine.
	Engine prover.Engine
	// FileSet receives the loaded sources; nil creates one.
	FileSet        *source.FileSet
	StackRegisters int
	Progress       ProgressSink
}

// Result captures everything a run produced, including partial results of a
// failed run up to the failing stage.
type Result struct {
	FileSet   *source.FileSet
	Locator   *locator.Locator
	Graph     *compiler.CallGraph
	Stream    *compiler.Stream
	Asm       string
	Program   *tvm.Program
	Artifacts *tvm.Artifacts
	Timings   Timings
	Timer     *observ.Timer
}

type runner struct {
	req   *Request
	res   *Result
	timer *observ.Timer
}

// Run executes the pipeline. The first failing stage ends the run.
func Run(ctx context.Context, req *Request) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return Result{}, fmt.Errorf("missing run request")
	}
	fs := req.FileSet
	if fs == nil {
		fs = source.NewFileSet()
	}
	res := &Result{FileSet: fs, Timer: observ.NewTimer()}
	r := &runner{req: req, res: res, timer: res.Timer}

	stages := Stages
	if req.SkipProve {
		stages = Stages[:len(Stages)-1]
	}
	emitQueued(req.Progress, stages)

	steps := map[Stage]func(context.Context) (string, error){
		StageLocate:   r.locate,
		StageCompile:  r.compile,
		StageEmit:     r.emit,
		StageAssemble: r.assemble,
		StageProve:    r.prove,
	}
	for i, st := range stages {
		if err := r.step(ctx, st, steps[st]); err != nil {
			for _, rest := range stages[i+1:] {
				emitStage(req.Progress, rest, StatusSkipped, "", nil)
			}
			return *res, err
		}
	}
	if req.SkipProve {
		emitStage(req.Progress, StageProve, StatusSkipped, "", nil)
	}
	return *res, nil
}

func (r *runner) step(ctx context.Context, st Stage, fn func(context.Context) (string, error)) error {
	if err := ctx.Err(); err != nil {
		emitStage(r.req.Progress, st, StatusError, "", err)
		return err
	}
	emitStage(r.req.Progress, st, StatusWorking, "", nil)
	idx := r.timer.Begin(string(st))
	detail, err := fn(ctx)
	dur := r.timer.End(idx, detail)
	r.res.Timings.Set(st, dur)
	if err != nil {
		if r.req.Progress != nil {
			r.req.Progress.OnEvent(Event{Stage: st, Status: StatusError, Err: err, Elapsed: dur})
		}
		return err
	}
	if r.req.Progress != nil {
		r.req.Progress.OnEvent(Event{Stage: st, Status: StatusDone, Detail: detail, Elapsed: dur})
	}
	return nil
}

func (r *runner) locate(ctx context.Context) (string, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeStage, string(StageLocate))
	loc := locator.New(r.res.FileSet)
	r.res.Locator = loc
	for _, root := range r.req.Includes {
		if strings.TrimSpace(root) == "" {
			continue
		}
		if err := loc.Register(root); err != nil {
			span.End("failed")
			return "", err
		}
		trace.Mark(ctx, trace.ScopeFunc, "root", root)
	}
	detail := fmt.Sprintf("%d roots, %d units", len(loc.Roots()), len(loc.Units()))
	span.End(detail)
	return detail, nil
}

func (r *runner) compile(ctx context.Context) (string, error) {
	c := compiler.New(r.res.Locator, compiler.Options{StackRegisters: r.req.StackRegisters})
	s, err := c.Compile(ctx, r.req.Entry)
	r.res.Graph = c.Graph()
	if err != nil {
		return "", err
	}
	r.res.Stream = s
	return fmt.Sprintf("%d functions, %d instructions", len(s.Functions), s.Len()), nil
}

func (r *runner) emit(ctx context.Context) (string, error) {
	_, span := trace.StartSpan(ctx, trace.ScopeStage, string(StageEmit))
	text, err := emit.Emit(r.res.Stream)
	if err != nil {
		span.End("failed")
		return "", err
	}
	r.res.Asm = text
	detail := strconv.Itoa(strings.Count(text, "\n")) + " lines"
	span.End(detail)
	if r.req.OnAssembly != nil {
		r.req.OnAssembly(text)
	}
	return detail, nil
}

func (r *runner) assemble(ctx context.Context) (string, error) {
	_, span := trace.StartSpan(ctx, trace.ScopeStage, string(StageAssemble))
	p, err := tvm.Assemble(r.res.Asm)
	if err != nil {
		span.End("failed")
		var se *tvm.SyntaxError
		var le *tvm.LinkError
		if errors.As(err, &se) || errors.As(err, &le) {
			return "", &InternalError{Stage: StageAssemble, Err: err}
		}
		return "", err
	}
	r.res.Program = p
	detail := fmt.Sprintf("%d words, digest %s", p.Len(), p.Digest().String()[:16])
	span.End(detail)
	return detail, nil
}

func (r *runner) prove(ctx context.Context) (string, error) {
	art, err := prover.New(r.req.Engine).Run(ctx, r.res.Program, r.req.Public, r.req.Secret)
	if err != nil {
		return "", err
	}
	r.res.Artifacts = &art
	return fmt.Sprintf("%d cycles", art.Proof.Cycles), nil
}
