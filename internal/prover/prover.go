// Package prover hands a linked program and its inputs to a proving engine
// and reports the run as a single ProveFailed error when anything goes wrong.
package prover

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ashlang/internal/diag"
	"ashlang/internal/field"
	"ashlang/internal/inputs"
	"ashlang/internal/trace"
	"ashlang/internal/tvm"
)

// Engine executes a program and produces proof artifacts.
type Engine interface {
	Prove(ctx context.Context, p *tvm.Program, public, secret []field.Element) (tvm.Artifacts, error)
}

// ProvingFailedError wraps any engine failure.
type ProvingFailedError struct {
	Detail string
	Err    error
}

func (e *ProvingFailedError) Error() string {
	return "proving failed: " + e.Detail
}

func (e *ProvingFailedError) Unwrap() error { return e.Err }

func (e *ProvingFailedError) Code() diag.Code { return diag.ProveFailed }

// Driver runs proofs. The zero value uses a default tvm engine.
type Driver struct {
	Engine Engine
}

// New returns a driver around e.
func New(e Engine) *Driver { return &Driver{Engine: e} }

// Run proves one execution of p. There is no retry; artifacts are returned as
// the engine produced them.
func (d *Driver) Run(ctx context.Context, p *tvm.Program, public, secret inputs.Sequence) (tvm.Artifacts, error) {
	if p == nil {
		return tvm.Artifacts{}, &ProvingFailedError{Detail: "no program"}
	}
	eng := d.Engine
	if eng == nil {
		eng = tvm.NewEngine()
	}

	ctx, span := trace.StartSpan(ctx, trace.ScopeStage, "prove")
	span.With("words", strconv.Itoa(p.Len()))
	art, err := eng.Prove(ctx, p, public, secret)
	if err != nil {
		span.End("failed")
		return tvm.Artifacts{}, &ProvingFailedError{Detail: describe(err), Err: err}
	}
	span.With("cycles", strconv.FormatUint(art.Proof.Cycles, 10))
	span.End("")
	return art, nil
}

func describe(err error) string {
	var te *tvm.TrapError
	switch {
	case errors.As(err, &te):
		return fmt.Sprintf("Triton VM errored: %s", te)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "interrupted: " + err.Error()
	default:
		return err.Error()
	}
}
