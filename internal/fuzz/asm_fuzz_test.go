package fuzztests

import (
	"context"
	"errors"
	"testing"

	"ashlang/internal/field"
	"ashlang/internal/inputs"
	"ashlang/internal/tvm"
)

// FuzzAssembleAndRun feeds arbitrary text to the assembler and runs whatever
// links. Execution may trap but must never panic.
func FuzzAssembleAndRun(f *testing.F) {
	addAsmSeeds(f)
	eng := tvm.NewEngine(tvm.WithMaxCycles(1 << 12))
	f.Fuzz(func(t *testing.T, input []byte) {
		prog, err := tvm.Assemble(string(clampSeed(input)))
		if err != nil {
			var se *tvm.SyntaxError
			var le *tvm.LinkError
			if !errors.As(err, &se) && !errors.As(err, &le) {
				t.Fatalf("unexpected assembler error type %T: %v", err, err)
			}
			return
		}
		_, err = eng.Execute(context.Background(), prog, field.Elements(1, 2, 3), field.Elements(4))
		var trap *tvm.TrapError
		if err != nil && !errors.As(err, &trap) {
			t.Fatalf("unexpected execution error type %T: %v", err, err)
		}
	})
}

func FuzzPackInputs(f *testing.F) {
	for _, s := range []string{"", "1,2,3", " -1 , 0 ", "18446744069414584320", "18446744069414584321", "a,,b", "--1"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		seq, err := inputs.Pack(raw)
		if err != nil {
			var inv *inputs.InvalidLiteralError
			if !errors.As(err, &inv) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			return
		}
		// канонический вид снова разбирается в ту же последовательность
		again, err := inputs.Pack(seq.String())
		if err != nil || len(again) != len(seq) {
			t.Fatalf("repack of %q failed: %v", seq.String(), err)
		}
		for i := range seq {
			if again[i] != seq[i] {
				t.Fatalf("element %d changed: %v -> %v", i, seq[i], again[i])
			}
		}
	})
}
