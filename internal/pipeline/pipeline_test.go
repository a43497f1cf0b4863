package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ashlang/internal/compiler"
	"ashlang/internal/field"
	"ashlang/internal/inputs"
	"ashlang/internal/locator"
	"ashlang/internal/prover"
	"ashlang/internal/testkit"
	"ashlang/internal/tvm"
)

const library = `
// recursive factorial
fn fact(n) {
    let r = 1
    if n {
        r = n * fact(n - 1)
    }
    return r
}

fn pick(a, b) {
    let q = a / b
    let m = 0
    if a < b {
        m = 1
    } else {
        m = 2
    }
    return q * 10 + m
}

fn countdown() {
    let x = read()
    write(x + 1)
    while x {
        x = x - 1
        write(x)
    }
}

fn witness(a) {
    let s = secret()
    assert_eq(a * s, 6)
    return s + a
}

fn neg(a) {
    return -a + -1
}
`

func runEntry(t *testing.T, entry, public, secret string) (Result, error) {
	t.Helper()
	root := testkit.WriteTree(t, map[string]string{"lib/prog.ash": library})
	pub, err := inputs.Pack(public)
	if err != nil {
		t.Fatal(err)
	}
	sec, err := inputs.Pack(secret)
	if err != nil {
		t.Fatal(err)
	}
	return Run(context.Background(), &Request{
		Entry:    entry,
		Includes: []string{"", root},
		Public:   pub,
		Secret:   sec,
	})
}

func TestRunPrograms(t *testing.T) {
	cases := []struct {
		entry  string
		public string
		secret string
		want   []field.Element
	}{
		{"fact", "5", "", field.Elements(120)},
		{"fact", "0", "", field.Elements(1)},
		{"pick", "12,4", "", field.Elements(32)},
		{"pick", "2,4", "", []field.Element{field.New(2).Mul(field.New(4).Pow(field.P - 2)).Mul(field.New(10)).Add(field.One)}},
		{"countdown", "3", "", field.Elements(4, 2, 1, 0)},
		{"witness", "2", "3", field.Elements(5)},
		{"neg", "1", "", []field.Element{field.New(2).Neg()}},
	}
	for _, tc := range cases {
		t.Run(tc.entry+"/"+tc.public, func(t *testing.T) {
			res, err := runEntry(t, tc.entry, tc.public, tc.secret)
			if err != nil {
				t.Fatalf("run: %v\n%s", err, res.Asm)
			}
			if err := testkit.CheckAsm(res.Asm); err != nil {
				t.Fatalf("asm invariants: %v", err)
			}
			if diff := cmp.Diff(tc.want, res.Artifacts.Claim.Output); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
			if res.Artifacts.Claim.ProgramDigest != res.Program.Digest() {
				t.Fatal("claim digest does not match the program")
			}
			for _, st := range Stages {
				if !res.Timings.Has(st) {
					t.Fatalf("no timing recorded for %s", st)
				}
			}
		})
	}
}

func TestRunFailingAssertionIsProvingFailure(t *testing.T) {
	_, err := runEntry(t, "witness", "2", "4")
	var pf *prover.ProvingFailedError
	if !errors.As(err, &pf) {
		t.Fatalf("expected ProvingFailedError, got %v", err)
	}
	if !tvm.IsTrap(err, tvm.TrapAssert) {
		t.Fatalf("expected assert trap, got %v", err)
	}
}

func TestRunMissingEntry(t *testing.T) {
	res, err := runEntry(t, "nowhere", "", "")
	var unres *locator.UnresolvedModuleError
	if !errors.As(err, &unres) || unres.Name != "nowhere" {
		t.Fatalf("expected UnresolvedModuleError, got %v", err)
	}
	if res.Stream != nil || res.Asm != "" {
		t.Fatal("a failed compile must not produce output")
	}
}

func TestRunArityMismatch(t *testing.T) {
	root := testkit.WriteTree(t, map[string]string{
		"m.ash": "fn main() {\n    return add(1)\n}\nfn add(a, b) {\n    return a + b\n}\n",
	})
	_, err := Run(context.Background(), &Request{Entry: "main", Includes: []string{root}})
	var am *compiler.ArityMismatchError
	if !errors.As(err, &am) || am.Expected != 2 || am.Got != 1 {
		t.Fatalf("expected arity mismatch 2/1, got %v", err)
	}
}

func TestRunWithoutRootsIsUnresolvedEntry(t *testing.T) {
	rec := &recorder{}
	_, err := Run(context.Background(), &Request{Entry: "main", Includes: []string{"", "  "}, Progress: rec})
	var unres *locator.UnresolvedModuleError
	if !errors.As(err, &unres) || unres.Name != "main" {
		t.Fatalf("expected UnresolvedModuleError(main), got %v", err)
	}
	got := rec.final()
	if got[StageLocate] != StatusDone || got[StageCompile] != StatusError {
		t.Fatalf("stage statuses = %v", got)
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) final() map[Stage]Status {
	out := make(map[Stage]Status)
	for _, e := range r.events {
		out[e.Stage] = e.Status
	}
	return out
}

func TestSkipProveReportsProgress(t *testing.T) {
	root := testkit.WriteTree(t, map[string]string{"m.ash": "fn main(a) {\n    return a\n}\n"})
	rec := &recorder{}
	res, err := Run(context.Background(), &Request{
		Entry:     "main",
		Includes:  []string{root},
		SkipProve: true,
		Progress:  rec,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Program == nil || res.Artifacts != nil {
		t.Fatalf("program=%v artifacts=%v", res.Program, res.Artifacts)
	}
	want := map[Stage]Status{
		StageLocate:   StatusDone,
		StageCompile:  StatusDone,
		StageEmit:     StatusDone,
		StageAssemble: StatusDone,
		StageProve:    StatusSkipped,
	}
	if diff := cmp.Diff(want, rec.final()); diff != "" {
		t.Fatalf("final statuses (-want +got):\n%s", diff)
	}
	if rec.events[0].Status != StatusQueued {
		t.Fatalf("first event = %+v", rec.events[0])
	}
}

func TestFailureSkipsLaterStages(t *testing.T) {
	root := testkit.WriteTree(t, map[string]string{"m.ash": "fn main() {\n    return x\n}\n"})
	rec := &recorder{}
	_, err := Run(context.Background(), &Request{Entry: "main", Includes: []string{root}, Progress: rec})
	var us *compiler.UnresolvedSymbolError
	if !errors.As(err, &us) {
		t.Fatalf("expected UnresolvedSymbolError, got %v", err)
	}
	got := rec.final()
	if got[StageCompile] != StatusError || got[StageEmit] != StatusSkipped || got[StageProve] != StatusSkipped {
		t.Fatalf("statuses = %v", got)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, &Request{Entry: "main", Includes: []string{t.TempDir()}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type orderEngine struct {
	listed *bool
	early  bool
}

func (e *orderEngine) Prove(ctx context.Context, p *tvm.Program, public, secret []field.Element) (tvm.Artifacts, error) {
	e.early = *e.listed
	return tvm.NewEngine().Prove(ctx, p, public, secret)
}

func TestAssemblyIsDeliveredBeforeProving(t *testing.T) {
	root := testkit.WriteTree(t, map[string]string{"m.ash": "fn main(a) {\n    return a\n}\n"})
	listed := false
	var got string
	eng := &orderEngine{listed: &listed}
	res, err := Run(context.Background(), &Request{
		Entry:    "main",
		Includes: []string{root},
		Public:   inputs.Sequence(field.Elements(7)),
		Engine:   eng,
		OnAssembly: func(asm string) {
			listed = true
			got = asm
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !eng.early {
		t.Fatal("assembly was not delivered before the prove stage")
	}
	if got != res.Asm {
		t.Fatalf("delivered assembly differs from the result:\n%s", got)
	}
}
