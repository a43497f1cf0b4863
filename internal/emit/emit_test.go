package emit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ashlang/internal/compiler"
	"ashlang/internal/field"
	"ashlang/internal/locator"
	"ashlang/internal/testkit"
	"ashlang/internal/tvm"
)

func compile(t *testing.T, files map[string]string, entry string) *compiler.Stream {
	t.Helper()
	loc := locator.New(nil)
	if err := loc.Register(testkit.WriteTree(t, files)); err != nil {
		t.Fatalf("register: %v", err)
	}
	s, err := compiler.New(loc, compiler.Options{}).Compile(context.Background(), entry)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return s
}

func TestEmitLayout(t *testing.T) {
	s := compile(t, map[string]string{"m.ash": "fn main(a) {\n    return a * 2\n}\n"}, "main")
	text, err := Emit(s)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	want := strings.Join([]string{
		"    read_io 1",
		"    call fn_0_main",
		"    write_io 1",
		"    halt",
		"fn_0_main:",
		"    dup 0",
		"    push 2",
		"    mul",
		"    swap 1",
		"    pop 1",
		"    return",
	}, "\n") + "\n"
	if text != want {
		t.Fatalf("emit mismatch:\n got:\n%s\nwant:\n%s", text, want)
	}
	if err := testkit.CheckAsm(text); err != nil {
		t.Fatalf("asm invariants: %v", err)
	}
}

func TestEmitRoundTripsThroughAssembler(t *testing.T) {
	files := map[string]string{
		"main.ash": `
fn main(n) {
    let acc = 1
    let i = n
    while i {
        acc = acc * i
        i = i - 1
    }
    if lt(acc, 100) {
        write(acc)
    } else {
        write(0)
    }
    return double(acc)
}
`,
		"lib/math.ash": `
fn lt(a, b) {
    return a < b
}

fn double(x) {
    return x + x
}
`,
	}
	text, err := Emit(compile(t, files, "main"))
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := testkit.CheckAsm(text); err != nil {
		t.Fatalf("asm invariants: %v", err)
	}
	prog, err := tvm.Assemble(text)
	if err != nil {
		t.Fatalf("assemble emitted text: %v\n%s", err, text)
	}
	ex, err := tvm.NewEngine().Execute(context.Background(), prog, field.Elements(4), nil)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := field.Elements(24, 48)
	if len(ex.Output) != len(want) || ex.Output[0] != want[0] || ex.Output[1] != want[1] {
		t.Fatalf("output = %v, want %v", ex.Output, want)
	}
}

func TestEmitRejectsUnsealedStream(t *testing.T) {
	if _, err := Emit(&compiler.Stream{}); err == nil {
		t.Fatal("expected an error for an unsealed stream")
	}
	if _, err := Emit(nil); err == nil {
		t.Fatal("expected an error for a nil stream")
	}
}

func TestCheckLabels(t *testing.T) {
	main := compiler.Label{ID: 0, Kind: compiler.FuncEntry, Hint: "main"}
	other := compiler.Label{ID: 1, Kind: compiler.FuncEntry, Hint: "other"}
	def := func(l compiler.Label) compiler.Instruction {
		return compiler.Instruction{Op: compiler.OpLabel, Target: l}
	}
	call := func(l compiler.Label) compiler.Instruction {
		return compiler.Instruction{Op: compiler.OpCall, Target: l}
	}
	ret := compiler.Instruction{Op: compiler.OpReturn}

	if err := checkLabels([]compiler.Instruction{call(main)}, []compiler.Instruction{def(main), ret}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := map[string][][]compiler.Instruction{
		"never defined": {{call(other)}, {def(main), ret}},
		"defined 2":     {{call(main)}, {def(main), ret, def(main), ret}},
	}
	for reason, parts := range cases {
		err := checkLabels(parts...)
		var ce *ConsistencyError
		if !errors.As(err, &ce) {
			t.Fatalf("%s: expected ConsistencyError, got %v", reason, err)
		}
		if !strings.Contains(ce.Error(), reason) {
			t.Fatalf("error %q does not mention %q", ce.Error(), reason)
		}
	}
}
