package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ashlang/internal/ast"
	"ashlang/internal/diag"
	"ashlang/internal/source"
)

func TestParseFunctions(t *testing.T) {
	f := mustParse(t, `
// sums two values
fn add(a, b) {
    return a + b
}

fn main() {
    let x = read()
    write(add(x, 1));
}
`)
	if len(f.Funcs) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(f.Funcs))
	}
	add := f.Func("add")
	if add == nil || add.Arity() != 2 || add.Returns() != 1 {
		t.Fatalf("unexpected add: %+v", add)
	}
	main := f.Func("main")
	if main == nil || main.Arity() != 0 || main.Returns() != 0 || len(main.Body) != 2 {
		t.Fatalf("unexpected main: %+v", main)
	}
	call, ok := main.Body[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got %T", main.Body[1])
	}
	if got := render(call.X); got != "write(add(x, 1))" {
		t.Fatalf("call = %s", got)
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b * c", "((a / b) * c)"},
		{"a < b + 1", "(a < (b + 1))"},
		{"a == b < c", "(a == (b < c))"},
		{"a != b == c", "((a != b) == c)"},
		{"-a * b", "((-a) * b)"},
		{"(a + b) * c", "((a + b) * c)"},
		{"--a", "(-(-a))"},
		{"f() + g(1, 2,)", "(f() + g(1, 2))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := mustParse(t, "fn main() { let r = "+tt.src+" }")
			let := f.Funcs[0].Body[0].(*ast.LetStmt)
			if got := render(let.Value); got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestStatementKinds(t *testing.T) {
	f := mustParse(t, `fn main(n) {
    let i = 0
    i = i + 1; i = i + 2
    if i == 3 { write(i) } else if i == 4 { write(0) } else { assert(0) }
    while i < n {
        i = i + 1
    }
    return i
}`)
	var got []ast.StmtKind
	for _, s := range f.Funcs[0].Body {
		got = append(got, s.Kind())
	}
	want := []ast.StmtKind{ast.StmtLet, ast.StmtAssign, ast.StmtAssign, ast.StmtIf, ast.StmtWhile, ast.StmtReturn}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("statement kinds mismatch (-want +got):\n%s", diff)
	}
	ifs := f.Funcs[0].Body[3].(*ast.IfStmt)
	if !ifs.HasElse() || len(ifs.Else) != 1 {
		t.Fatalf("expected else-if chain, got %+v", ifs.Else)
	}
	nested, ok := ifs.Else[0].(*ast.IfStmt)
	if !ok || !nested.HasElse() {
		t.Fatalf("expected nested if with else, got %T", ifs.Else[0])
	}
}

func TestParenOnNewLineIsNotACall(t *testing.T) {
	f, bag := parseSource(t, "fn main() {\n  let x = y\n  (z)\n}")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	body := f.Funcs[0].Body
	if len(body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(body))
	}
	if _, ok := body[0].(*ast.LetStmt).Value.(*ast.IdentExpr); !ok {
		t.Fatalf("expected identifier, got %T", body[0].(*ast.LetStmt).Value)
	}
}

func TestLiteralValues(t *testing.T) {
	f := mustParse(t, "fn main() { let a = 18446744069414584320 }")
	lit := f.Funcs[0].Body[0].(*ast.LetStmt).Value.(*ast.LitExpr)
	if lit.Value.Uint64() != 18446744069414584320 {
		t.Fatalf("literal = %v", lit.Value)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"missing name", "fn (a) {}", diag.SynExpectIdentifier},
		{"top level junk", "let x = 1", diag.SynUnexpectedTopLevel},
		{"missing brace", "fn main() { let x = 1", diag.SynExpectRBrace},
		{"missing rparen", "fn main(a { }", diag.SynExpectRParen},
		{"bare return", "fn main() { return }", diag.SynExpectExpression},
		{"two statements one line", "fn main() { let x = 1 let y = 2 }", diag.SynUnexpectedToken},
		{"literal too large", "fn main() { let x = 18446744069414584321 }", diag.LexBadNumber},
		{"dangling operator", "fn main() { let x = 1 + }", diag.SynExpectExpression},
		{"unknown char", "fn main() { let x = 1 % 2 }", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag := parseSource(t, tt.src)
			if !bag.HasErrors() {
				t.Fatalf("expected an error for %q", tt.src)
			}
			if got := bag.Items()[0].Code; got != tt.code {
				t.Fatalf("first code = %s, want %s (all: %s)", got.ID(), tt.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestRecoveryContinuesToNextFunction(t *testing.T) {
	f, bag := parseSource(t, "fn broken( {\n}\nfn ok() {\n  return 1\n}\n")
	if !bag.HasErrors() {
		t.Fatal("expected errors")
	}
	if f.Func("ok") == nil {
		t.Fatalf("expected recovery to parse ok(); got %d funcs", len(f.Funcs))
	}
}

func TestParseReturnsTypedError(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.ash", []byte("fn main() { let = 1 }"))
	_, err := Parse(fs, id)
	perr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T (%v)", err, err)
	}
	if perr.Code() != diag.SynExpectIdentifier {
		t.Fatalf("code = %s", perr.Code().ID())
	}
	if d := diag.FromError(err); !d.HasSpan || d.Code != diag.SynExpectIdentifier {
		t.Fatalf("FromError = %+v", d)
	}
}

func TestScanDecls(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("m.ash", []byte("fn a() { fn_like() }\n// fn hidden()\nfn b(x) { if x { } }\n"))
	decls := ScanDecls(fs.Get(id))
	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	if diff := cmp.Diff([]string{"a", "b"}, names); diff != "" {
		t.Fatalf("decls mismatch (-want +got):\n%s", diff)
	}
}
