package parser

import (
	"fmt"
	"strings"
	"testing"

	"ashlang/internal/ast"
	"ashlang/internal/diag"
	"ashlang/internal/source"
	"ashlang/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ash", []byte(src))
	bag := diag.NewBag(32)
	res := ParseFile(fs, id, Options{MaxErrors: 32, Reporter: diag.BagReporter{Bag: bag}})
	if !bag.HasErrors() {
		if err := testkit.CheckSpanInvariants(res.File, fs.Get(id)); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	}
	return res.File, bag
}

func mustParse(t *testing.T, src string) *ast.File {
	t.Helper()
	f, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return f
}

// render prints an expression fully parenthesised.
func render(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.LitExpr:
		return e.Value.String()
	case *ast.IdentExpr:
		return e.Name
	case *ast.UnaryExpr:
		return "(-" + render(e.X) + ")"
	case *ast.BinaryExpr:
		return "(" + render(e.Left) + " " + e.Op.String() + " " + render(e.Right) + ")"
	case *ast.CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = render(a)
		}
		return e.Callee + "(" + strings.Join(args, ", ") + ")"
	}
	return "?"
}
