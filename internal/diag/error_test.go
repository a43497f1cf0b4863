package diag

import (
	"errors"
	"fmt"
	"testing"

	"ashlang/internal/source"
)

type locatedErr struct {
	at source.Span
}

func (e *locatedErr) Error() string                 { return "located" }
func (e *locatedErr) Code() Code                    { return SemaUnresolvedSymbol }
func (e *locatedErr) Location() (source.Span, bool) { return e.at, true }

type plainCoded struct{}

func (plainCoded) Error() string { return "plain" }
func (plainCoded) Code() Code    { return InputInvalidLiteral }

func TestFromErrorFollowsWrapChain(t *testing.T) {
	inner := &locatedErr{at: source.Span{File: 1, Start: 4, End: 6}}
	err := fmt.Errorf("compile main: %w", inner)

	d := FromError(err)
	if d.Code != SemaUnresolvedSymbol {
		t.Fatalf("code = %s", d.Code.ID())
	}
	if !d.HasSpan || d.Primary != inner.at {
		t.Fatalf("span = %+v (has=%v)", d.Primary, d.HasSpan)
	}
	if d.Message != "compile main: located" {
		t.Fatalf("message = %q", d.Message)
	}
}

func TestFromErrorWithoutLocation(t *testing.T) {
	d := FromError(plainCoded{})
	if d.Code != InputInvalidLiteral || d.HasSpan {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if d := FromError(errors.New("boom")); d.Code != UnknownCode || d.Severity != SevError {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:       "LEX1001",
		SynUnexpectedToken:   "SYN2001",
		SemaUnresolvedModule: "SEM3001",
		SemaArityMismatch:    "SEM3004",
		GenStackTooDeep:      "GEN4001",
		AsmLink:              "ASM5002",
		InputInvalidLiteral:  "INP6001",
		ProveFailed:          "PRV7001",
		ProjectManifest:      "PRJ8001",
		UnknownCode:          "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if got := SemaArityMismatch.String(); got != "[SEM3004]: Arity mismatch" {
		t.Fatalf("String() = %q", got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	bag.Add(NewError(SynUnexpectedToken, source.Span{File: 0, Start: 9, End: 10}, "b"))
	bag.Add(NewError(LexUnknownChar, source.Span{File: 0, Start: 1, End: 2}, "a"))
	if bag.Add(NewError(LexUnknownChar, source.Span{}, "dropped")) {
		t.Fatal("expected the bag to be full")
	}
	bag.Sort()
	if bag.Items()[0].Message != "a" || bag.Len() != 2 || !bag.HasErrors() {
		t.Fatalf("unexpected bag state: %+v", bag.Items())
	}
}
