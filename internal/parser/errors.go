package parser

import (
	"fmt"

	"ashlang/internal/diag"
	"ashlang/internal/source"
)

// Error reports the syntax errors of one source unit. The first diagnostic
// decides the code and location; the rest are kept as notes.
type Error struct {
	Path  string
	Diags []diag.Diagnostic
}

func (e *Error) Error() string {
	if len(e.Diags) == 0 {
		return fmt.Sprintf("%s: parse error", e.Path)
	}
	msg := fmt.Sprintf("%s: %s", e.Path, e.Diags[0].Message)
	if n := len(e.Diags) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

func (e *Error) Code() diag.Code {
	if len(e.Diags) == 0 {
		return diag.SynUnexpectedToken
	}
	return e.Diags[0].Code
}

func (e *Error) Location() (source.Span, bool) {
	if len(e.Diags) == 0 {
		return source.Span{}, false
	}
	return e.Diags[0].Primary, e.Diags[0].HasSpan
}

func (e *Error) Notes() []diag.Note {
	if len(e.Diags) < 2 {
		return nil
	}
	notes := make([]diag.Note, 0, len(e.Diags)-1)
	for _, d := range e.Diags[1:] {
		notes = append(notes, diag.Note{Span: d.Primary, Msg: d.Message})
	}
	return notes
}
