package diag

import (
	"ashlang/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	// HasSpan is false for diagnostics that do not point into a source file
	// (command-line inputs, missing entry functions, engine failures).
	HasSpan bool
	Notes   []Note
}
