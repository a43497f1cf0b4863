package diag

import (
	"errors"

	"ashlang/internal/source"
)

// Coded is implemented by every error of the pipeline's taxonomy.
type Coded interface {
	error
	Code() Code
}

// Located is implemented by errors that may point into a source file.
type Located interface {
	Location() (source.Span, bool)
}

// Annotated is implemented by errors that carry secondary locations.
type Annotated interface {
	Notes() []Note
}

// FromError converts an error chain into a single Diagnostic. The outermost
// Coded error in the chain decides the code; a Located error anywhere in the
// chain supplies the primary span.
func FromError(err error) Diagnostic {
	if err == nil {
		return Diagnostic{}
	}
	d := Diagnostic{Severity: SevError, Code: UnknownCode, Message: err.Error()}

	var coded Coded
	if errors.As(err, &coded) {
		d.Code = coded.Code()
	}
	var located Located
	if errors.As(err, &located) {
		d.Primary, d.HasSpan = located.Location()
	}
	var annotated Annotated
	if errors.As(err, &annotated) {
		d.Notes = annotated.Notes()
	}
	return d
}
