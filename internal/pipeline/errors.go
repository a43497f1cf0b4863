package pipeline

import (
	"fmt"

	"ashlang/internal/diag"
)

// InternalError marks a failure on compiler-produced data, such as emitted
// assembly the assembler rejects.
type InternalError struct {
	Stage Stage
	Err   error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal consistency fault in %s: %v", e.Stage, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

func (e *InternalError) Code() diag.Code { return diag.GenInconsistency }
