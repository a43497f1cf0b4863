package compiler

import (
	"fmt"

	"ashlang/internal/diag"
	"ashlang/internal/source"
)

// UnresolvedSymbolError reports a use of a name that is neither a parameter
// nor a local of the function.
type UnresolvedSymbolError struct {
	Function string
	Symbol   string
	Site     source.Span
}

func (e *UnresolvedSymbolError) Error() string {
	return fmt.Sprintf("unresolved symbol %q in function %q", e.Symbol, e.Function)
}
func (e *UnresolvedSymbolError) Code() diag.Code               { return diag.SemaUnresolvedSymbol }
func (e *UnresolvedSymbolError) Location() (source.Span, bool) { return e.Site, true }

// ArityMismatchError reports a call whose argument count differs from the
// callee's parameter count.
type ArityMismatchError struct {
	Callee   string
	Expected int
	Got      int
	Site     source.Span
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("arity mismatch calling %q: expected %d argument(s), got %d", e.Callee, e.Expected, e.Got)
}
func (e *ArityMismatchError) Code() diag.Code               { return diag.SemaArityMismatch }
func (e *ArityMismatchError) Location() (source.Span, bool) { return e.Site, true }

// DuplicateSymbolError reports a let of a name already visible in the function.
type DuplicateSymbolError struct {
	Function string
	Symbol   string
	Site     source.Span
}

func (e *DuplicateSymbolError) Error() string {
	return fmt.Sprintf("symbol %q is already defined in function %q", e.Symbol, e.Function)
}
func (e *DuplicateSymbolError) Code() diag.Code               { return diag.SemaDuplicateSymbol }
func (e *DuplicateSymbolError) Location() (source.Span, bool) { return e.Site, true }

type DuplicateParamError struct {
	Function string
	Param    string
	Site     source.Span
}

func (e *DuplicateParamError) Error() string {
	return fmt.Sprintf("parameter %q declared twice in function %q", e.Param, e.Function)
}
func (e *DuplicateParamError) Code() diag.Code               { return diag.SemaDuplicateParam }
func (e *DuplicateParamError) Location() (source.Span, bool) { return e.Site, true }

// MisplacedReturnError reports a return that is not the last statement of a
// function body.
type MisplacedReturnError struct {
	Function string
	Site     source.Span
}

func (e *MisplacedReturnError) Error() string {
	return fmt.Sprintf("return must be the final statement of function %q", e.Function)
}
func (e *MisplacedReturnError) Code() diag.Code               { return diag.SemaMisplacedReturn }
func (e *MisplacedReturnError) Location() (source.Span, bool) { return e.Site, true }

// VoidValueError reports a call that yields no value used where one is needed.
type VoidValueError struct {
	Callee string
	Site   source.Span
}

func (e *VoidValueError) Error() string {
	return fmt.Sprintf("%q does not return a value", e.Callee)
}
func (e *VoidValueError) Code() diag.Code               { return diag.SemaVoidValue }
func (e *VoidValueError) Location() (source.Span, bool) { return e.Site, true }

// ReservedNameError reports a user function named like a builtin.
type ReservedNameError struct {
	Name string
	Site source.Span
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("%q is a builtin and cannot be defined", e.Name)
}
func (e *ReservedNameError) Code() diag.Code               { return diag.SemaReservedName }
func (e *ReservedNameError) Location() (source.Span, bool) { return e.Site, true }

// StackTooDeepError reports a stack access beyond the addressable registers.
type StackTooDeepError struct {
	Function string
	Symbol   string
	Depth    int
	Site     source.Span
}

func (e *StackTooDeepError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("stack too deep in function %q: frame of %d elements", e.Function, e.Depth)
	}
	return fmt.Sprintf("stack too deep in function %q: %q is %d elements below the top", e.Function, e.Symbol, e.Depth)
}
func (e *StackTooDeepError) Code() diag.Code               { return diag.GenStackTooDeep }
func (e *StackTooDeepError) Location() (source.Span, bool) { return e.Site, true }
