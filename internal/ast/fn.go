package ast

import "ashlang/internal/source"

type Param struct {
	Name string
	Span source.Span
}

// Func is a Function Definition.
type Func struct {
	Name     string
	NameSpan source.Span
	Params   []Param
	Body     []Stmt
	Span     source.Span
}

// Arity is the number of declared parameters.
func (f *Func) Arity() int { return len(f.Params) }

// Returns reports how many values the function leaves for its caller:
// 1 when the body ends with a return statement, 0 otherwise.
func (f *Func) Returns() int {
	if n := len(f.Body); n > 0 {
		if _, ok := f.Body[n-1].(*ReturnStmt); ok {
			return 1
		}
	}
	return 0
}
