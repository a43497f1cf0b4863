package ast

import (
	"ashlang/internal/source"
)

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtAssign
	StmtIf
	StmtWhile
	StmtReturn
	StmtExpr
)

type Stmt interface {
	Kind() StmtKind
	Pos() source.Span
}

// LetStmt declares a new local: `let x = e`.
type LetStmt struct {
	Name     string
	NameSpan source.Span
	Value    Expr
	Span     source.Span
}

// AssignStmt overwrites an existing local or parameter: `x = e`.
type AssignStmt struct {
	Name     string
	NameSpan source.Span
	Value    Expr
	Span     source.Span
}

// IfStmt is `if cond { Then } else { Else }`; Else is nil without an else
// branch and holds a single *IfStmt for `else if`.
type IfStmt struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Span source.Span
}

// HasElse reports whether an else branch was written.
func (s *IfStmt) HasElse() bool { return s.Else != nil }

type WhileStmt struct {
	Cond Expr
	Body []Stmt
	Span source.Span
}

type ReturnStmt struct {
	Value Expr
	Span  source.Span
}

// ExprStmt evaluates X and discards its value, if any.
type ExprStmt struct {
	X    Expr
	Span source.Span
}

func (*LetStmt) Kind() StmtKind    { return StmtLet }
func (*AssignStmt) Kind() StmtKind { return StmtAssign }
func (*IfStmt) Kind() StmtKind     { return StmtIf }
func (*WhileStmt) Kind() StmtKind  { return StmtWhile }
func (*ReturnStmt) Kind() StmtKind { return StmtReturn }
func (*ExprStmt) Kind() StmtKind   { return StmtExpr }

func (s *LetStmt) Pos() source.Span    { return s.Span }
func (s *AssignStmt) Pos() source.Span { return s.Span }
func (s *IfStmt) Pos() source.Span     { return s.Span }
func (s *WhileStmt) Pos() source.Span  { return s.Span }
func (s *ReturnStmt) Pos() source.Span { return s.Span }
func (s *ExprStmt) Pos() source.Span   { return s.Span }
