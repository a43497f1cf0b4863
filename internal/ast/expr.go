package ast

import (
	"ashlang/internal/field"
	"ashlang/internal/source"
)

type ExprKind uint8

const (
	ExprLit ExprKind = iota
	ExprIdent
	ExprCall
	ExprUnary
	ExprBinary
)

type Expr interface {
	Kind() ExprKind
	Pos() source.Span
}

// ExprUnaryOp enumerates unary operator kinds.
type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota // -x
)

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd   ExprBinaryOp = iota // +
	ExprBinarySub                       // -
	ExprBinaryMul                       // *
	ExprBinaryDiv                       // /
	ExprBinaryLt                        // <
	ExprBinaryEq                        // ==
	ExprBinaryNotEq                     // !=
)

var binaryOpText = [...]string{
	ExprBinaryAdd:   "+",
	ExprBinarySub:   "-",
	ExprBinaryMul:   "*",
	ExprBinaryDiv:   "/",
	ExprBinaryLt:    "<",
	ExprBinaryEq:    "==",
	ExprBinaryNotEq: "!=",
}

func (op ExprBinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

type LitExpr struct {
	Value field.Element
	Span  source.Span
}

type IdentExpr struct {
	Name string
	Span source.Span
}

type CallExpr struct {
	Callee     string
	CalleeSpan source.Span
	Args       []Expr
	Span       source.Span
}

type UnaryExpr struct {
	Op   ExprUnaryOp
	X    Expr
	Span source.Span
}

type BinaryExpr struct {
	Op          ExprBinaryOp
	Left, Right Expr
	Span        source.Span
}

func (*LitExpr) Kind() ExprKind    { return ExprLit }
func (*IdentExpr) Kind() ExprKind  { return ExprIdent }
func (*CallExpr) Kind() ExprKind   { return ExprCall }
func (*UnaryExpr) Kind() ExprKind  { return ExprUnary }
func (*BinaryExpr) Kind() ExprKind { return ExprBinary }

func (e *LitExpr) Pos() source.Span    { return e.Span }
func (e *IdentExpr) Pos() source.Span  { return e.Span }
func (e *CallExpr) Pos() source.Span   { return e.Span }
func (e *UnaryExpr) Pos() source.Span  { return e.Span }
func (e *BinaryExpr) Pos() source.Span { return e.Span }
