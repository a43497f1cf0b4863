package parser

import (
	"ashlang/internal/ast"
	"ashlang/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precEquality       = 1 // == !=
	precComparison     = 2 // <
	precAdditive       = 3 // + -
	precMultiplicative = 4 // * /
)

// binaryPrec возвращает приоритет оператора или -1, если это не бинарный оператор.
// Все операторы левоассоциативны.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash:
		return precMultiplicative
	default:
		return -1
	}
}

// binaryOp преобразует токен в тип бинарного оператора
func binaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	case token.Lt:
		return ast.ExprBinaryLt
	case token.EqEq:
		return ast.ExprBinaryEq
	default:
		return ast.ExprBinaryNotEq
	}
}
