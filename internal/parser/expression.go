package parser

import (
	"ashlang/internal/ast"
	"ashlang/internal/diag"
	"ashlang/internal/field"
	"ashlang/internal/token"
)

func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseBinaryExpr(precEquality)
}

// parseBinaryExpr — Pratt: унарные + primary, затем бинарные по приоритету.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	return p.parseBinaryFrom(left, minPrec)
}

// parseBinaryFrom продолжает разбор бинарных операторов с уже готовой левой частью.
func (p *Parser) parseBinaryFrom(left ast.Expr, minPrec int) (ast.Expr, bool) {
	for {
		tok := p.lx.Peek()
		prec := binaryPrec(tok.Kind)
		if prec < minPrec {
			return left, true
		}
		opTok := p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{
			Op:    binaryOp(opTok.Kind),
			Left:  left,
			Right: right,
			Span:  left.Pos().Cover(right.Pos()),
		}
	}
}

// parseUnaryExpr обрабатывает унарный минус
func (p *Parser) parseUnaryExpr() (ast.Expr, bool) {
	if !p.at(token.Minus) {
		return p.parsePrimaryExpr()
	}
	op := p.advance()
	x, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	return &ast.UnaryExpr{Op: ast.ExprUnaryNeg, X: x, Span: op.Span.Cover(x.Pos())}, true
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := field.Parse(tok.Text)
		if err != nil {
			p.report(diag.LexBadNumber, tok.Span, "literal "+tok.Text+" is not a canonical field element")
			return nil, false
		}
		return &ast.LitExpr{Value: v, Span: tok.Span}, true

	case token.Ident:
		p.advance()
		return p.parseIdentTail(tok)

	case token.LParen:
		open := p.advance()
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')'")
		if !ok {
			return nil, false
		}
		// скобки расширяют span, но отдельного узла не создают
		switch e := x.(type) {
		case *ast.BinaryExpr:
			e.Span = open.Span.Cover(closeTok.Span)
		case *ast.UnaryExpr:
			e.Span = open.Span.Cover(closeTok.Span)
		}
		return x, true

	default:
		p.err(diag.SynExpectExpression, "expected expression, found "+describe(tok))
		return nil, false
	}
}

// parseIdentTail решает, вызов это или ссылка на переменную.
// '(' на новой строке не начинает вызов.
func (p *Parser) parseIdentTail(id token.Token) (ast.Expr, bool) {
	next := p.lx.Peek()
	if next.Kind != token.LParen || next.StartsLine() {
		return &ast.IdentExpr{Name: id.Text, Span: id.Span}, true
	}
	p.advance()
	call := &ast.CallExpr{Callee: id.Text, CalleeSpan: id.Span, Args: []ast.Expr{}}
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		call.Args = append(call.Args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after call arguments")
	if !ok {
		return nil, false
	}
	call.Span = id.Span.Cover(closeTok.Span)
	return call, true
}
