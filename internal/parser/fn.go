package parser

import (
	"ashlang/internal/ast"
	"ashlang/internal/diag"
	"ashlang/internal/token"
)

// parseFn разбирает `fn name(p1, p2, ...) { body }`.
func (p *Parser) parseFn() (*ast.Func, bool) {
	fnTok := p.advance() // fn
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name")
	if !ok {
		return nil, false
	}
	fn := &ast.Func{Name: name.Text, NameSpan: name.Span}

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return nil, false
	}
	params, ok := p.parseParams()
	if !ok {
		return nil, false
	}
	fn.Params = params

	body, end, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	fn.Body = body
	fn.Span = fnTok.Span.Cover(end)
	return fn, true
}

// parseParams разбирает список параметров после '(' включая ')'.
// Висячая запятая допускается.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	var params []ast.Param
	for !p.at(token.RParen) {
		id, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return nil, false
		}
		params = append(params, ast.Param{Name: id.Text, Span: id.Span})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynExpectRParen, "expected ')' after parameters"); !ok {
		return nil, false
	}
	return params, true
}
