package parser

import (
	"ashlang/internal/ast"
	"ashlang/internal/diag"
	"ashlang/internal/source"
	"ashlang/internal/token"
)

// parseBlock разбирает `{ stmt* }` и возвращает span закрывающей скобки.
func (p *Parser) parseBlock() ([]ast.Stmt, source.Span, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"); !ok {
		return nil, source.Span{}, false
	}
	stmts := []ast.Stmt{}
	for !p.atOr(token.RBrace, token.EOF) && !p.opts.Enough() {
		s, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		stmts = append(stmts, s)
		p.endStmt()
	}
	rb, ok := p.expect(token.RBrace, diag.SynExpectRBrace, "expected '}' to close block")
	return stmts, rb.Span, ok
}

// endStmt принимает разделитель: ';', перевод строки или закрывающую '}'.
func (p *Parser) endStmt() {
	if p.at(token.Semicolon) {
		for p.at(token.Semicolon) {
			p.advance()
		}
		return
	}
	if p.atOr(token.RBrace, token.EOF) || p.lx.Peek().StartsLine() {
		return
	}
	p.err(diag.SynUnexpectedToken, "expected ';' or newline after statement, found "+describe(p.lx.Peek()))
	p.resyncStmt()
}

// resyncStmt прокручивает до начала следующего оператора: после ';',
// перед '}' или перед токеном с новой строки.
func (p *Parser) resyncStmt() {
	if p.atOr(token.RBrace, token.EOF) {
		return
	}
	p.advance()
	for !p.atOr(token.RBrace, token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		if p.lx.Peek().StartsLine() {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLet()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReturn:
		return p.parseReturn()
	case token.Ident:
		id := p.advance()
		if p.at(token.Assign) {
			p.advance()
			val, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			return &ast.AssignStmt{Name: id.Text, NameSpan: id.Span, Value: val, Span: id.Span.Cover(val.Pos())}, true
		}
		left, ok := p.parseIdentTail(id)
		if !ok {
			return nil, false
		}
		x, ok := p.parseBinaryFrom(left, precEquality)
		if !ok {
			return nil, false
		}
		return &ast.ExprStmt{X: x, Span: x.Pos()}, true
	default:
		x, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		return &ast.ExprStmt{X: x, Span: x.Pos()}, true
	}
}

// let x = e
func (p *Parser) parseLet() (ast.Stmt, bool) {
	kw := p.advance()
	name, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected variable name after 'let'")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in let statement"); !ok {
		return nil, false
	}
	val, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.LetStmt{Name: name.Text, NameSpan: name.Span, Value: val, Span: kw.Span.Cover(val.Pos())}, true
}

// if cond { ... } [else { ... } | else if ...]
func (p *Parser) parseIf() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	then, end, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	st := &ast.IfStmt{Cond: cond, Then: then, Span: kw.Span.Cover(end)}
	if !p.at(token.KwElse) {
		return st, true
	}
	p.advance()
	if p.at(token.KwIf) {
		nested, ok := p.parseIf()
		if !ok {
			return nil, false
		}
		st.Else = []ast.Stmt{nested}
		st.Span = st.Span.Cover(nested.Pos())
		return st, true
	}
	els, end, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	st.Else = els
	st.Span = st.Span.Cover(end)
	return st, true
}

func (p *Parser) parseWhile() (ast.Stmt, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	body, end, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Span: kw.Span.Cover(end)}, true
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	kw := p.advance()
	if p.atOr(token.RBrace, token.Semicolon, token.EOF) || p.lx.Peek().StartsLine() {
		p.err(diag.SynExpectExpression, "expected expression after 'return'")
		return nil, false
	}
	val, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.ReturnStmt{Value: val, Span: kw.Span.Cover(val.Pos())}, true
}
