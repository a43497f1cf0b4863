package lexer

import (
	"fmt"
	"unicode/utf8"

	"ashlang/internal/diag"
	"ashlang/internal/token"
)

// scanOperatorOrPunct сканирует операторы и пунктуацию, двухсимвольные — жадно.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	b := lx.cursor.Bump()
	switch b {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '<':
		return emit(token.Lt)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case ',':
		return emit(token.Comma)
	case ';':
		return emit(token.Semicolon)
	case '=':
		if lx.cursor.Eat('=') {
			return emit(token.EqEq)
		}
		return emit(token.Assign)
	case '!':
		if lx.cursor.Eat('=') {
			return emit(token.BangEq)
		}
	}

	// неизвестный символ: поглощаем всю руну, чтобы Span не резал UTF-8
	lx.cursor.Off = uint32(start)
	r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	for range size {
		lx.cursor.Bump()
	}
	tok := emit(token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unknown character %q", r))
	return tok
}

func quote(s string) string { return fmt.Sprintf("%q", s) }
