package lexer

import (
	"ashlang/internal/diag"
	"ashlang/internal/token"
)

// scanNumber сканирует десятичный литерал [0-9]+.
// Буквы сразу после цифр (12ab, 0x10) — ошибка LexBadNumber; токен
// поглощает их целиком, чтобы парсер не увидел хвост как идентификатор.
// Диапазон значения проверяет парсер.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		lx.errLex(diag.LexBadNumber, sp, "malformed number literal "+quote(text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	sp := lx.cursor.SpanFrom(start)
	return lx.checkLength(token.Token{Kind: token.IntLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])})
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
