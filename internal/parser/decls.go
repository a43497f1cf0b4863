package parser

import (
	"ashlang/internal/lexer"
	"ashlang/internal/source"
	"ashlang/internal/token"
)

// Decl is a top-level function declaration found by ScanDecls.
type Decl struct {
	Name string
	Span source.Span
}

// ScanDecls finds `fn <name>` headers at brace depth zero without building
// a tree. Lexical errors are ignored here; the full parse reports them.
func ScanDecls(f *source.File) []Decl {
	lx := lexer.New(f, lexer.Options{})
	var decls []Decl
	depth := 0
	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.EOF:
			return decls
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth > 0 {
				depth--
			}
		case token.KwFn:
			if depth == 0 && lx.Peek().Kind == token.Ident {
				name := lx.Next()
				decls = append(decls, Decl{Name: name.Text, Span: name.Span})
			}
		}
	}
}
