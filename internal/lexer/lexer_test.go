package lexer_test

import (
	"strings"
	"testing"

	"ashlang/internal/diag"
	"ashlang/internal/lexer"
	"ashlang/internal/source"
	"ashlang/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.ash", []byte(input))
	bag := diag.NewBag(16)
	return lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func collect(lx *lexer.Lexer) []token.Token {
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestFunctionHeader(t *testing.T) {
	lx, bag := makeTestLexer("fn add(a, b) {\n  return a + b\n}\n")
	got := kinds(collect(lx))
	want := []token.Kind{
		token.KwFn, token.Ident, token.LParen, token.Ident, token.Comma, token.Ident, token.RParen, token.LBrace,
		token.KwReturn, token.Ident, token.Plus, token.Ident,
		token.RBrace, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
}

func TestOperators(t *testing.T) {
	lx, _ := makeTestLexer("= == != < * / - ;")
	got := kinds(collect(lx))
	want := []token.Kind{token.Assign, token.EqEq, token.BangEq, token.Lt, token.Star, token.Slash, token.Minus, token.Semicolon, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCommentsAndNewlinesAreTrivia(t *testing.T) {
	lx, _ := makeTestLexer("let x = 1 // one\nx = 2")
	toks := collect(lx)
	// let x = 1 x = 2 EOF
	if len(toks) != 8 {
		t.Fatalf("expected 8 tokens, got %d: %v", len(toks), kinds(toks))
	}
	second := toks[4]
	if second.Text != "x" || !second.StartsLine() {
		t.Fatalf("expected x on a new line, got %+v", second)
	}
	if toks[1].StartsLine() {
		t.Fatal("x after let must not start a line")
	}
	var sawComment bool
	for _, tv := range second.Leading {
		if tv.Kind == token.TriviaLineComment && tv.Text == "// one" {
			sawComment = true
		}
	}
	if !sawComment {
		t.Fatalf("expected comment trivia, got %+v", second.Leading)
	}
}

func TestSpansMatchText(t *testing.T) {
	src := "fn  main ( )"
	lx, _ := makeTestLexer(src)
	for _, tok := range collect(lx) {
		if got := src[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span text %q != token text %q", got, tok.Text)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("second Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("Next = %q", n.Text)
	}
}

func TestBadInputReported(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unknown char", "let x = 1 # 2", diag.LexUnknownChar},
		{"lone bang", "!x", diag.LexUnknownChar},
		{"unicode", "let é = 1", diag.LexUnknownChar},
		{"hex literal", "0x10", diag.LexBadNumber},
		{"too long", strings.Repeat("a", 5000), diag.LexTokenTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.src)
			toks := collect(lx)
			if !bag.HasErrors() {
				t.Fatalf("expected diagnostics for %q", tt.src)
			}
			if got := bag.Items()[0].Code; got != tt.code {
				t.Fatalf("code = %v, want %v", got.ID(), tt.code.ID())
			}
			var invalid bool
			for _, tok := range toks {
				invalid = invalid || tok.Kind == token.Invalid
			}
			if !invalid {
				t.Fatal("expected an Invalid token")
			}
		})
	}
}
