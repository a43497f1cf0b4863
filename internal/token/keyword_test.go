package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"fn":     KwFn,
		"let":    KwLet,
		"if":     KwIf,
		"else":   KwElse,
		"while":  KwWhile,
		"return": KwReturn,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// builtins и регистр — не ключевые слова
	notKw := []string{"Fn", "LET", "read", "write", "secret", "assert", "inv", "for", "main"}
	for _, s := range notKw {
		if k, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want not a keyword", s, k)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := BangEq.String(); got != "!=" {
		t.Fatalf("BangEq.String() = %q", got)
	}
	if got := Kind(200).String(); got != "Kind(?)" {
		t.Fatalf("unknown kind String() = %q", got)
	}
}

func TestStartsLine(t *testing.T) {
	tok := Token{Kind: Ident, Leading: []Trivia{{Kind: TriviaSpace}, {Kind: TriviaNewline}}}
	if !tok.StartsLine() {
		t.Fatal("expected StartsLine with newline trivia")
	}
	tok.Leading = []Trivia{{Kind: TriviaLineComment}}
	if tok.StartsLine() {
		t.Fatal("comment alone must not start a line")
	}
}
