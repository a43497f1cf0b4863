// Package token defines lexical token kinds and trivia for ashlang sources.
// Invariants:
//   - Token.Text is a slice of the original source.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace, newlines and // comments are leading Trivia and never
//     appear in the main token stream.
//   - Builtin names (read, write, secret, assert, assert_eq, inv) are
//     identifiers; they are recognised by the compiler, not the lexer.
package token
