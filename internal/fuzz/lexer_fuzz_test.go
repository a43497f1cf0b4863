package fuzztests

import (
	"testing"

	"ashlang/internal/diag"
	"ashlang/internal/lexer"
	"ashlang/internal/source"
	"ashlang/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampSeed(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.ash", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// каждый токен съедает хотя бы один байт, иначе лексер зациклился
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if i > len(input) {
				t.Fatalf("lexer produced more tokens than input bytes (%d)", len(input))
			}
		}
	})
}
