package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var languageSeeds = []string{
	"",
	"fn main() {\n}\n",
	"fn main(a, b) {\n    return a + b\n}\n",
	"fn f(n) {\n    let r = 1\n    if n {\n        r = n * f(n - 1)\n    }\n    return r\n}\n",
	"fn g(a, b) {\n    if a < b {\n        write(a)\n    } else {\n        write(b / a)\n    }\n}\n",
	"fn h() {\n    let x = read()\n    while x {\n        x = x - 1\n        write(x)\n    }\n}\n",
	"fn w(a) {\n    let s = secret()\n    assert_eq(a * s, 6)\n    return -s\n}\n",
	"// comment only\n",
	"fn broken( {\n    return\n",
	"fn n() {\n    return 18446744073709551616\n}\n",
}

var asmSeeds = []string{
	"    read_io 1\n    call fn_0_main\n    write_io 1\n    halt\nfn_0_main:\n    dup 0\n    add\n    return\n",
	"    push -1\n    push 3\n    lt\n    skiz\n    nop\n    halt\n",
	"loop:\n    dup 0\n    push 0\n    eq\n    skiz\n    return\n    recurse\n",
	"    swap 16\n",
	"label:\nlabel:\n",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f, ".ash")
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

func addAsmSeeds(f *testing.F) {
	addTestdataSeeds(f, ".tasm")
	for _, s := range asmSeeds {
		f.Add([]byte(s))
	}
}

func addTestdataSeeds(f *testing.F, ext string) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем файлы с нужным расширением
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ext {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
