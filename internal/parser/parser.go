package parser

import (
	"slices"

	"ashlang/internal/ast"
	"ashlang/internal/diag"
	"ashlang/internal/lexer"
	"ashlang/internal/source"
	"ashlang/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   *ast.File
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile — входная точка для разбора одного файла из FileSet.
// Ошибки уходят в opts.Reporter; разбор продолжается после восстановления.
func ParseFile(fs *source.FileSet, id source.FileID, opts Options) Result {
	f := fs.Get(id)
	if f == nil {
		return Result{File: &ast.File{ID: id}}
	}
	p := &Parser{
		file:     f,
		opts:     opts,
		lastSpan: source.Span{File: id},
	}
	// лексер и парсер делят счётчик ошибок
	p.lx = lexer.New(f, lexer.Options{Reporter: &countingReporter{next: opts.Reporter, opts: &p.opts}})

	out := &ast.File{ID: id, Path: f.Path}
	start := p.lx.Peek().Span
	p.parseItems(out)
	out.Span = start.Cover(p.lx.Peek().Span)
	return Result{File: out, Errors: p.opts.CurrentErrors}
}

// Parse разбирает файл и возвращает *Error, если были синтаксические ошибки.
func Parse(fs *source.FileSet, id source.FileID) (*ast.File, error) {
	bag := diag.NewBag(32)
	res := ParseFile(fs, id, Options{MaxErrors: 32, Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		bag.Sort()
		return nil, &Error{Path: displayName(fs, id), Diags: bag.Items()}
	}
	return res.File, nil
}

func displayName(fs *source.FileSet, id source.FileID) string {
	if f := fs.Get(id); f != nil {
		return f.Path
	}
	return "<unknown>"
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseFn.
func (p *Parser) parseItems(out *ast.File) {
	for !p.at(token.EOF) && !p.opts.Enough() {
		if !p.at(token.KwFn) {
			p.err(diag.SynUnexpectedTopLevel, "expected 'fn' at top level, found "+describe(p.lx.Peek()))
			p.resyncTop()
			continue
		}
		fn, ok := p.parseFn()
		if !ok {
			p.resyncTop()
			continue
		}
		out.Funcs = append(out.Funcs, fn)
	}
}

// resyncTop — восстановление после ошибки на верхнем уровне:
// прокручиваем до следующего `fn` в начале строки или EOF.
func (p *Parser) resyncTop() {
	p.advance()
	for !p.at(token.EOF) {
		tok := p.lx.Peek()
		if tok.Kind == token.KwFn && tok.StartsLine() {
			return
		}
		p.advance()
	}
}

// countingReporter forwards lexer diagnostics and bumps the shared error count.
type countingReporter struct {
	next diag.Reporter
	opts *Options
}

func (r *countingReporter) Report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if sev == diag.SevError {
		r.opts.CurrentErrors++
	}
	if r.next != nil {
		r.next.Report(code, sev, sp, msg)
	}
}
