package parser

import (
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/lexer"
	"vellum/internal/source"
	"vellum/internal/token"
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

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *ast.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile: входная точка для разбора одного файла.
// Лексер должен быть создан с тем же Reporter, что и opts.
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	f := lx.File()
	p := Parser{
		lx:       lx,
		file:     &ast.File{ID: f.ID, Path: f.Path},
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.parseItems()
	return Result{File: p.file, Errors: p.opts.CurrentErrors}
}

// ParseSource lexes and parses one file of fs with a shared reporter.
func ParseSource(fs *source.FileSet, id source.FileID, r diag.Reporter) Result {
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: r})
	return ParseFile(lx, Options{Reporter: r})
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// parseItems: основной цикл верхнего уровня, пока не EOF вызываем parseItem.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		item, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		p.file.Items = append(p.file.Items, item)
	}
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.Item, bool) {
	switch p.lx.Peek().Kind {
	case token.KwImport:
		return p.parseImportItem()
	case token.KwStruct:
		return p.parseStructItem()
	case token.KwFunction:
		return p.parseFunctionItem()
	default:
		tok := p.advance()
		p.report(diag.SynUnexpectedTopLevel, tok.Span, "expected `import`, `struct` or `function`, got \""+tok.Text+"\"")
		return ast.Item{}, false
	}
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
func (p *Parser) resyncTop() {
	for {
		tok := p.lx.Peek()
		if tok.Kind == token.EOF || tok.IsItemStart() {
			return
		}
		p.advance()
		if tok.Kind == token.Semicolon {
			return
		}
	}
}

// parseIdent ожидает Ident; на ошибке: репорт SynExpectIdentifier.
func (p *Parser) parseIdent(what string) (ast.Identifier, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return ast.Identifier{Name: tok.Text, Span: tok.Span}, true
	}
	p.err(diag.SynExpectIdentifier, "expected "+what+", got \""+p.lx.Peek().Text+"\"")
	return ast.Identifier{}, false
}
