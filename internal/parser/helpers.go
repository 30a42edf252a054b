package parser

import (
	"vellum/internal/diag"
	"vellum/internal/source"
	"vellum/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: на EOF указываем сразу за последним токеном
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.err(code, msg)
	return token.Token{Kind: token.Invalid, Span: p.getDiagnosticSpan(), Text: p.lx.Peek().Text}, false
}

// eat съедает токен k, если он следующий.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// репортует ошибку и передает текущий спан; на Invalid лексер уже отчитался
func (p *Parser) err(code diag.Code, msg string) {
	if p.at(token.Invalid) {
		p.opts.CurrentErrors++
		return
	}
	p.report(code, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil || p.opts.Enough() {
		return
	}
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}
