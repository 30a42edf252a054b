package lexer

import (
	"vellum/internal/source"
	"vellum/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: lx.takeHold(),
		}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString()
	default:
		tok = lx.scanPunct()
	}

	tok.Leading = lx.takeHold()
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer, EOF excluded.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

func (lx *Lexer) takeHold() []token.Trivia {
	if len(lx.hold) == 0 {
		return nil
	}
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// File returns the source file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.emptySpan()
}
