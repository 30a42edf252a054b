package lexer

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"fortio.org/safecast"

	"vellum/internal/diag"
	"vellum/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	kind := token.Ident
	if k, ok := token.LookupKeyword(text); ok {
		kind = k
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// scanNumber читает десятичный литерал; хвост из букв даёт LexBadNumber.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	bad := false
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
		bad = true
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if !bad {
		if _, err := strconv.ParseUint(text, 10, 64); err != nil {
			bad = true
		}
	}
	if bad {
		lx.errLex(diag.LexBadNumber, sp, fmt.Sprintf("invalid integer literal %q", text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text}
}

// scanString читает '...' или "..." без escape-последовательностей;
// Text хранит содержимое без кавычек.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == quote {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start+1 : sp.End-1])}
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	kind := token.Invalid
	switch b {
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case ';':
		kind = token.Semicolon
	case '*':
		kind = token.Star
	case '-':
		if lx.cursor.Eat('>') {
			kind = token.Arrow
		}
	}
	if kind == token.Invalid {
		if b >= utf8.RuneSelf {
			lx.cursor.Reset(start)
			lx.bumpRune()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	if lx.cursor.EOF() {
		return
	}
	_, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\f' }
