package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"vellum/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t', '\r' коалесцируются в один TriviaSpace
// - последовательные '\n' коалесцируются в один TriviaNewline
// - //... до \n -> TriviaLineComment
// - ///... до \n -> TriviaDocLine, текст без маркера и в NFC
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if isSpace(b) {
			for isSpace(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaSpace, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNewline, Span: sp, Text: lx.text(sp)})
			continue
		}

		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
			lx.scanCommentIntoHold()
			continue
		}
		break
	}
}

func (lx *Lexer) scanCommentIntoHold() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	kind := token.TriviaLineComment
	// "////" и длиннее: обычный комментарий (разделители)
	if b0, b1, ok := lx.cursor.Peek2(); lx.cursor.Peek() == '/' && !(ok && b0 == '/' && b1 == '/') {
		lx.cursor.Bump()
		kind = token.TriviaDocLine
	}
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if kind == token.TriviaDocLine {
		text = docText(text)
	}
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: text})
}

// docText strips the `///` marker and one following space.
func docText(raw string) string {
	s := strings.TrimPrefix(raw, "///")
	s = strings.TrimPrefix(s, " ")
	s = strings.TrimRight(s, " \t\r")
	return norm.NFC.String(s)
}
