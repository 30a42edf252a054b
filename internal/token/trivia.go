package token

import "vellum/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaDocLine
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
