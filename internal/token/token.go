package token

import (
	"vellum/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwImport, KwStruct, KwFunction, KwFn, KwClosure, KwOwned, KwConst, KwMut, KwString:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsItemStart reports whether the token can begin a top-level item.
func (t Token) IsItemStart() bool {
	switch t.Kind {
	case KwImport, KwStruct, KwFunction:
		return true
	default:
		return false
	}
}

// Docs returns the text of the leading `///` comments, markers stripped.
func (t Token) Docs() []string {
	var out []string
	for _, tr := range t.Leading {
		if tr.Kind == TriviaDocLine {
			out = append(out, tr.Text)
		}
	}
	return out
}
