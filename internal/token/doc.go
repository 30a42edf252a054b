// Package token defines the lexical vocabulary of schema files: token kinds,
// keywords, primitive type names and the trivia (whitespace, comments, doc
// comments) attached in front of each token.
package token
