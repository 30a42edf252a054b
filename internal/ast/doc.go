// Package ast holds the parsed form of schema files: items (imports,
// concrete and abstract structs, functions) and the closed Type union that
// describes every field, argument and return value.
package ast
