// Package emit holds what every output backend shares: the ordered unit of
// items with its helper surface, generated files, and writing them out.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vellum/internal/abi"
	"vellum/internal/ast"
)

// Unit is one compiled schema as backends see it.
type Unit struct {
	// Name is the output stem, normally the root file name without extension.
	Name string
	// Source is the display path of the root schema file.
	Source string
	// Items come in dependency order: concrete structs first, then the rest.
	Items   []*ast.Item
	Surface *abi.Surface
}

func NewUnit(name, source string, items []*ast.Item) *Unit {
	return &Unit{
		Name:    name,
		Source:  source,
		Items:   items,
		Surface: abi.CollectSurface(items),
	}
}

// Structs returns concrete structs in dependency order.
func (u *Unit) Structs() []*ast.Item {
	return u.filter((*ast.Item).IsConcreteStruct)
}

func (u *Unit) AbstractStructs() []*ast.Item {
	return u.filter((*ast.Item).IsAbstractStruct)
}

func (u *Unit) Functions() []*ast.Item {
	return u.filter(func(it *ast.Item) bool { return it.Kind == ast.ItemFunction })
}

func (u *Unit) filter(keep func(*ast.Item) bool) []*ast.Item {
	var out []*ast.Item
	for _, it := range u.Items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// File is one generated output.
type File struct {
	Name    string
	Content []byte
}

// Backend renders a unit into files.
type Backend func(u *Unit) ([]File, error)

// WriteError is returned by WriteFiles for the first file that failed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// WriteFiles writes files under dir, creating it when missing, and returns the
// paths written.
func WriteFiles(dir string, files []File) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteError{Path: dir, Err: err}
	}
	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		// #nosec G306 -- generated headers are meant to be world-readable
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return written, &WriteError{Path: path, Err: err}
		}
		written = append(written, path)
	}
	return written, nil
}

// GuardName turns a unit name into an upper-case preprocessor identifier.
func GuardName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// WriteDocs writes doc lines as line comments using marker ("//", "#").
func WriteDocs(sb *strings.Builder, indent, marker string, docs []string) {
	for _, d := range docs {
		sb.WriteString(indent)
		sb.WriteString(marker)
		if d != "" {
			sb.WriteByte(' ')
			sb.WriteString(d)
		}
		sb.WriteByte('\n')
	}
}

// Banner is the first line of every generated file, without comment marker.
func Banner(u *Unit) string {
	return fmt.Sprintf("Generated by vellum from %s. Do not edit.", u.Source)
}
