// Package loader reads a root schema file and every file it imports,
// transitively, attaching each parsed file to the import that names it.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/parser"
	"vellum/internal/source"
)

type fileState uint8

const (
	stateLoading fileState = iota + 1
	stateDone
)

type loader struct {
	fs      *source.FileSet
	r       diag.Reporter
	state   map[string]fileState
	stack   []string // canonical paths currently being loaded
	counter *diag.ErrorCounter
}

// Load parses root and its imports. Every canonical path is parsed once:
// the first import that reaches a file gets Resolved set, later imports of
// the same file keep Resolved == nil. The result is false when any
// diagnostic of error severity was reported.
func Load(fs *source.FileSet, root string, r diag.Reporter) (*ast.File, bool) {
	l := &loader{
		fs:      fs,
		state:   make(map[string]fileState),
		counter: diag.NewErrorCounter(r),
	}
	l.r = l.counter

	canon, err := canonicalPath(root)
	if err != nil {
		diag.ReportError(l.r, diag.IOFailure, source.Span{}, fmt.Sprintf("cannot resolve %q", root)).
			WithDetail(err.Error()).
			Emit()
		return nil, false
	}
	file := l.loadFile(canon, source.Span{}, false)
	return file, file != nil && l.counter.Errors() == 0
}

func (l *loader) loadFile(canon string, at source.Span, located bool) *ast.File {
	id, err := l.fs.Load(canon)
	if err != nil {
		b := diag.ReportError(l.r, diag.IOFailure, at, fmt.Sprintf("cannot read %q", l.display(canon)))
		if located {
			b = b.WithLabel("imported here")
		}
		b.WithDetail(err.Error()).Emit()
		return nil
	}

	l.state[canon] = stateLoading
	l.stack = append(l.stack, canon)
	defer func() {
		l.stack = l.stack[:len(l.stack)-1]
		l.state[canon] = stateDone
	}()

	res := parser.ParseSource(l.fs, id, l.r)
	file := res.File
	dir := filepath.Dir(canon)
	for i := range file.Items {
		imp := file.Items[i].Import
		if imp == nil {
			continue
		}
		l.resolveImport(dir, imp)
	}
	return file
}

func (l *loader) resolveImport(dir string, imp *ast.Import) {
	target := imp.Path
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, filepath.FromSlash(target))
	}
	canon, err := canonicalPath(target)
	if err != nil {
		diag.ReportError(l.r, diag.IOFailure, imp.PathSpan, fmt.Sprintf("cannot resolve import %q", imp.Path)).
			WithDetail(err.Error()).
			Emit()
		return
	}

	switch l.state[canon] {
	case stateDone:
		return
	case stateLoading:
		diag.ReportError(l.r, diag.ProjImportCycle, imp.PathSpan, "import cycle: "+l.cycleChain(canon)).
			WithLabel("cycle closes here").
			Emit()
		return
	}
	imp.Resolved = l.loadFile(canon, imp.PathSpan, true)
}

// cycleChain renders the loading stack from canon back to canon.
func (l *loader) cycleChain(canon string) string {
	start := 0
	for i, p := range l.stack {
		if p == canon {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(l.stack)-start+1)
	for _, p := range l.stack[start:] {
		parts = append(parts, l.display(p))
	}
	parts = append(parts, l.display(canon))
	return strings.Join(parts, " -> ")
}

func (l *loader) display(canon string) string {
	if rel, err := source.RelativePath(canon, l.fs.BaseDir()); err == nil {
		return rel
	}
	return canon
}

func canonicalPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
