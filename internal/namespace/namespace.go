// Package namespace flattens a root file and its imports into one
// name-keyed mapping that preserves first-seen order.
package namespace

import (
	"fmt"

	"vellum/internal/ast"
	"vellum/internal/diag"
)

// Namespace maps every declared name to its item. Iteration order is the
// order in which names were first inserted.
type Namespace struct {
	items  []*ast.Item
	byName map[string]int
}

func New() *Namespace {
	return &Namespace{byName: make(map[string]int)}
}

// Insert adds item under its declared name. When the name is taken the
// existing item is returned and nothing changes.
func (ns *Namespace) Insert(item *ast.Item) (*ast.Item, bool) {
	name, ok := item.Name()
	if !ok {
		return nil, false
	}
	if idx, dup := ns.byName[name.Name]; dup {
		return ns.items[idx], false
	}
	ns.byName[name.Name] = len(ns.items)
	ns.items = append(ns.items, item)
	return nil, true
}

func (ns *Namespace) Lookup(name string) (*ast.Item, bool) {
	idx, ok := ns.byName[name]
	if !ok {
		return nil, false
	}
	return ns.items[idx], true
}

// Index returns the first-seen position of name, or -1.
func (ns *Namespace) Index(name string) int {
	if idx, ok := ns.byName[name]; ok {
		return idx
	}
	return -1
}

func (ns *Namespace) Len() int {
	return len(ns.items)
}

// Items returns items in first-seen order; do not modify the slice.
func (ns *Namespace) Items() []*ast.Item {
	return ns.items
}

func (ns *Namespace) Names() []string {
	out := make([]string, len(ns.items))
	for i, it := range ns.items {
		name, _ := it.Name()
		out[i] = name.Name
	}
	return out
}

// Structs returns concrete and abstract structs in first-seen order.
func (ns *Namespace) Structs() []*ast.Item {
	return ns.filter(ast.ItemStruct)
}

func (ns *Namespace) Functions() []*ast.Item {
	return ns.filter(ast.ItemFunction)
}

func (ns *Namespace) filter(kind ast.ItemKind) []*ast.Item {
	var out []*ast.Item
	for _, it := range ns.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// Flatten walks file depth-first, descending into every resolved import at
// the position it appears, and inserts each struct and function. A name that
// is already taken reports SemaDuplicateName anchored at the first
// definition; the first definition is kept and the result is not ok.
func Flatten(file *ast.File, r diag.Reporter) (*Namespace, bool) {
	ns := New()
	ok := true
	var walk func(f *ast.File)
	walk = func(f *ast.File) {
		for i := range f.Items {
			item := &f.Items[i]
			if item.Kind == ast.ItemImport {
				if item.Import.Resolved != nil {
					walk(item.Import.Resolved)
				}
				continue
			}
			prev, inserted := ns.Insert(item)
			if inserted {
				continue
			}
			ok = false
			first, _ := prev.Name()
			again, _ := item.Name()
			diag.ReportError(r, diag.SemaDuplicateName, first.Span, fmt.Sprintf("duplicate name `%s`", first.Name)).
				WithLabel("first used here").
				WithNote(again.Span, "used again here").
				Emit()
		}
	}
	if file != nil {
		walk(file)
	}
	return ns, ok
}
