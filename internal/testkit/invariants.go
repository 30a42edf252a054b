// Package testkit holds checks shared by package tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"vellum/internal/ast"
	"vellum/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every item span is non-empty, belongs to sf and lies within its content
// 2) item spans follow each other without overlap
// 3) every name and type span of an item lies inside the item span
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i := range f.Items {
		it := &f.Items[i]
		sp := it.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("item %d: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item %d: span points to file %d, want %d", i, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("item %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("item %d: span %v overlaps previous item ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End

		if err := checkItem(it); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func checkItem(it *ast.Item) error {
	inside := func(what string, sp source.Span) error {
		if !it.Span.Contains(sp) {
			return fmt.Errorf("%s span %v outside item span %v", what, sp, it.Span)
		}
		return nil
	}
	switch it.Kind {
	case ast.ItemImport:
		return inside("import path", it.Import.PathSpan)
	case ast.ItemStruct:
		if err := inside("name", it.Struct.Name.Span); err != nil {
			return err
		}
		for i := range it.Struct.Fields {
			f := &it.Struct.Fields[i]
			if err := inside("field "+f.Name.Name, f.Name.Span); err != nil {
				return err
			}
			if err := checkType(inside, &f.Type); err != nil {
				return err
			}
		}
	case ast.ItemFunction:
		fn := it.Function
		if err := inside("name", fn.Name.Span); err != nil {
			return err
		}
		for i := range fn.Args {
			if err := checkType(inside, &fn.Args[i].Type); err != nil {
				return err
			}
		}
		if fn.Returns != nil {
			return checkType(inside, fn.Returns)
		}
	}
	return nil
}

// checkType requires every nested type span to be non-empty and inside the item.
func checkType(inside func(string, source.Span) error, t *ast.Type) error {
	var err error
	ast.Walk(t, func(n *ast.Type) bool {
		if err != nil {
			return false
		}
		if n.Span.Empty() {
			err = fmt.Errorf("type %s has an empty span", n)
			return false
		}
		err = inside("type "+n.String(), n.Span)
		return err == nil
	})
	return err
}
