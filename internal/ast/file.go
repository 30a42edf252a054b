package ast

import "vellum/internal/source"

// File is one parsed schema file.
type File struct {
	ID    source.FileID
	Path  string
	Items []Item
}

// Imports returns the import items of f in source order.
func (f *File) Imports() []*Import {
	var out []*Import
	for i := range f.Items {
		if f.Items[i].Kind == ItemImport {
			out = append(out, f.Items[i].Import)
		}
	}
	return out
}
