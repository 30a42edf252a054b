package diagfmt

import (
	"io"

	"vellum/internal/diag"
	"vellum/internal/source"
)

// Short печатает по одной строке на диагностику, без цвета и сниппетов.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) error {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, includeNotes)
	if out == "" {
		return nil
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}
