package main

import (
	"fmt"
	"io"

	"vellum/internal/diagfmt"
	"vellum/internal/driver"
)

// report prints the diagnostics and timings of res to errOut and returns
// errFailed when the run did not succeed.
func report(out, errOut io.Writer, res *driver.Result, g globalOptions) error {
	mode := diagfmt.PathModeAuto
	if g.fullPath {
		mode = diagfmt.PathModeAbsolute
	}

	var err error
	switch g.format {
	case "json":
		// JSON идёт в stdout, чтобы его можно было передать дальше
		err = diagfmt.JSON(out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         mode,
			Max:              g.maxDiagnostics,
			IncludeNotes:     g.withNotes,
		})
	case "short":
		err = diagfmt.Short(errOut, res.Bag, res.FileSet, g.withNotes)
	default:
		diagfmt.Pretty(errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     g.color,
			Context:   1,
			PathMode:  mode,
			ShowNotes: g.withNotes,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to render diagnostics: %w", err)
	}

	if g.timings && res.Timer != nil {
		fmt.Fprint(errOut, res.Timer.Summary())
	}
	if !res.OK() {
		return errFailed
	}
	return nil
}
