package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"vellum/internal/emit"
	"vellum/internal/emit/c"
	"vellum/internal/emit/cpp"
	"vellum/internal/emit/python"
	"vellum/internal/emit/symbols"
	"vellum/internal/irpack"
	"vellum/internal/project"
	"vellum/internal/trace"
)

type namedBackend struct {
	target string
	run    emit.Backend
}

// backends maps normalized target names to renderers.
func (p *pipeline) backends(targets []string) []namedBackend {
	out := make([]namedBackend, 0, len(targets))
	for _, t := range targets {
		var b emit.Backend
		switch t {
		case project.TargetC:
			b = c.Emit
		case project.TargetCPP:
			b = cpp.Emit
		case project.TargetPython:
			b = python.Emit
		case project.TargetSymbols:
			b = symbols.Backend(p.opts.SymbolsFormat)
		case project.TargetIR:
			b = irpack.Backend(p.res.Deps, p.opts.IREncoding)
		default:
			continue
		}
		out = append(out, namedBackend{target: t, run: b})
	}
	return out
}

// runBackends renders u with every backend concurrently and returns the
// files in backend order.
func runBackends(ctx context.Context, u *emit.Unit, backends []namedBackend, jobs int) ([]emit.File, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([][]emit.File, len(backends))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(backends))))
	for i, b := range backends {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, span := trace.Start(gctx, trace.ScopeItem, "emit "+b.target)
			files, err := b.run(u)
			span.End(fmt.Sprintf("files=%d", len(files)))
			if err != nil {
				return fmt.Errorf("%s backend: %w", b.target, err)
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []emit.File
	for _, files := range results {
		out = append(out, files...)
	}
	return out, nil
}
