package sema

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"vellum/internal/abi"
	"vellum/internal/ast"
	"vellum/internal/diag"
	"vellum/internal/namespace"
)

// Dependencies maps an item name to the de-duplicated, first-seen-ordered
// list of concrete structs its layout depends on.
type Dependencies map[string][]string

// Of returns the dependency list of name (nil when it has none).
func (d Dependencies) Of(name string) []string {
	return d[name]
}

type Options struct {
	// Jobs > 1 checks items concurrently; output is identical to a
	// sequential run. Negative means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds each item's private bag in concurrent mode.
	MaxDiagnostics int
}

// Check validates every item of ns. All items are checked and every
// finding is reported; the result is ok only when no error was reported
// and ctx was not cancelled.
func Check(ctx context.Context, ns *namespace.Namespace, r diag.Reporter, opts Options) (Dependencies, bool) {
	items := ns.Items()
	deps := make(Dependencies, len(items))
	if len(items) == 0 {
		return deps, true
	}

	jobs := opts.Jobs
	if jobs == 0 {
		jobs = 1
	}
	if jobs < 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs == 1 {
		counter := diag.NewErrorCounter(r)
		for _, it := range items {
			if ctx.Err() != nil {
				return nil, false
			}
			name, _ := it.Name()
			deps[name.Name] = checkItem(ns, it, counter)
		}
		return deps, counter.Errors() == 0
	}
	return checkParallel(ctx, ns, r, opts, jobs)
}

type itemResult struct {
	deps []string
	bag  *diag.Bag
}

func checkParallel(ctx context.Context, ns *namespace.Namespace, r diag.Reporter, opts Options, jobs int) (Dependencies, bool) {
	items := ns.Items()
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = 1 << 12
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]itemResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(items)))
	for i, it := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			bag := diag.NewBag(maxDiag)
			results[i] = itemResult{
				deps: checkItem(ns, it, diag.BagReporter{Bag: bag}),
				bag:  bag,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false
	}

	deps := make(Dependencies, len(items))
	ok := true
	for i, it := range items {
		name, _ := it.Name()
		deps[name.Name] = results[i].deps
		if results[i].bag.HasErrors() {
			ok = false
		}
		results[i].bag.ReplayTo(r)
	}
	return deps, ok
}

// IsSized reports whether the layout of t is knowable: every type is sized
// except an identifier that does not name a concrete struct.
func IsSized(ns *namespace.Namespace, t *ast.Type) bool {
	return abi.IsSized(t, func(name string) bool {
		it, ok := ns.Lookup(name)
		return ok && it.IsConcreteStruct()
	})
}
