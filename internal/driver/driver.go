// Package driver runs the compiler pipeline for one root schema file:
// load, flatten, check, sort, then emit and write. Every phase reports into
// the result bag, and a phase runs only when its predecessors succeeded.
package driver

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"vellum/internal/ast"
	"vellum/internal/dag"
	"vellum/internal/diag"
	"vellum/internal/emit"
	"vellum/internal/emit/symbols"
	"vellum/internal/irpack"
	"vellum/internal/loader"
	"vellum/internal/namespace"
	"vellum/internal/observ"
	"vellum/internal/project"
	"vellum/internal/sema"
	"vellum/internal/source"
	"vellum/internal/trace"
)

const defaultMaxDiagnostics = 1 << 12

// Options configure Check and Compile.
type Options struct {
	MaxDiagnostics int
	// Jobs bounds concurrent item checks and backends; <= 0 means GOMAXPROCS.
	Jobs          int
	EnableTimings bool

	// Name is the output stem; empty means the root file name without
	// extension.
	Name    string
	Targets []string
	// OutDir receives the generated files. Empty keeps them in Result.Files
	// only.
	OutDir        string
	SymbolsFormat symbols.Format
	IREncoding    irpack.Encoding

	Cache    *DiskCache
	Observer PhaseObserver
}

// Result is everything a run produced. Fields of phases that did not run
// stay nil.
type Result struct {
	FileSet   *source.FileSet
	Bag       *diag.Bag
	Root      *ast.File
	Namespace *namespace.Namespace
	Deps      sema.Dependencies
	Unit      *emit.Unit
	Files     []emit.File
	Written   []string
	Timer     *observ.Timer
	CacheHit  bool

	failed bool
}

// OK reports whether every phase that ran succeeded.
func (r *Result) OK() bool {
	return !r.failed && !r.Bag.HasErrors()
}

// Check loads path and runs the analysis phases up to the ordered unit.
func Check(ctx context.Context, path string, opts Options) (*Result, error) {
	p := newPipeline(ctx, opts)
	defer p.finish()
	if !p.load(path) {
		return p.res, ctx.Err()
	}
	p.analyze()
	return p.res, ctx.Err()
}

// Compile runs Check and then renders every target, writing the files to
// opts.OutDir when it is set. With a cache, a run whose inputs and settings
// match a previous successful run reuses its outputs.
func Compile(ctx context.Context, path string, opts Options) (*Result, error) {
	targets, err := project.NormalizeTargets(opts.Targets)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		targets = project.DefaultTargets
	}

	p := newPipeline(ctx, opts)
	defer p.finish()
	if !p.load(path) {
		return p.res, ctx.Err()
	}

	var key project.Digest
	if opts.Cache != nil {
		key = cacheKey(p.res.FileSet, p.unitName(), &p.opts, targets)
		if p.fromCache(key) {
			p.write()
			return p.res, ctx.Err()
		}
	}

	if !p.analyze() {
		return p.res, ctx.Err()
	}
	if err := p.emit(targets); err != nil {
		return p.res, err
	}
	if opts.Cache != nil && p.res.OK() {
		p.toCache(key)
	}
	p.write()
	return p.res, ctx.Err()
}

type pipeline struct {
	ctx  context.Context
	opts Options
	res  *Result
	r    diag.Reporter
	span *trace.Span
}

func newPipeline(ctx context.Context, opts Options) *pipeline {
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	res := &Result{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(maxDiag),
	}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "pipeline")
	return &pipeline{
		ctx:  ctx,
		opts: opts,
		res:  res,
		r:    diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag}),
		span: span,
	}
}

func (p *pipeline) finish() {
	p.res.Bag.Sort()
	p.span.WithExtra("diagnostics", fmt.Sprint(p.res.Bag.Len())).End("")
}

// phase runs fn as a named, traced and timed step. A false result from fn,
// or a cancelled context, fails the run.
func (p *pipeline) phase(name string, fn func(ctx context.Context) (note string, ok bool)) bool {
	if p.ctx.Err() != nil {
		p.res.failed = true
		return false
	}
	ctx, span := trace.Start(p.ctx, trace.ScopePass, name)
	p.notify(PhaseEvent{Name: name, Status: PhaseStart})
	done := p.res.Timer.Track(name)
	start := time.Now()

	note, ok := fn(ctx)
	ok = ok && ctx.Err() == nil

	done(note)
	span.End(note)
	p.notify(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start), OK: ok})
	if !ok {
		p.res.failed = true
	}
	return ok
}

func (p *pipeline) notify(ev PhaseEvent) {
	if p.opts.Observer != nil {
		p.opts.Observer(ev)
	}
}

func (p *pipeline) load(path string) bool {
	return p.phase("load", func(context.Context) (string, bool) {
		root, ok := loader.Load(p.res.FileSet, path, p.r)
		p.res.Root = root
		return fmt.Sprintf("files=%d", p.res.FileSet.Len()), ok
	})
}

// analyze runs flatten, check and sort, and builds the unit.
func (p *pipeline) analyze() bool {
	ok := p.phase("flatten", func(context.Context) (string, bool) {
		ns, ok := namespace.Flatten(p.res.Root, p.r)
		p.res.Namespace = ns
		if ns == nil {
			return "", ok
		}
		return fmt.Sprintf("items=%d", ns.Len()), ok
	})
	if !ok {
		return false
	}

	ok = p.phase("check", func(ctx context.Context) (string, bool) {
		deps, ok := sema.Check(ctx, p.res.Namespace, p.r, sema.Options{
			Jobs:           p.jobs(),
			MaxDiagnostics: int(p.res.Bag.Cap()),
		})
		p.res.Deps = deps
		return "", ok
	})
	if !ok {
		return false
	}

	var ordered []*ast.Item
	ok = p.phase("sort", func(context.Context) (string, bool) {
		var ok bool
		ordered, ok = dag.Sort(p.res.Namespace, p.res.Deps, p.r)
		return fmt.Sprintf("items=%d", len(ordered)), ok
	})
	if !ok {
		return false
	}

	return p.phase("surface", func(context.Context) (string, bool) {
		u := emit.NewUnit(p.unitName(), filepath.Base(p.res.Root.Path), ordered)
		p.res.Unit = u
		return fmt.Sprintf("helpers=%d", u.Surface.Len()), true
	})
}

func (p *pipeline) jobs() int {
	if p.opts.Jobs <= 0 {
		return -1
	}
	return p.opts.Jobs
}

func (p *pipeline) unitName() string {
	if p.opts.Name != "" {
		return p.opts.Name
	}
	base := filepath.Base(p.res.Root.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (p *pipeline) emit(targets []string) error {
	var err error
	p.phase("emit", func(ctx context.Context) (string, bool) {
		var files []emit.File
		files, err = runBackends(ctx, p.res.Unit, p.backends(targets), p.opts.Jobs)
		p.res.Files = files
		return fmt.Sprintf("files=%d", len(files)), err == nil
	})
	return err
}

func (p *pipeline) write() {
	if p.opts.OutDir == "" || !p.res.OK() {
		return
	}
	p.phase("write", func(context.Context) (string, bool) {
		written, err := emit.WriteFiles(p.opts.OutDir, p.res.Files)
		p.res.Written = written
		if err != nil {
			p.reportWriteError(err)
			return "", false
		}
		return fmt.Sprintf("files=%d", len(written)), true
	})
}

func (p *pipeline) reportWriteError(err error) {
	msg := err.Error()
	detail := ""
	var we *emit.WriteError
	if errors.As(err, &we) {
		msg = fmt.Sprintf("cannot write %q", we.Path)
		detail = we.Err.Error()
	}
	at := source.Span{File: p.res.Root.ID}
	b := diag.ReportError(p.r, diag.IOFailure, at, msg).WithLabel("generated from this schema")
	if detail != "" {
		b = b.WithDetail(detail)
	}
	b.Emit()
}

func (p *pipeline) fromCache(key project.Digest) bool {
	var payload DiskPayload
	hit := false
	p.phase("cache", func(ctx context.Context) (string, bool) {
		ok, err := p.opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(ctx, trace.ScopePass, "cache_error", err.Error())
			return "miss", true
		}
		hit = ok
		if !ok {
			return "miss", true
		}
		return "hit", true
	})
	if hit {
		p.res.Files = payload.Files
		p.res.CacheHit = true
	}
	return hit
}

func (p *pipeline) toCache(key project.Digest) {
	inputs := make([]string, 0, p.res.FileSet.Len())
	for i := range p.res.FileSet.Len() {
		inputs = append(inputs, p.res.FileSet.DisplayPath(source.FileID(i)))
	}
	payload := &DiskPayload{Schema: diskCacheSchemaVersion, Inputs: inputs, Files: p.res.Files}
	if err := p.opts.Cache.Put(key, payload); err != nil {
		trace.Point(p.ctx, trace.ScopePass, "cache_error", err.Error())
	}
}
