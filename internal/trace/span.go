package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	globalSeq   uint64
	globalSpans uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

// NextSpanID returns a unique span ID.
func NextSpanID() uint64 {
	return atomic.AddUint64(&globalSpans, 1)
}

// Span provides a convenient RAII-style span tracking.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin starts a new span and emits SpanBegin event.
// parent is the parent span ID (0 if root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}

	id := NextSpanID()
	now := time.Now()
	t.Emit(&Event{
		Time:     now,
		Seq:      NextSeq(),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   id,
		ParentID: parent,
		Name:     name,
	})

	return &Span{
		tracer:   t,
		id:       id,
		parentID: parent,
		scope:    scope,
		name:     name,
		started:  now,
	}
}

// Start opens a span with the tracer and parent taken from ctx, and returns a
// context carrying the new span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx).SpanID)
	if s.id == 0 {
		return ctx, s
	}
	return WithSpanContext(ctx, SpanContext{SpanID: s.id}), s
}

// Point emits an instant event under the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: CurrentSpan(ctx).SpanID,
		Name:     name,
		Detail:   detail,
	})
}

// End emits SpanEnd event and returns the duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}

	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      NextSeq(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		Name:     s.name,
		Detail:   detail,
		Extra:    s.extra,
	})
	return dur
}

// WithExtra adds a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
