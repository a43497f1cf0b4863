package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

type tracerKey struct{}
type spanKey struct{}

// WithTracer attaches t to ctx. A nil t attaches Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// Span is an open begin/end pair. A nil or disabled Span ignores every call,
// so callers never check whether tracing is on.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	depth   int
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

func currentSpan(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	sp, _ := ctx.Value(spanKey{}).(*Span)
	return sp
}

// StartSpan opens a span under the span carried by ctx and returns a context
// carrying the new one. Scopes the tracer's level does not admit produce an
// inert span and leave ctx unchanged.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Level().Admits(scope) {
		return ctx, nil
	}
	sp := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	if parent := currentSpan(ctx); parent != nil {
		sp.parent = parent.id
		sp.depth = parent.depth + 1
	}
	sp.emit(KindBegin, sp.started, "", nil)
	return context.WithValue(ctx, spanKey{}, sp), sp
}

// With records an attribute reported on the end event.
func (s *Span) With(key, value string) *Span {
	if s != nil {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End closes the span and returns its duration. Only the first call emits.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	s.emit(KindEnd, now, detail, s.attrs)
	s.tracer = nil
	return now.Sub(s.started)
}

// ID returns the span identifier, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) emit(kind Kind, at time.Time, detail string, attrs []Attr) {
	s.tracer.Emit(&Event{
		Time:     at,
		Seq:      seqCounter.Add(1),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Depth:    s.depth,
		Name:     s.name,
		Detail:   detail,
		Attrs:    attrs,
	})
}

// Mark records an instant event under the span carried by ctx.
func Mark(ctx context.Context, scope Scope, name, detail string, attrs ...Attr) {
	t := FromContext(ctx)
	if !t.Level().Admits(scope) {
		return
	}
	ev := &Event{
		Time:   time.Now(),
		Seq:    seqCounter.Add(1),
		Kind:   KindMark,
		Scope:  scope,
		Name:   name,
		Detail: detail,
		Attrs:  attrs,
	}
	if parent := currentSpan(ctx); parent != nil {
		ev.ParentID = parent.id
		ev.Depth = parent.depth + 1
	}
	t.Emit(ev)
}
