package trace

import (
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

// Span provides RAII-style span tracking.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

// Begin starts a new span and emits a SpanBegin event.
// parent is the parent span ID (0 if root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().Records(scope) {
		return &Span{tracer: Nop}
	}

	id := NextSpanID()
	now := time.Now()
	t.Emit(&Event{
		Time:     now,
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

// End emits a SpanEnd event and returns the duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil || !s.tracer.Enabled() {
		return 0
	}

	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
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

// PointBuilder collects an instant event before it is emitted.
// A nil *PointBuilder is valid and does nothing.
type PointBuilder struct {
	tracer Tracer
	ev     Event
}

// Point prepares an instant event. It returns nil when the tracer would drop
// the event anyway, so callers can chain WithExtra/Emit unconditionally.
func Point(t Tracer, scope Scope, name string, parent uint64) *PointBuilder {
	if t == nil || !t.Enabled() || !t.Level().Records(scope) {
		return nil
	}
	return &PointBuilder{
		tracer: t,
		ev: Event{
			Kind:     KindPoint,
			Scope:    scope,
			ParentID: parent,
			Name:     name,
		},
	}
}

// WithExtra adds a key-value pair to the event.
func (b *PointBuilder) WithExtra(key, value string) *PointBuilder {
	if b == nil {
		return nil
	}
	if b.ev.Extra == nil {
		b.ev.Extra = make(map[string]string)
	}
	b.ev.Extra[key] = value
	return b
}

// Emit sends the event with the given detail.
func (b *PointBuilder) Emit(detail string) {
	if b == nil {
		return
	}
	b.ev.Time = time.Now()
	b.ev.Detail = detail
	b.tracer.Emit(&b.ev)
}
