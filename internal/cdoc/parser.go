package cdoc

import (
	"fmt"
	"iter"

	"fortio.org/safecast"

	"cdoc/internal/diag"
	"cdoc/internal/trace"
)

type state uint8

const (
	stateInit state = iota // ещё не выдано описание
	stateAttr              // выдаём атрибуты по одному
	stateDone
	stateFatal
)

func (s state) String() string {
	switch s {
	case stateInit:
		return "init"
	case stateAttr:
		return "attr"
	case stateDone:
		return "done"
	case stateFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Options configures a Parser.
type Options struct {
	// Tracer receives one point per produced event and per fatal error at
	// debug level. May be nil.
	Tracer trace.Tracer
	// Parent is the span the trace points are attached to.
	Parent uint64
}

// Parser is a forward-only, pull-based producer of comment events.
//
// Each call to Next advances the scan by exactly one event or ends the
// stream. After the stream has ended, Finish reports either the unconsumed
// tail of the input or the fatal error that stopped the parse.
type Parser struct {
	cur   Cursor
	state state
	err   error
	opts  Options
}

// New creates a parser over one comment body. The returned events reference
// src directly; src is never modified.
func New(src string, opts Options) *Parser {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	p := &Parser{cur: NewCursor(src), opts: opts}
	if _, err := safecast.Conv[uint32](len(src)); err != nil {
		p.cur = NewCursor("")
		p.fail(cut(diag.DocInputTooLarge, "", 0, fmt.Sprintf("comment body of %d bytes is too large", len(src))))
	}
	return p
}

// Next returns the next event. ok is false once the stream has ended, either
// normally or because of a fatal error (see Finish).
func (p *Parser) Next() (Event, bool) {
	switch p.state {
	case stateInit:
		start := p.cur.Off
		text, err := tillAttr(&p.cur)
		switch {
		case err == nil:
			p.state = stateAttr
			return p.emit(Event{Kind: EventDescription, Text: text, Start: start, End: p.cur.Off}), true
		case isBacktrack(err):
			p.state = stateDone
		default:
			p.fail(err)
		}

	case stateAttr:
		skipWhitespace(&p.cur)
		start := p.cur.Off
		attr, err := parseAttr(&p.cur)
		switch {
		case err == nil:
			return p.emit(Event{Kind: EventAttr, Attr: attr, Start: start, End: p.cur.Off}), true
		case isBacktrack(err):
			p.state = stateDone
		default:
			p.fail(inAttr(err, start))
		}

	case stateDone, stateFatal:
	}
	return Event{}, false
}

// All adapts the parser to a range-over-func sequence. The sequence shares
// the parser state, so it can be ranged over only once.
func (p *Parser) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for {
			ev, ok := p.Next()
			if !ok || !yield(ev) {
				return
			}
		}
	}
}

// Finish returns the unconsumed tail of the input (empty for well-formed
// comments) or the fatal error, if one occurred.
func (p *Parser) Finish() (string, error) {
	if p.state == stateFatal {
		return "", p.err
	}
	return p.cur.Rest(), nil
}

// Offset reports how many bytes of the input have been consumed.
func (p *Parser) Offset() uint32 {
	return p.cur.Off
}

// Done reports whether the stream has ended.
func (p *Parser) Done() bool {
	return p.state == stateDone || p.state == stateFatal
}

func (p *Parser) emit(ev Event) Event {
	if p.opts.Tracer.Enabled() {
		trace.Point(p.opts.Tracer, trace.ScopeNode, "cdoc."+ev.Kind.String(), p.opts.Parent).
			WithExtra("state", p.state.String()).
			WithExtra("span", fmt.Sprintf("%d-%d", ev.Start, ev.End)).
			Emit(eventDetail(ev))
	}
	return ev
}

func (p *Parser) fail(err error) {
	p.state = stateFatal
	p.err = err
	if p.opts.Tracer.Enabled() {
		trace.Point(p.opts.Tracer, trace.ScopeNode, "cdoc.fatal", p.opts.Parent).Emit(err.Error())
	}
}

func eventDetail(ev Event) string {
	if ev.Kind == EventAttr {
		return ev.Attr.Kind.String()
	}
	return fmt.Sprintf("%d bytes", len(ev.Text))
}

// Collect parses src to completion and returns all events together with the
// result of Finish.
func Collect(src string, opts Options) ([]Event, string, error) {
	p := New(src, opts)
	var events []Event
	for ev := range p.All() {
		events = append(events, ev)
	}
	tail, err := p.Finish()
	return events, tail, err
}
