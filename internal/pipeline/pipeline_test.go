package pipeline

import (
	"testing"
	"time"
)

func TestTimings(t *testing.T) {
	var a, b Timings
	a.Add(StageParse, 2*time.Millisecond)
	a.Add(StageParse, 3*time.Millisecond)
	b.Add(StageRender, time.Millisecond)
	a.Merge(b)

	if a.Duration(StageParse) != 5*time.Millisecond {
		t.Fatalf("parse = %v", a.Duration(StageParse))
	}
	if !a.Has(StageRender) || a.Has(StageWrite) {
		t.Fatal("Has is wrong")
	}
	if got := a.Sum(Stages...); got != 6*time.Millisecond {
		t.Fatalf("Sum = %v", got)
	}
}

func TestSinks(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a.txt", Status: StatusDone})
	if evt := <-ch; evt.File != "a.txt" || !evt.Status.Terminal() {
		t.Fatalf("unexpected event %+v", evt)
	}

	var rec Recorder
	Emit(&rec, Event{Stage: StageLoad, Status: StatusWorking})
	Emit(nil, Event{})
	if evs := rec.Events(); len(evs) != 1 || evs[0].Status.Terminal() {
		t.Fatalf("recorded %+v", evs)
	}
}
