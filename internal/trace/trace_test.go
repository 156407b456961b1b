package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"", LevelOff, false},
		{"off", LevelOff, false},
		{"ERROR", LevelError, false},
		{" phase ", LevelPhase, false},
		{"detail", LevelDetail, false},
		{"debug", LevelDebug, false},
		{"verbose", LevelOff, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = (%s, %v), want %s", tt.in, got, err, tt.want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level   Level
		scope   Scope
		emit    bool
		records bool
	}{
		{LevelError, ScopeDriver, false, true},
		{LevelError, ScopeFile, false, true},
		{LevelError, ScopeNode, false, false},
		{LevelPhase, ScopePass, true, true},
		{LevelPhase, ScopeFile, false, false},
		{LevelDetail, ScopeFile, true, true},
		{LevelDetail, ScopeNode, false, false},
		{LevelDebug, ScopeNode, true, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.emit {
			t.Errorf("%s.ShouldEmit(%s) = %v", tt.level, tt.scope, got)
		}
		if got := tt.level.Records(tt.scope); got != tt.records {
			t.Errorf("%s.Records(%s) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeFile, name, 0).Emit("")
	}
	snap := ring.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestSpanBeginEnd(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopeDriver, "render", 0)
	file := Begin(tr, ScopeFile, "file:a.txt", root.ID()).WithExtra("bytes", "12")
	Point(tr, ScopeNode, "cdoc.attr", file.ID()).Emit("dropped at detail")
	file.End("ok")
	root.End("")

	out := buf.String()
	for _, part := range []string{"→ driver render", "→ file file:a.txt", "← file file:a.txt (ok) {bytes=12}", "← driver render"} {
		if !strings.Contains(out, part) {
			t.Errorf("output lacks %q:\n%s", part, out)
		}
	}
	if strings.Contains(out, "cdoc.attr") {
		t.Errorf("node event leaked at detail level:\n%s", out)
	}
}

func TestNopAndNilSafety(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "x", 0)
	if s.ID() != 0 {
		t.Fatal("Begin on Nop must not allocate a span id")
	}
	if d := s.WithExtra("k", "v").End(""); d != 0 {
		t.Fatalf("End on Nop span = %v", d)
	}
	Point(nil, ScopeNode, "x", 0).WithExtra("k", "v").Emit("")
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
}

func TestMultiAndRingLookup(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, Format: FormatNDJSON})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "parse", 0).End("")
	ring, ok := Ring(tr)
	if !ok {
		t.Fatal("ModeBoth must contain a ring")
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Fatalf("ring holds %d events, want 2", n)
	}
	if !strings.Contains(buf.String(), `"name":"parse"`) {
		t.Fatalf("ndjson output missing event: %s", buf.String())
	}
}
