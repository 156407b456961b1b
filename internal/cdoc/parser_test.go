package cdoc_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"cdoc/internal/cdoc"
	"cdoc/internal/diag"
	"cdoc/internal/testkit"
	"cdoc/internal/trace"
)

func collect(t *testing.T, src string) ([]cdoc.Event, string) {
	t.Helper()
	events, tail, err := cdoc.Collect(src, cdoc.Options{})
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if err := testkit.CheckEventInvariants(src, events, tail); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	return events, tail
}

func expectEvents(t *testing.T, got []cdoc.Event, want ...cdoc.Event) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if !got[i].SameAs(want[i]) {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNoAttributes(t *testing.T) {
	src := " Just a description\n with two lines and an email a@b.c\n"
	events, tail := collect(t, src)
	expectEvents(t, events, cdoc.Description(src))
	if tail != "" {
		t.Fatalf("tail = %q", tail)
	}
}

func TestEmptyInput(t *testing.T) {
	events, tail := collect(t, "")
	if len(events) != 0 || tail != "" {
		t.Fatalf("empty input produced %v, tail %q", events, tail)
	}
}

func TestDescriptionThenBrief(t *testing.T) {
	events, tail := collect(t, "desc\n@brief hi\n")
	expectEvents(t, events,
		cdoc.Description("desc\n"),
		cdoc.AttrEvent(cdoc.BriefAttr("hi\n")),
	)
	if tail != "" {
		t.Fatalf("tail = %q", tail)
	}
}

func TestEmptyDescriptionThenParam(t *testing.T) {
	events, _ := collect(t, "@param name this is a description\n")
	expectEvents(t, events,
		cdoc.Description(""),
		cdoc.AttrEvent(cdoc.ParamAttr(cdoc.DirNone, "name", "this is a description\n", true)),
	)
}

func TestParamInAndBareReturn(t *testing.T) {
	events, _ := collect(t, "@param[in] x\n@return\n")
	expectEvents(t, events,
		cdoc.Description(""),
		cdoc.AttrEvent(cdoc.ParamAttr(cdoc.DirIn, "x", "", false)),
		cdoc.AttrEvent(cdoc.ReturnAttr("", false)),
	)
}

func TestMidLineAtIsText(t *testing.T) {
	src := "see a@b for details\n"
	events, _ := collect(t, src)
	expectEvents(t, events, cdoc.Description(src))
}

func TestAttributeAfterArgumentsOnSameLine(t *testing.T) {
	tests := []struct {
		src  string
		want []cdoc.Event
	}{
		{"@param x @brief y\n", []cdoc.Event{
			cdoc.Description(""),
			cdoc.AttrEvent(cdoc.ParamAttr(cdoc.DirNone, "x", "", false)),
			cdoc.AttrEvent(cdoc.BriefAttr("y\n")),
		}},
		{"@deprecated @nodoc\n", []cdoc.Event{
			cdoc.Description(""),
			cdoc.AttrEvent(cdoc.DeprecatedAttr()),
			cdoc.AttrEvent(cdoc.NoDocAttr()),
		}},
		{"@return @see foo\n", []cdoc.Event{
			cdoc.Description(""),
			cdoc.AttrEvent(cdoc.ReturnAttr("", false)),
			cdoc.AttrEvent(cdoc.SeeAttr("foo\n")),
		}},
		// описание уже началось, @note дальше по строке остаётся текстом
		{"@brief a @note b\n", []cdoc.Event{
			cdoc.Description(""),
			cdoc.AttrEvent(cdoc.BriefAttr("a @note b\n")),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			events, tail := collect(t, tt.src)
			expectEvents(t, events, tt.want...)
			if tail != "" {
				t.Fatalf("tail = %q", tail)
			}
		})
	}
}

func TestWhitespaceSet(t *testing.T) {
	// CRLF между атрибутами пропускается целиком
	events, tail := collect(t, "@param x\r\n@return\r\n")
	expectEvents(t, events,
		cdoc.Description(""),
		cdoc.AttrEvent(cdoc.ParamAttr(cdoc.DirNone, "x", "", false)),
		cdoc.AttrEvent(cdoc.ReturnAttr("", false)),
	)
	if tail != "" {
		t.Fatalf("tail = %q", tail)
	}

	// \v и \f не разделяют ключевое слово и аргументы
	for _, src := range []string{"@brief\vtext\n", "@note\ftext\n"} {
		events, tail := collect(t, src)
		expectEvents(t, events, cdoc.Description(src))
		if tail != "" {
			t.Fatalf("%q: tail = %q", src, tail)
		}
	}
}

func TestSeeAnchor(t *testing.T) {
	events, _ := collect(t, "@see # anchor text here\n")
	expectEvents(t, events,
		cdoc.Description(""),
		cdoc.AttrEvent(cdoc.SeeAttr("anchor text here\n")),
	)
}

func TestAllAttributes(t *testing.T) {
	src := "Frees a block.\n\n" +
		"@param[inout] block  the block\n" +
		"   spanning two lines\n" +
		"@param arena\n" +
		"@returns true on success\n" +
		"@deprecated\n" +
		"@see free_block\n" +
		"@note never call twice\n" +
		"@nodoc\n"
	events, tail := collect(t, src)
	expectEvents(t, events,
		cdoc.Description("Frees a block.\n\n"),
		cdoc.AttrEvent(cdoc.ParamAttr(cdoc.DirInOut, "block", "the block\n   spanning two lines\n", true)),
		cdoc.AttrEvent(cdoc.ParamAttr(cdoc.DirNone, "arena", "", false)),
		cdoc.AttrEvent(cdoc.ReturnAttr("true on success\n", true)),
		cdoc.AttrEvent(cdoc.DeprecatedAttr()),
		cdoc.AttrEvent(cdoc.SeeAttr("free_block\n")),
		cdoc.AttrEvent(cdoc.NoteAttr("never call twice\n")),
		cdoc.AttrEvent(cdoc.NoDocAttr()),
	)
	if tail != "" {
		t.Fatalf("tail = %q", tail)
	}
}

func TestUnknownKeywordStaysInDescription(t *testing.T) {
	events, _ := collect(t, "intro\n@todo later\n@brief b\n")
	expectEvents(t, events,
		cdoc.Description("intro\n@todo later\n"),
		cdoc.AttrEvent(cdoc.BriefAttr("b\n")),
	)
}

func TestCRLFKeptVerbatim(t *testing.T) {
	events, _ := collect(t, "desc\r\n@param p value\r\n")
	expectEvents(t, events,
		cdoc.Description("desc\r\n"),
		cdoc.AttrEvent(cdoc.ParamAttr(cdoc.DirNone, "p", "value\r\n", true)),
	)
}

func TestTrailingTextAfterNoArgAttribute(t *testing.T) {
	// после @deprecated свободный текст не является атрибутом
	events, tail := collect(t, "@deprecated use foo\n")
	expectEvents(t, events,
		cdoc.Description(""),
		cdoc.AttrEvent(cdoc.DeprecatedAttr()),
	)
	if tail != "use foo\n" {
		t.Fatalf("tail = %q", tail)
	}
}

func TestFatalParamWithoutName(t *testing.T) {
	p := cdoc.New("desc\n@param\n", cdoc.Options{})
	var events []cdoc.Event
	for ev := range p.All() {
		events = append(events, ev)
	}
	expectEvents(t, events, cdoc.Description("desc\n"))

	_, err := p.Finish()
	var perr *cdoc.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *cdoc.Error, got %v", err)
	}
	if perr.Code != diag.DocExpectIdent || perr.Keyword != "param" {
		t.Fatalf("got %s @%s", perr.Code.ID(), perr.Keyword)
	}
	if !strings.Contains(err.Error(), "@param") {
		t.Fatalf("error text %q lacks the keyword", err)
	}
	// поток закрыт окончательно
	if _, ok := p.Next(); ok {
		t.Fatal("Next after fatal error produced an event")
	}
	if !p.Done() {
		t.Fatal("parser not done after fatal error")
	}
}

func TestFatalStrayCR(t *testing.T) {
	_, _, err := cdoc.Collect("a\rb\n", cdoc.Options{})
	var perr *cdoc.Error
	if !errors.As(err, &perr) || perr.Code != diag.DocStrayCarriageReturn {
		t.Fatalf("expected stray CR error, got %v", err)
	}
	if perr.Keyword != "" || perr.Off != 1 {
		t.Fatalf("unexpected error context: %+v", perr)
	}
}

func TestPullIsIncremental(t *testing.T) {
	src := "d\n@brief a\n@param\n"
	p := cdoc.New(src, cdoc.Options{})

	ev, ok := p.Next()
	if !ok || ev.Kind != cdoc.EventDescription {
		t.Fatalf("first Next = %v, %v", ev, ok)
	}
	if p.Offset() != 2 {
		t.Fatalf("offset after description = %d, want 2", p.Offset())
	}
	ev, ok = p.Next()
	if !ok || ev.Attr.Kind != cdoc.AttrBrief {
		t.Fatalf("second Next = %v, %v", ev, ok)
	}
	if p.Done() {
		t.Fatal("fatal @param must not be reached before it is pulled")
	}
	if _, ok := p.Next(); ok {
		t.Fatal("expected end of stream")
	}
	if _, err := p.Finish(); err == nil {
		t.Fatal("expected fatal error")
	}
}

func TestEarlyStop(t *testing.T) {
	p := cdoc.New("d\n@brief a\n@note b\n", cdoc.Options{})
	for range p.All() {
		break
	}
	ev, ok := p.Next()
	if !ok || ev.Attr.Kind != cdoc.AttrBrief {
		t.Fatalf("stopping early must not skip events, got %v %v", ev, ok)
	}
}

func TestIdempotent(t *testing.T) {
	src := testkit.ReadFile(t, filepath.Join("testdata", "autocmds.txt"))
	first, tail1 := collect(t, src)
	second, tail2 := collect(t, src)
	if len(first) != len(second) || tail1 != tail2 {
		t.Fatalf("passes differ: %d/%d events, tails %q/%q", len(first), len(second), tail1, tail2)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("event %d differs: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestAutocmdsComment(t *testing.T) {
	src := testkit.ReadFile(t, filepath.Join("testdata", "autocmds.txt"))
	events, tail := collect(t, src)

	wantDesc := " Get all autocommands that match the corresponding {opts}.\n" +
		"\n" +
		" These examples will get autocommands matching ALL the given criteria:\n" +
		"\n" +
		" ```lua\n" +
		" -- Matches all criteria\n" +
		" autocommands = vim.api.nvim_get_autocmds({\n" +
		"   group = 'MyGroup',\n" +
		"   event = {'BufEnter', 'BufWinEnter'},\n" +
		"   pattern = {'*.c', '*.h'}\n" +
		" })\n" +
		"\n" +
		" -- All commands from one group\n" +
		" autocommands = vim.api.nvim_get_autocmds({\n" +
		"   group = 'MyGroup',\n" +
		" })\n" +
		" ```\n" +
		"\n" +
		" NOTE: When multiple patterns or events are provided, it will find all the autocommands that\n" +
		" match any combination of them.\n" +
		"\n"
	wantParam := "Dict with at least one of the following:\n" +
		"             - buffer: (integer) Buffer number or list of buffer numbers for buffer local autocommands\n" +
		"             |autocmd-buflocal|. Cannot be used with {pattern}\n" +
		"             - event: (vim.api.keyset.events|vim.api.keyset.events[])\n" +
		"               event or events to match against |autocmd-events|.\n" +
		"             - id: (integer) Autocommand ID to match.\n" +
		"             - group: (string|table) the autocommand group name or id to match against.\n" +
		"             - pattern: (string|table) pattern or patterns to match against |autocmd-pattern|.\n" +
		"             Cannot be used with {buffer}\n"
	wantReturn := "Array of autocommands matching the criteria, with each item\n" +
		"             containing the following fields:\n" +
		"             - buffer: (integer) the buffer number.\n" +
		"             - buflocal: (boolean) true if the autocommand is buffer local.\n" +
		"             - command: (string) the autocommand command. Note: this will be empty if a callback is set.\n" +
		"             - callback: (function|string|nil): Lua function or name of a Vim script function\n" +
		"               which is executed when this autocommand is triggered.\n" +
		"             - desc: (string) the autocommand description.\n" +
		"             - event: (vim.api.keyset.events) the autocommand event.\n" +
		"             - id: (integer) the autocommand id (only when defined with the API).\n" +
		"             - group: (integer) the autocommand group id.\n" +
		"             - group_name: (string) the autocommand group name.\n" +
		"             - once: (boolean) whether the autocommand is only run once.\n" +
		"             - pattern: (string) the autocommand pattern.\n" +
		"               If the autocommand is buffer local |autocmd-buffer-local|:\n"

	expectEvents(t, events,
		cdoc.Description(wantDesc),
		cdoc.AttrEvent(cdoc.ParamAttr(cdoc.DirNone, "opts", wantParam, true)),
		cdoc.AttrEvent(cdoc.ReturnAttr(wantReturn, true)),
	)
	if tail != "" {
		t.Fatalf("tail = %q", tail)
	}
}

func TestTracePoints(t *testing.T) {
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	_, _, err := cdoc.Collect("d\n@brief a\n@param\n", cdoc.Options{Tracer: ring, Parent: 7})
	if err == nil {
		t.Fatal("expected fatal error")
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.ParentID != 7 {
			t.Errorf("event %s has parent %d", ev.Name, ev.ParentID)
		}
		names = append(names, ev.Name)
	}
	want := "cdoc.description,cdoc.attr,cdoc.fatal"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("trace points = %s, want %s", got, want)
	}
}
