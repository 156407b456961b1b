package driver

import (
	"testing"

	"cdoc/internal/diag"
	"cdoc/internal/source"
)

func parseString(t *testing.T, body string, opts ParseOptions) *CommentResult {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("comment.txt", []byte(body))
	if opts.MaxDiagnostics == 0 {
		opts.MaxDiagnostics = 16
	}
	return ParseComment(fs, id, opts)
}

func TestParseCommentClean(t *testing.T) {
	res := parseString(t, "Intro.\n@param[in] x The x.\n@return\n", ParseOptions{})
	if res.Failed() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("expected no diagnostics, got %d", res.Bag.Len())
	}
	if len(res.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(res.Events))
	}
}

func TestParseCommentFatalBecomesDiagnostic(t *testing.T) {
	res := parseString(t, "@brief\n", ParseOptions{})
	if !res.Failed() {
		t.Fatal("expected a fatal error")
	}
	items := res.Bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(items))
	}
	d := items[0]
	if d.Severity != diag.SevError || d.Code != diag.DocExpectDescription {
		t.Fatalf("unexpected diagnostic %v %v", d.Severity, d.Code)
	}
	if len(d.Notes) != 1 {
		t.Fatalf("expected keyword note, got %d notes", len(d.Notes))
	}
	if n := d.Notes[0]; n.Span.Start != 0 || n.Span.End != 6 || n.Msg != "in @brief attribute" {
		t.Fatalf("unexpected note %+v", n)
	}
}

func TestParseCommentTrailingText(t *testing.T) {
	body := "text\n@deprecated\nleft"
	res := parseString(t, body, ParseOptions{})
	if res.Failed() {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if !res.Deprecated {
		t.Fatal("Deprecated flag not set")
	}
	if res.Tail != "left" {
		t.Fatalf("tail = %q", res.Tail)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.DocTrailingText || items[0].Severity != diag.SevWarning {
		t.Fatalf("expected one trailing text warning, got %+v", items)
	}
	if sp := items[0].Primary; sp.Start != 17 || sp.End != uint32(len(body)) {
		t.Fatalf("unexpected span %v", sp)
	}
}

func TestParseCommentNoDoc(t *testing.T) {
	quiet := parseString(t, "@nodoc\n", ParseOptions{})
	if !quiet.NoDoc || quiet.Bag.Len() != 0 {
		t.Fatalf("NoDoc=%v diags=%d", quiet.NoDoc, quiet.Bag.Len())
	}

	loud := parseString(t, "@nodoc\n", ParseOptions{ReportNoDoc: true})
	items := loud.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.DocNoDoc || items[0].Severity != diag.SevInfo {
		t.Fatalf("expected nodoc info, got %+v", items)
	}
	if sp := items[0].Primary; sp.Start != 0 || sp.End != 6 {
		t.Fatalf("unexpected span %v", sp)
	}
}
