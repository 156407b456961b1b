package cdocfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"cdoc/internal/cdoc"
	"cdoc/internal/source"
)

func parse(t *testing.T, src string) (*source.FileSet, source.FileID, []cdoc.Event, EventsOutput) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("body.txt", []byte(src))
	events, tail, err := cdoc.Collect(src, cdoc.Options{})
	return fs, id, events, BuildEventsOutput(events, id, tail, err)
}

func TestFormatEventsPretty(t *testing.T) {
	fs, id, events, _ := parse(t, "desc\n@param[in] x value\n")
	var buf bytes.Buffer
	if err := FormatEventsPretty(&buf, events, fs, id); err != nil {
		t.Fatal(err)
	}
	want := "  1: description \"desc\\n\" at 1:1-2:1\n" +
		"  2: attr        Param{dir:\"in\", name:\"x\", desc:Some(\"value\\n\")} at 2:1-3:1\n"
	if buf.String() != want {
		t.Fatalf("pretty output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFormatEventsJSON(t *testing.T) {
	_, _, _, out := parse(t, "d\n@return\n@brief b\n")
	var buf bytes.Buffer
	if err := FormatEventsJSON(&buf, out); err != nil {
		t.Fatal(err)
	}
	var back EventsOutput
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if len(back.Events) != 3 {
		t.Fatalf("got %d events", len(back.Events))
	}
	ret := back.Events[1].Attr
	if ret == nil || ret.Kind != "return" || ret.Desc != nil {
		t.Fatalf("bare return must have no desc: %+v", ret)
	}
	if strings.Contains(buf.String(), `"error"`) {
		t.Fatalf("unexpected error field: %s", buf.String())
	}
}

func TestFormatEventsYAMLWithError(t *testing.T) {
	_, _, _, out := parse(t, "d\n@note\n")
	var buf bytes.Buffer
	if err := FormatEventsYAML(&buf, out); err != nil {
		t.Fatal(err)
	}
	var back EventsOutput
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, buf.String())
	}
	if len(back.Events) != 1 || back.Events[0].Text == nil || *back.Events[0].Text != "d\n" {
		t.Fatalf("unexpected events %+v", back.Events)
	}
	if !strings.Contains(back.Error, "@note") {
		t.Fatalf("error = %q", back.Error)
	}
}
