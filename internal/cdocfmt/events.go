package cdocfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"cdoc/internal/cdoc"
	"cdoc/internal/source"
)

// AttrOutput is the serialised form of an attribute.
type AttrOutput struct {
	Kind string  `json:"kind" yaml:"kind"`
	Dir  string  `json:"dir,omitempty" yaml:"dir,omitempty"`
	Name string  `json:"name,omitempty" yaml:"name,omitempty"`
	Desc *string `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// EventOutput is the serialised form of an event.
type EventOutput struct {
	Kind string      `json:"kind" yaml:"kind"`
	Text *string     `json:"text,omitempty" yaml:"text,omitempty"`
	Attr *AttrOutput `json:"attr,omitempty" yaml:"attr,omitempty"`
	Span source.Span `json:"span" yaml:"span"`
}

// EventsOutput is the root of JSON/YAML event dumps.
type EventsOutput struct {
	Events []EventOutput `json:"events" yaml:"events"`
	Tail   string        `json:"tail,omitempty" yaml:"tail,omitempty"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// BuildEventsOutput converts events into their serialisable form. Offsets are
// attached to file.
func BuildEventsOutput(events []cdoc.Event, file source.FileID, tail string, err error) EventsOutput {
	out := EventsOutput{Events: make([]EventOutput, 0, len(events)), Tail: tail}
	for _, ev := range events {
		eo := EventOutput{
			Kind: ev.Kind.String(),
			Span: source.Span{File: file, Start: ev.Start, End: ev.End},
		}
		if ev.Kind == cdoc.EventDescription {
			text := ev.Text
			eo.Text = &text
		} else {
			ao := &AttrOutput{Kind: ev.Attr.Kind.String(), Dir: ev.Attr.Dir.String(), Name: ev.Attr.Name}
			if ev.Attr.HasDesc {
				desc := ev.Attr.Desc
				ao.Desc = &desc
			}
			eo.Attr = ao
		}
		out.Events = append(out.Events, eo)
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out
}

// FormatEventsPretty выводит события в человекочитаемом формате
func FormatEventsPretty(w io.Writer, events []cdoc.Event, fs *source.FileSet, file source.FileID) error {
	for i, ev := range events {
		startPos, endPos := fs.Resolve(source.Span{File: file, Start: ev.Start, End: ev.End})

		var err error
		if ev.Kind == cdoc.EventDescription {
			_, err = fmt.Fprintf(w, "%3d: %-11s %q", i+1, ev.Kind.String(), ev.Text)
		} else {
			_, err = fmt.Fprintf(w, "%3d: %-11s %s", i+1, ev.Kind.String(), ev.Attr.String())
		}
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " at %d:%d-%d:%d\n",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatEventsJSON выводит события в JSON формате
func FormatEventsJSON(w io.Writer, out EventsOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// FormatEventsYAML выводит события в YAML формате
func FormatEventsYAML(w io.Writer, out EventsOutput) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}
