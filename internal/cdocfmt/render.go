package cdocfmt

import (
	"io"
	"iter"
	"strings"

	"cdoc/internal/cdoc"
)

const (
	paramsHeader = "# Parameters\n"
	returnHeader = "# Return value\n\n"
)

// renderer пишет события по одному. Единственное состояние: был ли уже
// выведен заголовок параметров.
type renderer struct {
	w        io.Writer
	inParams bool
	err      error
}

func (r *renderer) put(parts ...string) {
	for _, s := range parts {
		if r.err != nil {
			return
		}
		_, r.err = io.WriteString(r.w, s)
	}
}

func (r *renderer) event(ev cdoc.Event) {
	if ev.Kind == cdoc.EventDescription {
		r.put(ev.Text)
		return
	}
	a := ev.Attr
	switch a.Kind {
	case cdoc.AttrParam:
		if !r.inParams {
			r.inParams = true
			r.put(paramsHeader)
		}
		r.put("- `", a.Name, a.Dir.Tag(), "`")
		// без описания строка закрывается явно; описание несёт свой перевод строки
		if a.HasDesc {
			r.put(" ", a.Desc)
		} else {
			r.put("\n")
		}
	case cdoc.AttrReturn:
		if a.HasDesc {
			r.put(returnHeader, a.Desc, "\n")
		}
	case cdoc.AttrSee:
		r.put("See: ", a.Desc, "\n")
	case cdoc.AttrBrief:
		r.put("Brief: ", a.Desc, "\n")
	case cdoc.AttrNote:
		r.put("Note: ", a.Desc, "\n")
	case cdoc.AttrDeprecated, cdoc.AttrNoDoc:
	}
}

// Render writes the documentation text for events to w in a single forward
// pass. It stops at the first write error.
func Render(w io.Writer, events iter.Seq[cdoc.Event]) error {
	r := &renderer{w: w}
	for ev := range events {
		r.event(ev)
		if r.err != nil {
			return r.err
		}
	}
	return nil
}

// Format parses body and renders it. On a fatal parse error the text
// rendered before the failure is returned together with the error.
func Format(body string) (string, error) {
	return FormatWith(body, cdoc.Options{})
}

// FormatWith is Format with explicit parser options.
func FormatWith(body string, opts cdoc.Options) (string, error) {
	var sb strings.Builder
	sb.Grow(len(body) + len(paramsHeader))
	p := cdoc.New(body, opts)
	// strings.Builder не возвращает ошибок записи
	_ = Render(&sb, p.All())
	_, err := p.Finish()
	return sb.String(), err
}
