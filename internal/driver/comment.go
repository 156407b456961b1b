package driver

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"cdoc/internal/cdoc"
	"cdoc/internal/diag"
	"cdoc/internal/source"
	"cdoc/internal/trace"
)

// CommentResult is the outcome of parsing one comment body.
type CommentResult struct {
	FileID source.FileID
	Events []cdoc.Event
	Tail   string
	Err    error // фатальная ошибка разбора (*cdoc.Error) или nil
	Bag    *diag.Bag

	// Флаги атрибутов без вывода. Ядро ничего не подавляет; решение
	// принимает потребитель.
	Deprecated bool
	NoDoc      bool
}

// Failed reports whether the parse ended with a fatal error.
func (r *CommentResult) Failed() bool {
	return r != nil && r.Err != nil
}

// ParseOptions configures ParseComment.
type ParseOptions struct {
	MaxDiagnostics int
	Tracer         trace.Tracer
	Parent         uint64
	// ReportNoDoc adds an informational diagnostic for @nodoc comments.
	ReportNoDoc bool
}

// ParseComment parses the content of file id as one comment body and turns
// fatal errors and leftover text into diagnostics.
func ParseComment(fs *source.FileSet, id source.FileID, opts ParseOptions) *CommentResult {
	file := fs.Get(id)
	body := string(file.Content)
	res := &CommentResult{FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
	reporter := diag.BagReporter{Bag: res.Bag}

	events, tail, err := cdoc.Collect(body, cdoc.Options{Tracer: opts.Tracer, Parent: opts.Parent})
	res.Events, res.Tail, res.Err = events, tail, err
	for _, ev := range events {
		if ev.Kind != cdoc.EventAttr {
			continue
		}
		switch ev.Attr.Kind {
		case cdoc.AttrDeprecated:
			res.Deprecated = true
		case cdoc.AttrNoDoc:
			res.NoDoc = true
		}
	}

	if err != nil {
		reportParseError(reporter, id, err)
		return res
	}
	if tail != "" {
		start, convErr := safecast.Conv[uint32](len(body) - len(tail))
		if convErr == nil {
			end := start + uint32(len(tail)) //nolint:gosec // tail: суффикс body
			diag.ReportWarning(reporter, diag.DocTrailingText, source.Span{File: id, Start: start, End: end},
				"text after the last attribute is not part of any attribute and is ignored").Emit()
		}
	}
	if res.NoDoc && opts.ReportNoDoc {
		for _, ev := range events {
			if ev.Kind == cdoc.EventAttr && ev.Attr.Kind == cdoc.AttrNoDoc {
				diag.ReportInfo(reporter, diag.DocNoDoc, source.Span{File: id, Start: ev.Start, End: ev.End},
					"comment is marked @nodoc").Emit()
				break
			}
		}
	}
	return res
}

func reportParseError(r diag.Reporter, id source.FileID, err error) {
	var perr *cdoc.Error
	if !errors.As(err, &perr) {
		diag.ReportError(r, diag.UnknownCode, source.Span{File: id}, err.Error()).Emit()
		return
	}
	b := diag.ReportError(r, perr.Code, source.Span{File: id, Start: perr.Off, End: perr.Off}, perr.Msg)
	if perr.Keyword != "" {
		kwEnd := perr.Start + 1 + uint32(len(perr.Keyword)) //nolint:gosec // ключевые слова короткие
		b.WithNote(source.Span{File: id, Start: perr.Start, End: kwEnd}, fmt.Sprintf("in @%s attribute", perr.Keyword))
	}
	b.Emit()
}
