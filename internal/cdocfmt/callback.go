package cdocfmt

import "cdoc/internal/cdoc"

// Callback adapts the renderer to binding generators that ask for the
// documentation text of each declaration comment they encounter.
type Callback struct {
	Options cdoc.Options
	// OnError is called when a comment has a fatal parse error. The comment
	// is still documented with the text rendered before the failure.
	OnError func(comment string, err error)
}

// ProcessComment returns the rendered documentation for one comment body.
// The second result is always true: an empty rendering replaces the raw
// comment, so markup like @nodoc never reaches the generated bindings.
func (c Callback) ProcessComment(comment string) (string, bool) {
	text, err := FormatWith(comment, c.Options)
	if err != nil && c.OnError != nil {
		c.OnError(comment, err)
	}
	return text, true
}
