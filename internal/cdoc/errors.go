package cdoc

import (
	"errors"
	"fmt"

	"cdoc/internal/diag"
)

// errBacktrack means "no match here". It is control flow only and never
// leaves the package: the parser turns it into the end of the stream.
var errBacktrack = errors.New("cdoc: backtrack")

func isBacktrack(err error) bool {
	return errors.Is(err, errBacktrack)
}

// Error is a fatal parse failure. It is produced once an attribute keyword has
// been recognised and its mandatory grammar fails, or when the input itself is
// malformed (stray carriage return, oversized body).
type Error struct {
	Code    diag.Code
	Keyword string // attribute keyword without '@', empty outside attributes
	Start   uint32 // offset of the '@' that opened the attribute, when Keyword != ""
	Off     uint32 // byte offset in the comment body where the failure was detected
	Msg     string
}

func (e *Error) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("offset %d: @%s: %s", e.Off, e.Keyword, e.Msg)
	}
	return fmt.Sprintf("offset %d: %s", e.Off, e.Msg)
}

func cut(code diag.Code, keyword string, off uint32, msg string) *Error {
	return &Error{Code: code, Keyword: keyword, Off: off, Msg: msg}
}

// inAttr records where the failing attribute started.
func inAttr(err error, start uint32) error {
	var perr *Error
	if errors.As(err, &perr) && perr.Keyword != "" {
		cp := *perr
		cp.Start = start
		return &cp
	}
	return err
}

// withKeyword attaches the attribute keyword to a fatal error raised by a
// shared sub-rule (line chunking, whitespace) that does not know it.
func withKeyword(err error, keyword string) error {
	var perr *Error
	if errors.As(err, &perr) && perr.Keyword == "" {
		cp := *perr
		cp.Keyword = keyword
		return &cp
	}
	return err
}
