package source

import (
	"fmt"
)

// Span is a half-open byte range inside one file.
type Span struct {
	File  FileID `json:"file" yaml:"file"`
	Start uint32 `json:"start" yaml:"start"` // в байтах включительно
	End   uint32 `json:"end" yaml:"end"`     // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other. Spans of
// different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Shift moves the span right by base bytes. Used to map offsets relative to
// a comment body onto the file that holds it.
func (s Span) Shift(base uint32) Span {
	return Span{File: s.File, Start: s.Start + base, End: s.End + base}
}
