// Package cdoc parses the body of one Doxygen-style documentation comment
// into a lazily produced stream of events.
//
// # Input
//
// The input is the text of a single comment with the comment delimiters
// already removed by the caller. The parser does not know anything about C
// syntax and never modifies or copies the input: every string in an Event is
// a substring of the body passed to New.
//
// # Grammar
//
// A comment body is a free-text description followed by zero or more
// attributes:
//
//	@param[in|out|inout] name [description]
//	@return [description]     (also @returns)
//	@deprecated
//	@see [#] description
//	@brief description
//	@note description
//	@nodoc
//
// Attributes are recognised at the start of a line (after optional spaces
// and tabs) and also where the optional argument text of an attribute would
// start: "@param x @brief y" yields a parameter without description followed
// by a brief, and "@deprecated @nodoc" yields two attributes. Once a
// description has consumed any text, an "@" later on the same line is
// ordinary text, as is an "@" followed by an unknown word. Descriptions run
// up to the next attribute or the end of the body and keep their line breaks
// and indentation verbatim.
//
// Whitespace between tokens is spaces, tabs, line feeds and CRLF pairs.
// Vertical tab and form feed are not whitespace.
//
// # Errors
//
// Two kinds of failure exist. A backtrack ("no match here") is internal
// control flow: it ends a description scan or the attribute list and is never
// reported. A fatal *Error is returned once an attribute keyword has been
// recognised but its mandatory arguments are missing, or when the body
// contains a carriage return that does not start a CRLF pair. A fatal error
// ends the stream; Finish returns it.
//
// # Usage
//
//	p := cdoc.New(body, cdoc.Options{})
//	for ev := range p.All() {
//		...
//	}
//	tail, err := p.Finish()
package cdoc
