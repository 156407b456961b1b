package cdoc

import "cdoc/internal/diag"

// step: один шаг грамматики над курсором.
// nil означает успех, errBacktrack "здесь не совпало", *Error фатальную ошибку.
type step func(c *Cursor) error

// until returns the longest prefix of the remaining input that ends at a
// position where stop matches, consuming the input in units of chunk.
//
// stop is a zero-width lookahead: whatever it matched is left unconsumed.
// A backtrack from chunk ends the scan and yields the prefix accumulated so
// far; any other chunk error is returned as is. Starting the scan at end of
// input is a no-match.
func until(c *Cursor, chunk, stop step) (string, error) {
	if c.EOF() {
		return "", errBacktrack
	}
	start := c.Mark()
	for {
		next := c.Mark()
		if stop(c) == nil {
			c.Reset(next)
			return c.SliceFrom(start), nil
		}
		c.Reset(next)

		if err := chunk(c); err != nil {
			if !isBacktrack(err) {
				return "", err
			}
			c.Reset(next)
			return c.SliceFrom(start), nil
		}
	}
}

// lineChunk consumes one line including its terminator ("\n" or "\r\n").
// An unterminated line is accepted only when it runs to the end of input.
func lineChunk(c *Cursor) error {
	if c.EOF() {
		return errBacktrack
	}
	for !c.EOF() {
		switch c.Peek() {
		case '\n':
			c.Bump()
			return nil
		case '\r':
			if _, b1, ok := c.Peek2(); ok && b1 == '\n' {
				c.Bump()
				c.Bump()
				return nil
			}
			return cut(diag.DocStrayCarriageReturn, "", c.Off, "carriage return is not followed by a line feed")
		default:
			c.Bump()
		}
	}
	return nil
}

// attrBoundary matches optional horizontal space followed by a known
// "@keyword". It never consumes input.
func attrBoundary(c *Cursor) error {
	m := c.Mark()
	defer c.Reset(m)
	space0(c)
	_, _, err := attrKeyword(c)
	return err
}

// tillAttr scans an attribute (or top-level) description up to the next
// attribute boundary or the end of input.
func tillAttr(c *Cursor) (string, error) {
	return until(c, lineChunk, attrBoundary)
}
