package cdoc

import "cdoc/internal/diag"

// keywords is the single source of truth for recognised attributes.
// Ключевые слова регистрозависимые (только lowercase).
var keywords = map[string]AttrKind{
	"param":      AttrParam,
	"return":     AttrReturn,
	"returns":    AttrReturn,
	"deprecated": AttrDeprecated,
	"see":        AttrSee,
	"brief":      AttrBrief,
	"note":       AttrNote,
	"nodoc":      AttrNoDoc,
}

// LookupKeyword resolves an attribute keyword written without the '@'.
func LookupKeyword(word string) (AttrKind, bool) {
	k, ok := keywords[word]
	return k, ok
}

func isHSpace(b byte) bool { return b == ' ' || b == '\t' }

// isSpace: пробел, табуляция, перевод строки. \v и \f пробелами не считаются,
// одиночный \r тоже; CRLF разбирается отдельно в eatSpace.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// atCRLF reports whether the cursor stands on a "\r\n" pair.
func atCRLF(c *Cursor) bool {
	b0, b1, ok := c.Peek2()
	return ok && b0 == '\r' && b1 == '\n'
}

// eatSpace consumes one whitespace unit: a space byte or a CRLF pair.
func eatSpace(c *Cursor) bool {
	switch {
	case c.EOF():
		return false
	case isSpace(c.Peek()):
		c.Bump()
	case atCRLF(c):
		c.Bump()
		c.Bump()
	default:
		return false
	}
	return true
}

func isKeywordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentStartByte(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

// space0 skips spaces and tabs.
func space0(c *Cursor) {
	for isHSpace(c.Peek()) {
		c.Bump()
	}
}

// skipWhitespace skips any whitespace including line breaks.
func skipWhitespace(c *Cursor) {
	for eatSpace(c) {
	}
}

// ws1 consumes at least one whitespace byte (line breaks included).
func ws1(c *Cursor) error {
	start := c.Off
	skipWhitespace(c)
	if c.Off == start {
		return errBacktrack
	}
	return nil
}

// attrKeyword reads "@keyword". The keyword must be followed by whitespace or
// the end of input; "@param" may also be followed directly by "[dir]".
// Anything else (unknown word, "@" glued to other text) backtracks.
func attrKeyword(c *Cursor) (string, AttrKind, error) {
	if !c.Eat('@') {
		return "", 0, errBacktrack
	}
	start := c.Mark()
	for isKeywordByte(c.Peek()) {
		c.Bump()
	}
	word := c.SliceFrom(start)
	kind, ok := LookupKeyword(word)
	if !ok {
		return "", 0, errBacktrack
	}
	switch next := c.Peek(); {
	case c.EOF(), isSpace(next), atCRLF(c):
	case next == '[' && kind == AttrParam:
	default:
		return "", 0, errBacktrack
	}
	return word, kind, nil
}

// ident: [A-Za-z_$][A-Za-z0-9_$]*
func ident(c *Cursor) (string, bool) {
	if !isIdentStartByte(c.Peek()) {
		return "", false
	}
	start := c.Mark()
	c.Bump()
	for isIdentContinueByte(c.Peek()) {
		c.Bump()
	}
	return c.SliceFrom(start), true
}

// paramDir parses "[in]", "[out]" or "[inout]"; on mismatch the cursor is
// restored and DirNone is returned.
func paramDir(c *Cursor) ParamDir {
	m := c.Mark()
	if !c.Eat('[') {
		return DirNone
	}
	dir := DirNone
	switch {
	case c.EatString("inout"):
		dir = DirInOut
	case c.EatString("in"):
		dir = DirIn
	case c.EatString("out"):
		dir = DirOut
	}
	if dir == DirNone || !c.Eat(']') {
		c.Reset(m)
		return DirNone
	}
	return dir
}

// optDesc parses the optional "whitespace + description" tail of @param and
// @return. An empty description counts as absent and leaves the whitespace
// unconsumed.
func optDesc(c *Cursor) (string, bool, error) {
	m := c.Mark()
	if ws1(c) != nil {
		return "", false, nil
	}
	desc, err := tillAttr(c)
	if err != nil && !isBacktrack(err) {
		return "", false, err
	}
	if err != nil || desc == "" {
		c.Reset(m)
		return "", false, nil
	}
	return desc, true, nil
}

// mandatoryDesc parses the description that @see, @brief and @note require.
func mandatoryDesc(c *Cursor, keyword string) (string, error) {
	at := c.Off
	desc, err := tillAttr(c)
	if err != nil && !isBacktrack(err) {
		return "", err
	}
	if err != nil || desc == "" {
		return "", cut(diag.DocExpectDescription, keyword, at, "expected description text")
	}
	return desc, nil
}

func expectWS(c *Cursor, keyword string) error {
	if ws1(c) != nil {
		return cut(diag.DocExpectWhitespace, keyword, c.Off, "expected whitespace after @"+keyword)
	}
	return nil
}

// parseAttr parses one attribute at the cursor. A missing or unknown keyword
// backtracks with the cursor restored; once the keyword is recognised every
// failure of its argument grammar is fatal.
func parseAttr(c *Cursor) (Attr, error) {
	start := c.Mark()
	word, kind, err := attrKeyword(c)
	if err != nil {
		c.Reset(start)
		return Attr{}, err
	}
	attr, err := attrBody(c, kind, word)
	if err != nil {
		return Attr{}, withKeyword(err, word)
	}
	return attr, nil
}

func attrBody(c *Cursor, kind AttrKind, word string) (Attr, error) {
	switch kind {
	case AttrParam:
		dir := paramDir(c)
		if err := expectWS(c, word); err != nil {
			return Attr{}, err
		}
		name, ok := ident(c)
		if !ok {
			return Attr{}, cut(diag.DocExpectIdent, word, c.Off, "expected parameter name")
		}
		desc, has, err := optDesc(c)
		if err != nil {
			return Attr{}, err
		}
		return ParamAttr(dir, name, desc, has), nil

	case AttrReturn:
		desc, has, err := optDesc(c)
		if err != nil {
			return Attr{}, err
		}
		return ReturnAttr(desc, has), nil

	case AttrDeprecated:
		return DeprecatedAttr(), nil

	case AttrNoDoc:
		return NoDocAttr(), nil

	case AttrSee:
		if err := expectWS(c, word); err != nil {
			return Attr{}, err
		}
		// необязательный якорь "#", окружённый пробелами, отбрасывается
		m := c.Mark()
		skipWhitespace(c)
		if c.Eat('#') {
			skipWhitespace(c)
		} else {
			c.Reset(m)
		}
		desc, err := mandatoryDesc(c, word)
		if err != nil {
			return Attr{}, err
		}
		return SeeAttr(desc), nil

	case AttrBrief, AttrNote:
		if err := expectWS(c, word); err != nil {
			return Attr{}, err
		}
		desc, err := mandatoryDesc(c, word)
		if err != nil {
			return Attr{}, err
		}
		if kind == AttrBrief {
			return BriefAttr(desc), nil
		}
		return NoteAttr(desc), nil
	}
	return Attr{}, errBacktrack
}
