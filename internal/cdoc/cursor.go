package cdoc

// Cursor: позиция внутри тела комментария.
// Курсор никогда не изменяет исходную строку: продвижение меняет только смещение Off.
type Cursor struct {
	Src string
	Off uint32
}

// NewCursor creates a cursor at the beginning of src.
// Callers must ensure len(src) fits into uint32 (see New).
func NewCursor(src string) Cursor {
	return Cursor{Src: src}
}

func (c *Cursor) limit() uint32 {
	return uint32(len(c.Src)) // #nosec G115 -- checked by New
}

// EOF проверяет, достигнут ли конец ввода
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Src[c.Off]
}

// Peek2 returns the current and the next byte when both exist.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.Src[c.Off], c.Src[c.Off+1], true
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Src[c.Off]
	c.Off++
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatString consumes s if the input continues with it.
func (c *Cursor) EatString(s string) bool {
	end := int(c.Off) + len(s)
	if end > len(c.Src) || c.Src[c.Off:end] != s {
		return false
	}
	c.Off = uint32(end) // #nosec G115 -- end <= len(Src)
	return true
}

// Rest returns the unconsumed tail of the input.
func (c *Cursor) Rest() string {
	return c.Src[c.Off:]
}

// Mark это контрольная точка для отката (checkpoint)
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// SliceFrom returns the text consumed since m as a view into Src.
func (c *Cursor) SliceFrom(m Mark) string {
	return c.Src[m:c.Off]
}
