package lexer

import (
	"cobrust/internal/source"
)

// Cursor walks the bytes of a single line; it never crosses Limit, so a
// word cannot run into the next line.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // exclusive
}

// NewCursor creates a cursor over span sp of file f.
func NewCursor(f *source.File, sp source.Span) Cursor {
	limit := min(sp.End, uint32(len(f.Content))) //nolint:gosec // FileSet rejects files over 4GiB
	return Cursor{File: f, Off: min(sp.Start, limit), Limit: limit}
}

// EOF reports the end of the line.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek returns the current byte or 0 at the end of the line.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Bump consumes one byte and returns it; 0 at the end of the line.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// SkipWhile consumes bytes while pred holds and returns how many it took.
func (c *Cursor) SkipWhile(pred func(byte) bool) int {
	n := 0
	for !c.EOF() && pred(c.File.Content[c.Off]) {
		c.Off++
		n++
	}
	return n
}

// GiveBack steps back over trailing bytes matching pred, keeping at least
// one byte after start. Used to split '.' and ',' off the end of a word.
func (c *Cursor) GiveBack(start Mark, pred func(byte) bool) {
	for c.Off > uint32(start)+1 && pred(c.File.Content[c.Off-1]) {
		c.Off--
	}
}

// Mark is a saved offset.
type Mark uint32

func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom returns the span from m to the current offset.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// Reset rewinds to m.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
