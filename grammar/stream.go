package grammar

import (
	"strings"
	"unicode/utf8"

	"github.com/FlorianRappl/YAMP-sub003/corelang"
	"github.com/timtadh/lexmachine"
)

// eof is returned by the cursor at the end of input.
const eof rune = -1

// cursor is a position within the input text, tracking line and column.
type cursor struct {
	text      string
	pos       int // as byte index
	line, col int
	literals  *lexmachine.Scanner // over all of text, created on first use
}

func newCursor(text string) *cursor {
	return &cursor{text: text, line: 1, col: 1}
}

// peek returns the rune at the cursor without consuming it.
func (c *cursor) peek() rune {
	return c.peekAt(0)
}

// peekAt returns the n-th rune after the cursor.
func (c *cursor) peekAt(n int) rune {
	p := c.pos
	for ; n > 0 && p < len(c.text); n-- {
		_, sz := utf8.DecodeRuneInString(c.text[p:])
		p += sz
	}
	if p >= len(c.text) {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(c.text[p:])
	return r
}

// rest returns the unconsumed input.
func (c *cursor) rest() string {
	return c.text[c.pos:]
}

func (c *cursor) hasPrefix(s string) bool {
	return strings.HasPrefix(c.text[c.pos:], s)
}

func (c *cursor) atEOF() bool {
	return c.pos >= len(c.text)
}

// next consumes one rune and returns it.
func (c *cursor) next() rune {
	if c.atEOF() {
		return eof
	}
	r, sz := utf8.DecodeRuneInString(c.text[c.pos:])
	c.pos += sz
	if r == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return r
}

// skip consumes n bytes of input.
func (c *cursor) skip(n int) {
	end := c.pos + n
	for c.pos < end && !c.atEOF() {
		c.next()
	}
}

// position returns the source position of the cursor.
func (c *cursor) position() corelang.Position {
	return corelang.Position{Line: c.line, Column: c.col}
}

// mark and reset allow backtracking.
func (c *cursor) mark() cursor {
	return *c
}

func (c *cursor) reset(m cursor) {
	*c = m
}
