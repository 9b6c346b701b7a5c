package preprocessor

import (
	"unicode/utf8"
)

// cursor walks over source text one rune at a time and tracks the 1-based
// line of every rune it yields.
//
// A cursor is a plain value: copying it takes a snapshot which can be scanned
// ahead independently and then either assigned back (commit) or dropped
// (rewind).
type cursor struct {
	src  string
	pos  int
	line int
}

func newCursor(src string) cursor {
	return cursor{src: src, line: 1}
}

// next consumes a rune. The line is incremented after a newline is yielded.
func (c *cursor) next() (line int, r rune, ok bool) {
	if c.pos >= len(c.src) {
		return c.line, 0, false
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
	line = c.line
	if r == '\n' {
		c.line++
	}
	return line, r, true
}

// peek returns the next rune without consuming it.
func (c cursor) peek() (line int, r rune, ok bool) {
	return c.next()
}

// peekIs reports whether the next rune equals want.
func (c cursor) peekIs(want rune) bool {
	_, r, ok := c.peek()
	return ok && r == want
}
