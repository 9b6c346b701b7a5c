package preprocessor

import (
	"testing"
)

func TestCursorLines(t *testing.T) {
	c := newCursor("a\nbc\n\nü")
	expected := []struct {
		line int
		r    rune
	}{
		{1, 'a'}, {1, '\n'}, {2, 'b'}, {2, 'c'}, {2, '\n'}, {3, '\n'}, {4, 'ü'},
	}
	for i, exp := range expected {
		line, r, ok := c.next()
		if !ok {
			t.Fatalf("unexpected end of input at %d", i)
		}
		if line != exp.line || r != exp.r {
			t.Fatalf("unexpected rune at %d: exp (%d, %q), got (%d, %q)", i, exp.line, exp.r, line, r)
		}
	}
	if _, _, ok := c.next(); ok {
		t.Fatalf("expected end of input")
	}
}

func TestCursorSnapshot(t *testing.T) {
	c := newCursor("x\ny")
	c.next()

	ahead := c
	ahead.next()
	if line, r, _ := ahead.peek(); line != 2 || r != 'y' {
		t.Fatalf("unexpected peek: exp (2, 'y'), got (%d, %q)", line, r)
	}
	if line, r, _ := c.peek(); line != 1 || r != '\n' {
		t.Fatalf("snapshot advanced the original cursor: got (%d, %q)", line, r)
	}

	c = ahead
	if !c.peekIs('y') {
		t.Fatalf("commit did not advance the cursor")
	}
}
