package preprocessor

import (
	"strings"
	"unicode"
)

// scanner expands the include directives of a single file. Included files are
// scanned by child scanners that share the crawl state.
type scanner[C any] struct {
	crawl   *crawl[C]
	file    ResolvedPath
	context C
	in      cursor

	chunks    []SourceChunk[C]
	current   strings.Builder
	firstLine int
}

func newScanner[C any](cr *crawl[C], file ResolvedPath, context C, src string) *scanner[C] {
	return &scanner[C]{
		crawl:     cr,
		file:      file,
		context:   context,
		in:        newCursor(src),
		firstLine: 1,
	}
}

func (s *scanner[C]) scan() error {
	for {
		start := s.in.pos
		line, c, ok := s.in.next()
		if !ok {
			break
		}
		switch c {
		case '/':
			if s.in.peekIs('*') {
				s.in.next()
				s.current.WriteString("  ")
				skipBlockComment(&s.in, &s.current)
			} else if s.in.peekIs('/') {
				s.in.next()
				s.skipLineComment()
			} else {
				s.current.WriteString(s.in.src[start:s.in.pos])
			}
		case '#':
			if err := s.directive(line); err != nil {
				return err
			}
		default:
			// Bytes are copied as is so invalid UTF-8 survives.
			s.current.WriteString(s.in.src[start:s.in.pos])
		}
	}
	s.flush()
	return nil
}

// directive handles a '#' read on the specified line. Anything that is not an
// include or #pragma once is written out as is.
func (s *scanner[C]) directive(line int) error {
	name, after, ok := readDirectiveName(s.in)
	if ok {
		switch name {
		case "include":
			s.in = after
			path, ok := s.readIncludePath()
			if !ok {
				return ParseError{File: string(s.file), Line: line}
			}
			s.flush()
			return s.include(path, line)
		case "pragma":
			if arg, afterArg, ok := readDirectiveName(after); ok && arg == "once" {
				s.in = afterArg
				s.crawl.markOnce(s.file)
				return nil
			}
		}
	}
	s.current.WriteByte('#')
	return nil
}

// include expands the file referred to by path into the chunk list.
func (s *scanner[C]) include(path string, line int) error {
	cr := s.crawl
	resolved, err := cr.provider.Resolve(path, s.context)
	if err != nil {
		return ProviderError{File: path, Err: err}
	}
	inc := Include{From: s.file, To: resolved.Path, Path: path, Line: line}

	if cr.isOnce(resolved.Path) {
		inc.Skipped = true
		cr.observe(inc)
		return nil
	}
	if cr.isInProgress(resolved.Path) {
		return RecursiveIncludeError{
			File: string(resolved.Path),
			From: string(s.file),
			Line: line,
		}
	}

	src, err := cr.provider.Read(resolved.Path)
	if err != nil {
		return ProviderError{File: path, Err: err}
	}
	cr.observe(inc)

	cr.push(resolved.Path)
	defer cr.pop(resolved.Path)

	child := newScanner(cr, resolved.Path, resolved.Context, src)
	if err := child.scan(); err != nil {
		return err
	}
	s.chunks = append(s.chunks, child.chunks...)
	return nil
}

// flush closes off the current chunk. The next chunk starts at the line of
// the next unread character.
func (s *scanner[C]) flush() {
	if s.current.Len() > 0 {
		s.chunks = append(s.chunks, SourceChunk[C]{
			Source:     s.current.String(),
			File:       string(s.file),
			LineOffset: s.firstLine - 1,
			Context:    s.context,
		})
		s.current.Reset()
	}
	if line, _, ok := s.in.peek(); ok {
		s.firstLine = line
	}
}

// skipLineComment drops everything up to and including the end of the line
// but keeps the newline. A backslash-newline continues the comment on the
// next line.
func (s *scanner[C]) skipLineComment() {
	for {
		_, c, ok := s.in.next()
		if !ok {
			return
		}
		switch c {
		case '\n':
			s.current.WriteByte('\n')
			return
		case '\\':
			if _, next, ok := s.in.next(); ok && next == '\n' {
				s.current.WriteByte('\n')
			}
		}
	}
}

// readIncludePath reads the "path" or <path> argument of an include directive.
func (s *scanner[C]) readIncludePath() (string, bool) {
	skipWhitespaceUntilEOL(&s.in)
	_, open, ok := s.in.next()
	if !ok {
		return "", false
	}
	var closing rune
	switch open {
	case '"':
		closing = '"'
	case '<':
		closing = '>'
	default:
		return "", false
	}

	var path strings.Builder
	for {
		_, c, ok := s.in.peek()
		if !ok || c == '\n' {
			return "", false
		}
		start := s.in.pos
		s.in.next()
		switch c {
		case '\\':
			s.in.next()
		case closing:
			return path.String(), true
		default:
			path.WriteString(s.in.src[start:s.in.pos])
		}
	}
}

// readDirectiveName reads the alphabetic name following a '#' from a copy of
// in. Whitespace before the name, block comments and line continuations are
// skipped. The returned cursor is positioned after the name.
//
// ok is false if an unrecognized escape sequence is encountered.
func readDirectiveName(in cursor) (name string, after cursor, ok bool) {
	var b strings.Builder
loop:
	for {
		_, c, more := in.peek()
		if !more {
			break
		}
		switch {
		case c == '\n' || c == '\r':
			break loop
		case unicode.IsLetter(c):
			in.next()
			b.WriteRune(c)
		case unicode.IsSpace(c):
			if b.Len() > 0 {
				break loop
			}
			in.next()
		case c == '\\':
			in.next()
			_, next, _ := in.next()
			if next == '\n' {
				continue
			}
			if next == '\r' && in.peekIs('\n') {
				in.next()
				continue
			}
			return "", in, false
		case c == '/':
			if b.Len() > 0 {
				break loop
			}
			ahead := in
			ahead.next()
			if !ahead.peekIs('*') {
				break loop
			}
			ahead.next()
			in = ahead
			skipBlockComment(&in, nil)
		default:
			break loop
		}
	}
	return b.String(), in, true
}

// skipWhitespaceUntilEOL skips whitespace, line continuations and block
// comments up to the end of the current line.
func skipWhitespaceUntilEOL(in *cursor) {
	for {
		_, c, ok := in.peek()
		if !ok || c == '\n' {
			return
		}
		switch {
		case unicode.IsSpace(c):
			in.next()
		case c == '\\':
			ahead := *in
			ahead.next()
			if !ahead.peekIs('\n') {
				return
			}
			ahead.next()
			*in = ahead
		case c == '/':
			ahead := *in
			ahead.next()
			if !ahead.peekIs('*') {
				return
			}
			ahead.next()
			*in = ahead
			skipBlockComment(in, nil)
		default:
			return
		}
	}
}

// skipBlockComment consumes a block comment whose opening delimiter has
// already been read. If out is not nil, every character, including the
// closing delimiter, is written as a space except for newlines.
func skipBlockComment(in *cursor, out *strings.Builder) {
	put := func(r rune) {
		if out != nil {
			out.WriteRune(r)
		}
	}
	for {
		_, c, ok := in.next()
		if !ok {
			return
		}
		switch c {
		case '*':
			put(' ')
			if in.peekIs('/') {
				in.next()
				put(' ')
				return
			}
		case '\n':
			put('\n')
		default:
			put(' ')
		}
	}
}
