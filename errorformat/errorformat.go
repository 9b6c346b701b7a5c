// Package errorformat maps the source locations in shader compiler logs back
// to the files the source chunks were read from.
//
// OpenGL has no notion of files. Chunks are passed to the compiler as an array
// of source strings and the compiler reports errors as an index into that
// array together with a line number. The format of the log is vendor specific.
package errorformat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/polyfloyd/shaderprep/preprocessor"
)

// markerRe matches the location prefix of a log line in one of the formats:
//
//	ERROR: 1:2: ...     (Intel, AMD)
//	1(2) : ...          (Nvidia)
//	1:2(3): ...         (Mesa)
var markerRe = regexp.MustCompile(`(?m)^(?:ERROR:\s*(\d+):(\d+)|(\d+)\((\d+)\)[ \t]*|(\d+):(\d+)\((\d+)\))`)

// Sources builds the source strings that should be handed to the compiler.
// Every chunk but the first is prefixed with a #line directive carrying its
// 1-based index so the compiler reports that index.
func Sources[C any](chunks []preprocessor.SourceChunk[C]) []string {
	sources := make([]string, len(chunks))
	for i, c := range chunks {
		if i == 0 {
			sources[i] = c.Source
		} else {
			sources[i] = fmt.Sprintf("#line 0 %d\n%s", i+1, c.Source)
		}
	}
	return sources
}

// Marker is a single diagnostic found in a compiler log.
type Marker struct {
	File string
	Line int
	// Column is 0 if the compiler did not report one.
	Column  int
	Message string
}

// Location formats the position as file(line) or file(line:column).
func (m Marker) Location() string {
	if m.Column > 0 {
		return fmt.Sprintf("%s(%d:%d)", m.File, m.Line, m.Column)
	}
	return fmt.Sprintf("%s(%d)", m.File, m.Line)
}

func (m Marker) String() string {
	return fmt.Sprintf("%s: %s", m.Location(), m.Message)
}

type match struct {
	start, end int
	marker     Marker
}

// matches finds all location prefixes in the log that refer to a known chunk.
func matches[C any](chunks []preprocessor.SourceChunk[C], log string) []match {
	var ms []match
	for _, idx := range markerRe.FindAllStringSubmatchIndex(log, -1) {
		group := func(n int) string {
			if idx[2*n] < 0 {
				return ""
			}
			return log[idx[2*n]:idx[2*n+1]]
		}

		var chunkStr, lineStr, colStr string
		switch {
		case idx[2] >= 0:
			chunkStr, lineStr = group(1), group(2)
		case idx[6] >= 0:
			chunkStr, lineStr = group(3), group(4)
		default:
			chunkStr, lineStr, colStr = group(5), group(6), group(7)
		}

		chunk, err := strconv.Atoi(chunkStr)
		if err != nil || chunk < 1 {
			chunk = 1
		}
		if chunk > len(chunks) {
			continue
		}
		line, err := strconv.Atoi(lineStr)
		if err != nil {
			continue
		}
		col, _ := strconv.Atoi(colStr)

		c := chunks[chunk-1]
		ms = append(ms, match{
			start: idx[0],
			end:   idx[1],
			marker: Marker{
				File:   c.File,
				Line:   line + c.LineOffset,
				Column: col,
			},
		})
	}
	return ms
}

// Remap rewrites every recognized location in the log to refer to the
// original file and line. The rest of the log is left untouched.
//
// The chunks must be the ones the source strings were built from with
// Sources.
func Remap[C any](chunks []preprocessor.SourceChunk[C], log string) string {
	var b strings.Builder
	last := 0
	for _, m := range matches(chunks, log) {
		b.WriteString(log[last:m.start])
		b.WriteString(m.marker.Location())
		last = m.end
	}
	b.WriteString(log[last:])
	return b.String()
}

// Markers extracts the diagnostics from a compiler log. Lines that carry no
// recognized location are skipped.
func Markers[C any](chunks []preprocessor.SourceChunk[C], log string) []Marker {
	var markers []Marker
	for _, m := range matches(chunks, log) {
		rest := log[m.end:]
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			rest = rest[:i]
		}
		m.marker.Message = strings.TrimSpace(strings.TrimLeft(rest, ": \t"))
		markers = append(markers, m.marker)
	}
	return markers
}

// CompilerOutput is the result of a compiler callback passed to Compile.
type CompilerOutput[A any] struct {
	// Artifact is the user defined output of the compiler, e.g. a shader
	// handle.
	Artifact A
	// Log is the compiler's info log. It is empty if nothing was reported.
	Log string
}

// Compile builds the source strings for the chunks, hands them to the
// compiler and remaps the log it returns.
func Compile[C, A any](chunks []preprocessor.SourceChunk[C], compile func(sources []string) CompilerOutput[A]) CompilerOutput[A] {
	out := compile(Sources(chunks))
	out.Log = Remap(chunks, out.Log)
	return out
}
