package preprocessor

import (
	"strings"
)

// SourceChunk is a contiguous span of expanded source text along with the
// location it originates from.
type SourceChunk[C any] struct {
	// Source is the text of the chunk.
	Source string
	// File identifies the file the text was read from. It is the string form of
	// the resolved include path.
	File string
	// LineOffset is the 0-based line in File at which Source starts.
	LineOffset int
	// Context is the include context the file was resolved with.
	Context C
}

// Join concatenates the source of all chunks, yielding the fully expanded
// text.
func Join[C any](chunks []SourceChunk[C]) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Source)
	}
	return b.String()
}
