package errorformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/shaderprep/preprocessor"
)

var testChunks = []preprocessor.SourceChunk[struct{}]{
	{File: "A", LineOffset: 0, Source: "a\n"},
	{File: "B", LineOffset: 5, Source: "b\n"},
	{File: "C", LineOffset: 0, Source: "c\n"},
}

func TestSources(t *testing.T) {
	sources := Sources(testChunks)
	assert.Equal(t, []string{"a\n", "#line 0 2\nb\n", "#line 0 3\nc\n"}, sources)
	assert.Empty(t, Sources([]preprocessor.SourceChunk[struct{}]{}))
}

func TestRemap(t *testing.T) {
	cases := map[string]string{
		"2(7): error":                          "B(12): error",
		"2(7) : error C0000: syntax error":     "B(12): error C0000: syntax error",
		"ERROR: 3:4: 'x' : undeclared":         "C(4): 'x' : undeclared",
		"ERROR:2:1: foo":                       "B(6): foo",
		"2:7(3): error: syntax error":          "B(12:3): error: syntax error",
		"0(2): clamped":                        "A(2): clamped",
		"99999999999999999999(1): overflow":    "A(1): overflow",
		"4(1): out of range":                   "4(1): out of range",
		"WARNING: 0:1: not an error":           "WARNING: 0:1: not an error",
		"plain text\n1(3): x\nERROR: 2:2: y\n": "plain text\nA(3): x\nB(7): y\n",
		"  2(7): indented":                     "  2(7): indented",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, Remap(testChunks, input), "input: %q", input)
	}
}

func TestRemapNumericFileName(t *testing.T) {
	chunks := []preprocessor.SourceChunk[struct{}]{
		{File: "1", LineOffset: 10},
	}
	assert.Equal(t, "1(11): x", Remap(chunks, "ERROR: 1:1: x"))
}

func TestRemapNoChunks(t *testing.T) {
	assert.Equal(t, "1(1): x", Remap([]preprocessor.SourceChunk[struct{}]{}, "1(1): x"))
}

func TestMarkers(t *testing.T) {
	log := strings.Join([]string{
		"ERROR: 2:3: 'foo' : undeclared identifier",
		"ERROR: 2 compilation errors.  No code generated.",
		"3(1) : error C0000: syntax error, unexpected '}'",
		"1:4(10): warning: unused variable",
	}, "\n")
	markers := Markers(testChunks, log)
	require.Len(t, markers, 3)
	assert.Equal(t, Marker{File: "B", Line: 8, Message: "'foo' : undeclared identifier"}, markers[0])
	assert.Equal(t, Marker{File: "C", Line: 1, Message: "error C0000: syntax error, unexpected '}'"}, markers[1])
	assert.Equal(t, Marker{File: "A", Line: 4, Column: 10, Message: "warning: unused variable"}, markers[2])
	assert.Equal(t, "A(4:10): warning: unused variable", markers[2].String())
	assert.Equal(t, "B(8): 'foo' : undeclared identifier", markers[0].String())
}

func TestCompile(t *testing.T) {
	var got []string
	out := Compile(testChunks, func(sources []string) CompilerOutput[uint32] {
		got = sources
		return CompilerOutput[uint32]{Artifact: 7, Log: "2(1): error"}
	})
	assert.Equal(t, Sources(testChunks), got)
	assert.Equal(t, uint32(7), out.Artifact)
	assert.Equal(t, "B(6): error", out.Log)
}
