package depgraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/shaderprep/preprocessor"
	"github.com/polyfloyd/shaderprep/source"
)

func TestRecord(t *testing.T) {
	provider := source.Map{
		"main":   "#include <util>\n#include <consts>\n#include <util>",
		"util":   "#pragma once\n#include <consts>",
		"consts": "const float PI = 3.14;",
	}
	dg := New()
	_, err := preprocessor.ProcessFile("main", provider, struct{}{}, dg.Option())
	require.NoError(t, err)
	require.NoError(t, dg.Err())

	assert.Equal(t, []string{"main", "util", "consts"}, dg.Files())

	includes, err := dg.Includes("main")
	require.NoError(t, err)
	assert.Equal(t, []string{"util", "consts"}, includes)
	includes, err = dg.Includes("consts")
	require.NoError(t, err)
	assert.Empty(t, includes)
	_, err = dg.Includes("nope")
	assert.Error(t, err)

	order, err := dg.Order()
	require.NoError(t, err)
	assert.Equal(t, []string{"consts", "util", "main"}, order)

	var buf bytes.Buffer
	require.NoError(t, dg.WriteDOT(&buf))
	assert.Contains(t, buf.String(), "digraph")
	assert.Contains(t, buf.String(), `"main" -> "util"`)
	assert.Contains(t, buf.String(), `"util" -> "consts"`)
}

func TestOrderCycleThroughPragmaOnce(t *testing.T) {
	provider := source.Map{
		"a": "#include <b>",
		"b": "#pragma once\n#include <c>",
		"c": "#include <b>",
	}
	dg := New()
	_, err := preprocessor.ProcessFile("a", provider, struct{}{}, dg.Option())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, dg.Files())

	_, err = dg.Order()
	assert.Error(t, err)
}
