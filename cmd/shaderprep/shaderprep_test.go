package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyfloyd/shaderprep/preprocessor"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExpand(t *testing.T) {
	g := goldie.New(t)

	out, err := run(t, "expand", "--root", "testdata/shaders", "-I", "include", "main.frag")
	require.NoError(t, err)
	g.Assert(t, "expand", []byte(out))

	out, err = run(t, "expand", "--root", "testdata/shaders", "-I", "include", "--chunks", "main.frag")
	require.NoError(t, err)
	g.Assert(t, "expand_chunks", []byte(out))

	out, err = run(t, "expand", "--root", "testdata/shaders", "-I", "include", "--line-directives", "main.frag")
	require.NoError(t, err)
	g.Assert(t, "expand_line_directives", []byte(out))
}

func TestExpandExclusiveFlags(t *testing.T) {
	_, err := run(t, "expand", "--root", "testdata/shaders", "-I", "include", "--chunks", "--line-directives", "main.frag")
	assert.Error(t, err)
}

func TestExpandIncludePathEnv(t *testing.T) {
	t.Setenv(includePathEnv, string(filepath.ListSeparator)+"include")
	out, err := run(t, "expand", "--root", "testdata/shaders", "main.frag")
	require.NoError(t, err)
	goldie.New(t).Assert(t, "expand", []byte(out))
}

func TestExpandOutputFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.glsl")
	out, err := run(t, "expand", "--root", "testdata/shaders", "-I", "include", "-o", output, "main.frag")
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := os.ReadFile(output)
	require.NoError(t, err)
	goldie.New(t).Assert(t, "expand", b)
}

func TestExpandMissingInclude(t *testing.T) {
	_, err := run(t, "expand", "--root", "testdata/shaders", "-I", "include", "broken.frag")
	var perr preprocessor.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "missing.glsl", perr.File)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Without the include directory, the shared file can not be found.
	_, err = run(t, "expand", "--root", "testdata/shaders", "main.frag")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "common.glsl", perr.File)
}

func TestExpandCycle(t *testing.T) {
	_, err := run(t, "expand", "--root", "testdata/shaders", "cycle.frag")
	var rerr preprocessor.RecursiveIncludeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, preprocessor.RecursiveIncludeError{File: "cycle.frag", From: "cycle.frag", Line: 2}, rerr)
}

func TestDeps(t *testing.T) {
	out, err := run(t, "deps", "--root", "testdata/shaders", "-I", "include", "main.frag")
	require.NoError(t, err)
	goldie.New(t).Assert(t, "deps", []byte(out))

	out, err = run(t, "deps", "--root", "testdata/shaders", "-I", "include", "--format", "dot", "main.frag")
	require.NoError(t, err)
	assert.Contains(t, out, "digraph")
	assert.Contains(t, out, `"main.frag" -> "lib/noise.glsl"`)

	_, err = run(t, "deps", "--root", "testdata/shaders", "-I", "include", "--format", "yaml", "main.frag")
	assert.Error(t, err)
}

func TestEntryPath(t *testing.T) {
	root, err := filepath.Abs("testdata/shaders")
	require.NoError(t, err)
	cfg := crawlConfig{root: "testdata/shaders"}

	entry, err := cfg.entryPath(filepath.Join(root, "lib", "noise.glsl"))
	require.NoError(t, err)
	assert.Equal(t, "lib/noise.glsl", entry)

	entry, err = cfg.entryPath(filepath.Join("lib", "..", "main.frag"))
	require.NoError(t, err)
	assert.Equal(t, "main.frag", entry)

	_, err = cfg.entryPath(filepath.Dir(root))
	assert.Error(t, err)

	assert.Equal(t, filepath.Join("testdata", "shaders", "lib", "noise.glsl"), cfg.osPath("lib/noise.glsl"))
}

func TestExpandOnceReportsFilesOnError(t *testing.T) {
	opts := &expandOptions{crawlConfig: crawlConfig{root: "testdata/shaders"}, output: "-"}
	cmd := newExpandCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)

	files, err := expandOnce(cmd, "main.frag", opts)
	assert.Error(t, err)
	assert.Equal(t, []string{"main.frag", "lib/noise.glsl"}, files)
	assert.Empty(t, out.String())

	opts.includeDirs = []string{"include"}
	files, err = expandOnce(cmd, "main.frag", opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"main.frag", "lib/noise.glsl", "include/common.glsl"}, files)
	assert.NotEmpty(t, out.String())
}

type failingCloser struct {
	bytes.Buffer
	err error
}

func (w *failingCloser) Close() error {
	return w.err
}

func TestWriteToReportsCloseError(t *testing.T) {
	errClose := errors.New("disk full")
	out := &failingCloser{err: errClose}
	err := writeTo(out, func(w io.Writer) error {
		_, err := io.WriteString(w, "void main() {}\n")
		return err
	})
	assert.ErrorIs(t, err, errClose)
	assert.Equal(t, "void main() {}\n", out.String())

	// The write error takes precedence.
	errWrite := errors.New("short write")
	err = writeTo(&failingCloser{err: errClose}, func(io.Writer) error {
		return errWrite
	})
	assert.ErrorIs(t, err, errWrite)

	err = writeTo(&failingCloser{}, func(io.Writer) error { return nil })
	assert.NoError(t, err)
}
