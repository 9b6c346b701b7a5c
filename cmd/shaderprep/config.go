package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polyfloyd/shaderprep/preprocessor"
	"github.com/polyfloyd/shaderprep/source"
)

// includePathEnv lists additional include directories, separated like PATH.
const includePathEnv = "SHADERPREP_INCLUDE_PATH"

// crawlConfig holds the flags shared by all commands that expand shaders.
type crawlConfig struct {
	root        string
	includeDirs []string
	verbose     bool
}

func (c *crawlConfig) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.root, "root", ".", "The directory include paths are resolved in. Files outside of it can not be included")
	cmd.Flags().StringArrayVarP(&c.includeDirs, "include", "I", nil, "Add a directory, relative to the root, to search for includes. May be repeated")
	cmd.Flags().BoolVarP(&c.verbose, "verbose", "v", false, "Show how includes are resolved")
}

// searchDirs returns the include directories from the flags followed by those
// from the environment.
func (c *crawlConfig) searchDirs() []string {
	dirs := append([]string(nil), c.includeDirs...)
	if env := os.Getenv(includePathEnv); env != "" {
		for _, dir := range filepath.SplitList(env) {
			if dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

func (c *crawlConfig) provider() source.FS {
	return source.Dir(c.root, c.searchDirs()...)
}

// entryPath converts a path on the command line to a path relative to the
// root.
func (c *crawlConfig) entryPath(arg string) (string, error) {
	if !filepath.IsAbs(arg) {
		return filepath.ToSlash(filepath.Clean(arg)), nil
	}
	absRoot, err := filepath.Abs(c.root)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absRoot, arg)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q is outside of the root %q", arg, c.root)
	}
	return filepath.ToSlash(rel), nil
}

// osPath converts a resolved path back to a path on the host filesystem.
func (c *crawlConfig) osPath(resolved string) string {
	return filepath.Join(c.root, filepath.FromSlash(resolved))
}

func (c *crawlConfig) process(arg string, opts ...preprocessor.Option) ([]preprocessor.SourceChunk[string], error) {
	entry, err := c.entryPath(arg)
	if err != nil {
		return nil, err
	}
	if c.verbose {
		opts = append(opts, preprocessor.WithLogger(log.New(os.Stderr, "", 0)))
	}
	return preprocessor.ProcessFile(entry, c.provider(), ".", opts...)
}

func openWriter(cmd *cobra.Command, filename string) (io.WriteCloser, error) {
	if filename == "-" {
		return nopCloseWriter{Writer: cmd.OutOrStdout()}, nil
	}
	return os.Create(filename)
}

// writeTo runs write on out and closes it. The error of Close is reported if
// writing succeeded.
func writeTo(out io.WriteCloser, write func(io.Writer) error) (err error) {
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return write(out)
}

type nopCloseWriter struct {
	io.Writer
}

func (nopCloseWriter) Close() error {
	return nil
}
