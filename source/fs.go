package source

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/polyfloyd/shaderprep/preprocessor"
)

// FS serves includes from a filesystem.
//
// The include context is the slash-separated directory of the including file.
// Paths starting with a slash are taken relative to the root of the
// filesystem. Other paths are looked up in the directory of the including
// file first and then in each of the IncludeDirs in order.
type FS struct {
	FS          fs.FS
	IncludeDirs []string
}

// Dir creates an FS that reads from the directory at root on the host
// filesystem.
func Dir(root string, includeDirs ...string) FS {
	return FS{FS: os.DirFS(root), IncludeDirs: includeDirs}
}

func (f FS) Resolve(name string, dir string) (preprocessor.ResolvedInclude[string], error) {
	var candidates []string
	if strings.HasPrefix(name, "/") {
		candidates = []string{path.Clean(strings.TrimPrefix(name, "/"))}
	} else {
		candidates = append(candidates, path.Join(dir, name))
		for _, inc := range f.IncludeDirs {
			candidates = append(candidates, path.Join(filepath.ToSlash(inc), name))
		}
	}

	for _, c := range candidates {
		if !fs.ValidPath(c) {
			continue
		}
		info, err := fs.Stat(f.FS, c)
		if err != nil || info.IsDir() {
			continue
		}
		return preprocessor.ResolvedInclude[string]{
			Path:    preprocessor.ResolvedPath(c),
			Context: path.Dir(c),
		}, nil
	}
	return preprocessor.ResolvedInclude[string]{}, fmt.Errorf("%q: %w", name, fs.ErrNotExist)
}

func (f FS) Read(p preprocessor.ResolvedPath) (string, error) {
	b, err := fs.ReadFile(f.FS, string(p))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
