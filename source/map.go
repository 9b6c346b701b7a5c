package source

import (
	"fmt"
	"io/fs"

	"github.com/polyfloyd/shaderprep/preprocessor"
)

// Map serves includes from memory. Paths are used as is, without any
// normalization.
type Map map[string]string

func (m Map) Resolve(path string, _ struct{}) (preprocessor.ResolvedInclude[struct{}], error) {
	if _, ok := m[path]; !ok {
		return preprocessor.ResolvedInclude[struct{}]{}, fmt.Errorf("%q: %w", path, fs.ErrNotExist)
	}
	return preprocessor.ResolvedInclude[struct{}]{Path: preprocessor.ResolvedPath(path)}, nil
}

func (m Map) Read(path preprocessor.ResolvedPath) (string, error) {
	src, ok := m[string(path)]
	if !ok {
		return "", fmt.Errorf("%q: %w", path, fs.ErrNotExist)
	}
	return src, nil
}
