package preprocessor

// ResolvedPath is the canonical identity of an include target. Different
// paths written in include directives may resolve to the same ResolvedPath,
// which is what cycle detection and #pragma once key on.
type ResolvedPath string

// ResolvedInclude pairs a resolved path with the context that should be used
// while scanning the included file.
type ResolvedInclude[C any] struct {
	Path    ResolvedPath
	Context C
}

// A Provider resolves and reads included files on behalf of the crawler. All
// I/O is delegated to it.
//
// Resolve must be stable: the same logical file must always resolve to an
// equal ResolvedPath.
type Provider[C any] interface {
	// Resolve maps the path as written in an include directive, together with
	// the context of the including file, to a canonical path.
	Resolve(path string, context C) (ResolvedInclude[C], error)

	// Read returns the full contents of a resolved file.
	Read(path ResolvedPath) (string, error)
}
