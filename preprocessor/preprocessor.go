package preprocessor

import (
	"log"
)

// Include describes an include directive that was resolved during a crawl.
type Include struct {
	// From is the file containing the directive. It is empty for the entry
	// file.
	From ResolvedPath
	// To is the file the directive resolved to.
	To ResolvedPath
	// Path is the path as written in the directive.
	Path string
	// Line is the 1-based line of the directive in From.
	Line int
	// Skipped is set if To was not expanded because of #pragma once.
	Skipped bool
}

// An Option configures a crawl.
type Option func(*options)

type options struct {
	logger    *log.Logger
	onInclude func(Include)
}

// WithLogger traces include resolution to the specified logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIncludeHook registers a function that is called for every include that
// has been resolved, before the included file is scanned.
func WithIncludeHook(fn func(Include)) Option {
	return func(o *options) {
		o.onInclude = fn
	}
}

// crawl holds the state shared by all scanners of a single ProcessFile call.
type crawl[C any] struct {
	provider Provider[C]
	options

	// inProgress contains the files on the current include stack.
	inProgress map[ResolvedPath]struct{}
	// once contains the files that have declared #pragma once.
	once map[ResolvedPath]struct{}
}

func newCrawl[C any](provider Provider[C], opts []Option) *crawl[C] {
	cr := &crawl[C]{
		provider:   provider,
		inProgress: map[ResolvedPath]struct{}{},
		once:       map[ResolvedPath]struct{}{},
	}
	for _, opt := range opts {
		opt(&cr.options)
	}
	return cr
}

func (cr *crawl[C]) push(path ResolvedPath) {
	cr.inProgress[path] = struct{}{}
}

func (cr *crawl[C]) pop(path ResolvedPath) {
	delete(cr.inProgress, path)
}

func (cr *crawl[C]) isInProgress(path ResolvedPath) bool {
	_, ok := cr.inProgress[path]
	return ok
}

func (cr *crawl[C]) markOnce(path ResolvedPath) {
	cr.once[path] = struct{}{}
}

func (cr *crawl[C]) isOnce(path ResolvedPath) bool {
	_, ok := cr.once[path]
	return ok
}

func (cr *crawl[C]) observe(inc Include) {
	if cr.logger != nil {
		if inc.From == "" {
			cr.logger.Printf("including %q as %q", inc.Path, inc.To)
		} else if inc.Skipped {
			cr.logger.Printf("%s:%d: skipping %q, already included once", inc.From, inc.Line, inc.To)
		} else {
			cr.logger.Printf("%s:%d: including %q as %q", inc.From, inc.Line, inc.Path, inc.To)
		}
	}
	if cr.onInclude != nil {
		cr.onInclude(inc)
	}
}

// ProcessFile expands the file at path and, recursively, all files it
// includes. All files, including the entry file, are resolved and read through
// the provider. The context is used to resolve the entry file.
//
// Either the complete list of chunks or the first error encountered is
// returned.
func ProcessFile[C any](path string, provider Provider[C], context C, opts ...Option) ([]SourceChunk[C], error) {
	cr := newCrawl(provider, opts)
	root := newScanner(cr, "", context, "")
	if err := root.include(path, 1); err != nil {
		return nil, err
	}
	return root.chunks, nil
}

// ProcessString expands src as if it were the contents of the file
// identified by name. Includes are resolved relative to the context.
func ProcessString[C any](name ResolvedPath, src string, provider Provider[C], context C, opts ...Option) ([]SourceChunk[C], error) {
	cr := newCrawl(provider, opts)
	cr.push(name)
	sc := newScanner(cr, name, context, src)
	if err := sc.scan(); err != nil {
		return nil, err
	}
	return sc.chunks, nil
}
