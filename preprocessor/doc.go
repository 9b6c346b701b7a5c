// Package preprocessor expands #include directives in shader source.
//
// This is not a C preprocessor. Only #include and #pragma once are handled,
// all other directives are copied into the output so they can be processed by
// the shader compiler.
//
// Files are not concatenated into a single string. Instead, ProcessFile
// returns a list of SourceChunk which each carry the file and line they
// originate from. The chunks can be passed to the graphics API as separate
// source strings, after which the errorformat package maps locations in the
// compiler's log back to the original files.
//
// Reading files is delegated to a Provider, so includes can be served from
// the filesystem, an archive or memory alike.
package preprocessor
