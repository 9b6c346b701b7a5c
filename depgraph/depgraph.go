// Package depgraph records which files include each other during a crawl so
// build systems can track the dependencies of a shader.
package depgraph

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/polyfloyd/shaderprep/preprocessor"
)

// Graph is a directed graph of files with an edge from every file to each
// file it includes.
type Graph struct {
	g     graph.Graph[string, string]
	files []string
	err   error
}

func New() *Graph {
	return &Graph{
		g: graph.New(graph.StringHash, graph.Directed()),
	}
}

// Option returns a preprocessor option which records all includes in the
// graph.
func (dg *Graph) Option() preprocessor.Option {
	return preprocessor.WithIncludeHook(dg.Record)
}

// Record adds the files and the edge of an include to the graph.
func (dg *Graph) Record(inc preprocessor.Include) {
	if dg.err != nil {
		return
	}
	if err := dg.addFile(string(inc.To)); err != nil {
		dg.err = err
		return
	}
	if inc.From == "" {
		return
	}
	if err := dg.addFile(string(inc.From)); err != nil {
		dg.err = err
		return
	}
	err := dg.g.AddEdge(string(inc.From), string(inc.To), graph.EdgeAttribute("label", strconv.Itoa(inc.Line)))
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		dg.err = fmt.Errorf("error adding include %q -> %q: %w", inc.From, inc.To, err)
	}
}

func (dg *Graph) addFile(file string) error {
	err := dg.g.AddVertex(file)
	if errors.Is(err, graph.ErrVertexAlreadyExists) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error adding file %q: %w", file, err)
	}
	dg.files = append(dg.files, file)
	return nil
}

// Err returns the first error that occurred while recording.
func (dg *Graph) Err() error {
	return dg.err
}

// Files returns all recorded files in the order they were first included.
func (dg *Graph) Files() []string {
	return append([]string(nil), dg.files...)
}

// Includes returns the files directly included by file.
func (dg *Graph) Includes(file string) ([]string, error) {
	adj, err := dg.g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	edges, ok := adj[file]
	if !ok {
		return nil, fmt.Errorf("unknown file %q", file)
	}
	var out []string
	for _, f := range dg.files {
		if _, ok := edges[f]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// Order returns all files such that every file is listed after all files it
// includes. It fails if files include each other, which is possible when a
// #pragma once file is included by one of its own includes.
func (dg *Graph) Order() ([]string, error) {
	rank := make(map[string]int, len(dg.files))
	for i, f := range dg.files {
		rank[f] = i
	}
	sorted, err := graph.StableTopologicalSort(dg.g, func(a, b string) bool {
		return rank[a] < rank[b]
	})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted, nil
}

// WriteDOT writes the graph in Graphviz DOT format.
func (dg *Graph) WriteDOT(w io.Writer) error {
	return draw.DOT(dg.g, w)
}
