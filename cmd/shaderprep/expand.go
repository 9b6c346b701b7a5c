package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polyfloyd/shaderprep/errorformat"
	"github.com/polyfloyd/shaderprep/preprocessor"
)

type expandOptions struct {
	crawlConfig
	output         string
	lineDirectives bool
	chunks         bool
}

func newExpandCmd() *cobra.Command {
	opts := &expandOptions{}
	cmd := &cobra.Command{
		Use:   "expand ENTRY",
		Short: "Print a shader with all includes expanded",
		Long: `Print a shader with all includes expanded. The entry file is relative
to the root directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunks, err := opts.process(args[0])
			if err != nil {
				return err
			}
			out, err := openWriter(cmd, opts.output)
			if err != nil {
				return err
			}
			return writeTo(out, func(w io.Writer) error {
				return writeExpanded(w, chunks, opts)
			})
		},
	}
	opts.register(cmd)
	opts.registerOutput(cmd)
	return cmd
}

func (opts *expandOptions) registerOutput(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "-", "The file to write the expanded source to")
	cmd.Flags().BoolVar(&opts.lineDirectives, "line-directives", false, "Write the source strings as they are passed to the compiler, separated by #line directives")
	cmd.Flags().BoolVar(&opts.chunks, "chunks", false, "Precede every chunk with a comment naming its file and line")
	cmd.MarkFlagsMutuallyExclusive("line-directives", "chunks")
}

func writeExpanded[C any](w io.Writer, chunks []preprocessor.SourceChunk[C], opts *expandOptions) error {
	switch {
	case opts.lineDirectives:
		for _, s := range errorformat.Sources(chunks) {
			if err := writeLine(w, s); err != nil {
				return err
			}
		}
		return nil
	case opts.chunks:
		for _, c := range chunks {
			if _, err := fmt.Fprintf(w, "// %s:%d\n", c.File, c.LineOffset+1); err != nil {
				return err
			}
			if err := writeLine(w, c.Source); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := io.WriteString(w, preprocessor.Join(chunks))
		return err
	}
}

// writeLine writes s and terminates it with a newline if it does not end with
// one already.
func writeLine(w io.Writer, s string) error {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}
