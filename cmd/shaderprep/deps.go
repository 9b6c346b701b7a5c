package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/polyfloyd/shaderprep/depgraph"
)

type depsOptions struct {
	crawlConfig
	format string
}

func newDepsCmd() *cobra.Command {
	opts := &depsOptions{}
	cmd := &cobra.Command{
		Use:   "deps ENTRY",
		Short: "List the files a shader depends on",
		Long: `List all files included by a shader, directly or indirectly. Files are
listed after the files they include. With --format dot, the include graph is
written in Graphviz format instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dg := depgraph.New()
			if _, err := opts.process(args[0], dg.Option()); err != nil {
				return err
			}
			if err := dg.Err(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch opts.format {
			case "list":
				files, err := dg.Order()
				if err != nil {
					log.Printf("Unable to order dependencies: %v", err)
					files = dg.Files()
				}
				for _, f := range files {
					fmt.Fprintln(out, f)
				}
				return nil
			case "dot":
				return dg.WriteDOT(out)
			default:
				return fmt.Errorf("unknown format: %q", opts.format)
			}
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.format, "format", "list", "The output format: list or dot")
	return cmd
}
