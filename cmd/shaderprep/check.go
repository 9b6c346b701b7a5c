package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/polyfloyd/shaderprep/renderer"
)

type checkOptions struct {
	crawlConfig
	stage   string
	backend string
	color   bool
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check ENTRY...",
		Short: "Compile shaders with OpenGL and report errors against the original files",
		Long: `Expand and compile each shader with the OpenGL driver. The pipeline stage
is inferred from the file extension (.vert, .geom, .frag) unless --stage is
set. If more than one shader is given, they are also linked into a program.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := renderer.NewContext(renderer.Backend(opts.backend))
			if err != nil {
				return fmt.Errorf("could not create an OpenGL context: %v", err)
			}
			defer ctx.Close()

			if opts.verbose {
				if debug := renderer.DebugMessages(); debug != nil {
					go func() {
						for dm := range debug {
							log.Printf("OpenGL %s", dm)
						}
					}()
				}
			}

			var shaders []uint32
			failed := false
			for _, arg := range args {
				sh, err := opts.compile(cmd, arg)
				if err != nil {
					failed = true
					continue
				}
				shaders = append(shaders, sh)
			}
			if failed {
				return errors.New("compilation failed")
			}
			if len(shaders) > 1 {
				if _, err := renderer.LinkProgram(shaders...); err != nil {
					return err
				}
			}
			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&opts.stage, "stage", "", "The pipeline stage of all shaders: vert, geom or frag")
	cmd.Flags().StringVar(&opts.backend, "backend", string(renderer.BackendEGL), "How to obtain an OpenGL context: egl or glfw")
	cmd.Flags().BoolVar(&opts.color, "color", false, "Highlight diagnostics")
	return cmd
}

func (opts *checkOptions) compile(cmd *cobra.Command, arg string) (uint32, error) {
	var stage renderer.Stage
	var err error
	if opts.stage != "" {
		stage, err = renderer.ParseStage(opts.stage)
	} else {
		stage, err = renderer.StageFromFilename(arg)
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return 0, err
	}

	chunks, err := opts.process(arg)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return 0, err
	}
	sh, compilerLog, err := renderer.CompileShader(stage, chunks)
	var cerr renderer.CompileError
	if errors.As(err, &cerr) {
		cerr.PrettyPrint(cmd.ErrOrStderr(), opts.color)
		return 0, err
	} else if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return 0, err
	}
	if msg := strings.TrimSpace(compilerLog); msg != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
	}
	return sh, nil
}
