package main

import (
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shaderprep",
		Short: "Expand #include directives in GLSL shaders",
		Long: `shaderprep expands #include directives in shader sources while keeping
track of the file and line every part of the output originates from.

Only #include and #pragma once are handled. All other preprocessor directives
are left for the shader compiler.`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newExpandCmd(),
		newDepsCmd(),
		newCheckCmd(),
		newWatchCmd(),
	)
	return rootCmd
}
