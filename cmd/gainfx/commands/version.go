package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gogpu/gain"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gainfx v%s\n", gain.Version)
			fmt.Fprintf(out, "Effect: %s\n", gain.PluginID)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
		},
	}
}
