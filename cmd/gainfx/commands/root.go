package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/gain"
	"github.com/gogpu/gain/internal/config"
)

// rootOptions are the persistent flags shared by all subcommands.
type rootOptions struct {
	cfgFile string
	verbose bool
}

// NewRootCommand builds the gainfx command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gainfx",
		Short: "Apply a per-channel gain to images",
		Long: `gainfx runs the gain image effect over an image file.

It acts as a small host: the input file becomes the source clip, the effect
renders the output clip on a worker pool, and the result is written in the
format named by the output file extension.`,
		Version:      gain.Version,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./gainfx.yaml or $HOME/.gainfx/gainfx.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")
	cmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")

	cmd.AddCommand(newRenderCommand(opts))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// setupLogging routes the gain logger to w at the configured level.
func setupLogging(w io.Writer, cfg *config.Config, verbose bool) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Logging.Level)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if verbose {
		level = slog.LevelDebug
	}
	gain.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}
