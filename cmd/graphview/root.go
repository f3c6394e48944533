package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/graphview/config"
	"github.com/lixenwraith/graphview/ctxlog"
)

// rootOptions holds the environment config plus global flag overrides
type rootOptions struct {
	cfg config.Config

	logLevel  string
	logFormat string
	journal   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "graphview",
		Short: "Terminal graph editor backed by an ECS view",
		Long: `graphview renders a domain graph as terminal entities and maps
clicks, drags and keys back into graph operations.

Settings come from GRAPHVIEW_* environment variables; flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = opts.logFormat
			}
			if cmd.Flags().Changed("journal") {
				cfg.JournalPath = opts.journal
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.journal, "journal", "", "path to the SQLite event journal")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newReplayCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newSceneCommand(opts))

	return cmd
}

// logger builds a logger from the resolved config writing to w
func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	return ctxlog.New(o.cfg.LogLevel, o.cfg.LogFormat, w)
}

// context attaches a logger writing to w
func (o *rootOptions) context(parent context.Context, w io.Writer) context.Context {
	return ctxlog.WithLogger(parent, o.logger(w))
}
