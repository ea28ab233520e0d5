package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcus/chartfit/internal/app"
	"github.com/marcus/chartfit/internal/state"
	"github.com/marcus/chartfit/internal/viewport"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the chart width as the terminal is resized",
		Long: `watch runs the resize adapter without the UI. It listens for terminal
resizes and prints "width=N" whenever the chart width changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			logger, closeLog, err := newLogger(opts.debug, opts.logFile, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			store, err := state.Open(cfg.State)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			window := viewport.NewBroadcaster()
			stopNotify := viewport.NotifyResize(window)
			defer stopNotify()

			logger.Info("watching terminal width", "maxWidth", cfg.Chart.MaxWidth, "state", cfg.State.Backend)
			return app.Watch(ctx, app.WatchOptions{
				Element:  viewport.NewTerminalElement(os.Stdout),
				Window:   window,
				Store:    store,
				MaxWidth: cfg.Chart.MaxWidth,
				Debounce: cfg.Chart.Debounce,
				Out:      cmd.OutOrStdout(),
				Logger:   logger,
			})
		},
	}
}
