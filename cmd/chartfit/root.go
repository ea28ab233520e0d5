package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/chartfit/internal/app"
	"github.com/marcus/chartfit/internal/chart"
	"github.com/marcus/chartfit/internal/config"
	"github.com/marcus/chartfit/internal/state"
	"github.com/marcus/chartfit/internal/styles"
	"github.com/marcus/chartfit/internal/version"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	configPath string
	debug      bool
	logFile    string

	// Overrides for the loaded config.
	maxWidth  int
	statePath string
	backend   string
	dataFile  string
	ephemeral bool
	theme     string
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&rootOptions{})
}

func newRootCmdWith(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chartfit",
		Short: "Render a bar chart that follows your terminal width",
		Long: `chartfit draws a bar chart that tracks the terminal width up to a
maximum chart width. Resizes are debounced and the last seen width is
persisted, so the chart comes back at the right size after a restart.`,
		Version: version.String(),
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. bad config, unreadable data file)
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	cmd.SetVersionTemplate(`{{printf "chartfit version %s\n" .Version}}`)

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to config file (default ~/.config/chartfit/config.json)")
	pf.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	pf.IntVar(&opts.maxWidth, "max-width", 0, "maximum chart width in columns")
	pf.StringVar(&opts.statePath, "state", "", "path to the state file or database")
	pf.StringVar(&opts.backend, "backend", "", "state backend: file, sqlite or memory")
	pf.StringVar(&opts.dataFile, "data", "", "series file (YAML or JSON)")
	pf.BoolVar(&opts.ephemeral, "ephemeral", false, "keep state in memory only")
	pf.StringVar(&opts.theme, "theme", "", "color theme: dark or light")

	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFrom(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("max-width") {
		cfg.Chart.MaxWidth = opts.maxWidth
	}
	if flags.Changed("data") {
		cfg.Chart.DataFile = config.ExpandPath(opts.dataFile)
	}
	if flags.Changed("backend") {
		cfg.State.Backend = opts.backend
	}
	if flags.Changed("state") {
		cfg.State.Path = config.ExpandPath(opts.statePath)
	}
	if flags.Changed("theme") {
		cfg.UI.Theme = opts.theme
	}
	if opts.ephemeral {
		cfg.State.Backend = config.BackendMemory
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the text logger. An empty path writes to fallback.
func newLogger(debug bool, path string, fallback io.Writer) (*slog.Logger, func(), error) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}

	w := fallback
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(config.ExpandPath(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
	return logger, closeFn, nil
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// Logging to the terminal would corrupt the alt screen.
	logger, closeLog, err := newLogger(opts.debug, opts.logFile, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	if !styles.IsValidTheme(cfg.UI.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme, "available", styles.ListThemes())
	}
	styles.ApplyThemeWithOverrides(cfg.UI.Theme, cfg.UI.Colors)

	store, err := state.Open(cfg.State)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close state", "err", err)
		}
	}()

	series, err := chart.LoadSeries(cfg.Chart.DataFile)
	if err != nil {
		return err
	}

	var reloads <-chan chart.SeriesUpdate
	if cfg.Chart.DataFile != "" {
		w, err := chart.WatchSeries(cfg.Chart.DataFile, 0, nil, logger)
		if err != nil {
			logger.Warn("series live reload disabled", "path", cfg.Chart.DataFile, "err", err)
		} else {
			defer w.Close()
			reloads = w.Updates()
		}
	}

	model := app.New(app.Options{
		Config:        cfg,
		Store:         store,
		Series:        series,
		Logger:        logger,
		SeriesUpdates: reloads,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		m.Shutdown()
	}
	if err != nil {
		return fmt.Errorf("error running application: %w", err)
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of chartfit",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chartfit version %s\n", version.String())
		},
	}
}
