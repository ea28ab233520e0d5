package config

import (
	"errors"
	"fmt"
	"time"
)

// Defaults.
const (
	DefaultMaxWidth = 100
	DefaultDebounce = 200 * time.Millisecond
	DefaultTitle    = "chartfit"
	DefaultTheme    = "dark"
)

// State backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SQLite drivers, matching the database/sql driver names.
const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

var (
	ErrInvalidMaxWidth = errors.New("max chart width must be a positive number")
	ErrUnknownBackend  = errors.New("unknown state backend")
	ErrUnknownDriver   = errors.New("unknown sqlite driver")
)

// Config is the root configuration structure.
type Config struct {
	Chart ChartConfig `json:"chart" yaml:"chart"`
	State StateConfig `json:"state" yaml:"state"`
	UI    UIConfig    `json:"ui" yaml:"ui"`
}

// ChartConfig configures the chart and its resize behaviour.
type ChartConfig struct {
	MaxWidth int           `json:"maxWidth" yaml:"maxWidth"` // columns; the chart stops growing here
	Debounce time.Duration `json:"debounce" yaml:"debounce"` // quiescence window for resize events
	DataFile string        `json:"dataFile" yaml:"dataFile"` // series file (YAML or JSON); empty = built-in demo
}

// StateConfig configures where the previous width is persisted.
type StateConfig struct {
	Backend string `json:"backend" yaml:"backend"` // "file", "sqlite" or "memory"
	Path    string `json:"path" yaml:"path"`       // state file or database; empty = ~/.config/chartfit/state.{json,db}
	Driver  string `json:"driver" yaml:"driver"`   // sqlite driver: "sqlite" (pure Go) or "sqlite3" (cgo)
	Origin  string `json:"origin" yaml:"origin"`   // key namespace; empty = unscoped
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool              `json:"showFooter" yaml:"showFooter"`
	Title      string            `json:"title" yaml:"title"`
	Theme      string            `json:"theme" yaml:"theme"`                       // "dark" or "light"
	Colors     map[string]string `json:"colors,omitempty" yaml:"colors,omitempty"` // palette overrides by key, e.g. "primary"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Chart: ChartConfig{
			MaxWidth: DefaultMaxWidth,
			Debounce: DefaultDebounce,
		},
		State: StateConfig{
			Backend: BackendFile,
			Driver:  DriverModernc,
		},
		UI: UIConfig{
			ShowFooter: true,
			Title:      DefaultTitle,
			Theme:      DefaultTheme,
		},
	}
}

// Validate checks the configuration for errors. Recoverable values are
// corrected in place.
func (c *Config) Validate() error {
	if c.Chart.MaxWidth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxWidth, c.Chart.MaxWidth)
	}
	if c.Chart.Debounce <= 0 {
		c.Chart.Debounce = DefaultDebounce
	}
	switch c.State.Backend {
	case "":
		c.State.Backend = BackendFile
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.State.Backend)
	}
	switch c.State.Driver {
	case "":
		c.State.Driver = DriverModernc
	case DriverModernc, DriverCgo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.State.Driver)
	}
	if c.UI.Title == "" {
		c.UI.Title = DefaultTitle
	}
	if c.UI.Theme == "" {
		c.UI.Theme = DefaultTheme
	}
	return nil
}
