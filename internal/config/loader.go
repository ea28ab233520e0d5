package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configDir  = ".config/chartfit"
	configFile = "config.json"
)

// rawConfig is the unmarshaling intermediary. Pointer fields tell an
// absent key apart from an explicit zero.
type rawConfig struct {
	Chart rawChartConfig `json:"chart" yaml:"chart"`
	State rawStateConfig `json:"state" yaml:"state"`
	UI    rawUIConfig    `json:"ui" yaml:"ui"`
}

type rawChartConfig struct {
	MaxWidth *int   `json:"maxWidth" yaml:"maxWidth"`
	Debounce string `json:"debounce" yaml:"debounce"`
	DataFile string `json:"dataFile" yaml:"dataFile"`
}

type rawStateConfig struct {
	Backend string `json:"backend" yaml:"backend"`
	Path    string `json:"path" yaml:"path"`
	Driver  string `json:"driver" yaml:"driver"`
	Origin  string `json:"origin" yaml:"origin"`
}

type rawUIConfig struct {
	ShowFooter *bool             `json:"showFooter" yaml:"showFooter"`
	Title      string            `json:"title" yaml:"title"`
	Theme      string            `json:"theme" yaml:"theme"`
	Colors     map[string]string `json:"colors" yaml:"colors"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/chartfit/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := mergeConfig(cfg, &raw); err != nil {
		return nil, err
	}

	cfg.Chart.DataFile = ExpandPath(cfg.Chart.DataFile)
	cfg.State.Path = ExpandPath(cfg.State.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) error {
	// Chart
	if raw.Chart.MaxWidth != nil {
		cfg.Chart.MaxWidth = *raw.Chart.MaxWidth
	}
	if raw.Chart.Debounce != "" {
		d, err := time.ParseDuration(raw.Chart.Debounce)
		if err != nil {
			return fmt.Errorf("chart.debounce: %w", err)
		}
		cfg.Chart.Debounce = d
	}
	if raw.Chart.DataFile != "" {
		cfg.Chart.DataFile = raw.Chart.DataFile
	}

	// State
	if raw.State.Backend != "" {
		cfg.State.Backend = raw.State.Backend
	}
	if raw.State.Path != "" {
		cfg.State.Path = raw.State.Path
	}
	if raw.State.Driver != "" {
		cfg.State.Driver = raw.State.Driver
	}
	if raw.State.Origin != "" {
		cfg.State.Origin = raw.State.Origin
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.Title != "" {
		cfg.UI.Title = raw.UI.Title
	}
	if raw.UI.Theme != "" {
		cfg.UI.Theme = raw.UI.Theme
	}
	if len(raw.UI.Colors) > 0 {
		cfg.UI.Colors = raw.UI.Colors
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
