package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// saveConfig is the marshaling intermediary that writes durations as strings.
type saveConfig struct {
	Chart saveChartConfig `json:"chart" yaml:"chart"`
	State StateConfig     `json:"state" yaml:"state"`
	UI    UIConfig        `json:"ui" yaml:"ui"`
}

type saveChartConfig struct {
	MaxWidth int    `json:"maxWidth" yaml:"maxWidth"`
	Debounce string `json:"debounce,omitempty" yaml:"debounce,omitempty"`
	DataFile string `json:"dataFile,omitempty" yaml:"dataFile,omitempty"`
}

// toSaveConfig converts Config to the serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Chart: saveChartConfig{
			MaxWidth: cfg.Chart.MaxWidth,
			Debounce: cfg.Chart.Debounce.String(),
			DataFile: cfg.Chart.DataFile,
		},
		State: cfg.State,
		UI:    cfg.UI,
	}
}

// Save writes cfg to path, as YAML for .yaml/.yml and JSON otherwise.
// An empty path means ~/.config/chartfit/config.json.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	sc := toSaveConfig(cfg)
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(sc)
	} else {
		data, err = json.MarshalIndent(sc, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
