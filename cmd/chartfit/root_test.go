package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marcus/chartfit/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "chartfit" {
		t.Errorf("Expected Use to be 'chartfit', got %s", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("Expected Short and Long descriptions to be set")
	}
	if !cmd.SilenceUsage {
		t.Error("Expected SilenceUsage to be true")
	}

	for _, name := range []string{"watch", "config", "version"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("Expected subcommand %q", name)
		}
	}
	for _, flag := range []string{"config", "debug", "log-file", "max-width", "state", "backend", "data", "ephemeral"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Expected persistent flag --%s", flag)
		}
	}
}

func TestVersionOutput(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("Error executing --version: %v", err)
	}
	if !strings.HasPrefix(out, "chartfit version ") {
		t.Errorf("Unexpected version output %q", out)
	}

	out, err = execute(t, "version")
	if err != nil {
		t.Fatalf("Error executing version: %v", err)
	}
	if !strings.HasPrefix(out, "chartfit version ") {
		t.Errorf("Unexpected version output %q", out)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("chart:\n  maxWidth: 60\n  debounce: 50ms\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		check   func(t *testing.T, cfg *config.Config)
		wantErr error
	}{
		{
			name: "file values",
			args: []string{"--config", cfgPath},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Chart.MaxWidth != 60 {
					t.Errorf("MaxWidth = %d, want 60", cfg.Chart.MaxWidth)
				}
				if cfg.Chart.Debounce != 50*time.Millisecond {
					t.Errorf("Debounce = %v, want 50ms", cfg.Chart.Debounce)
				}
			},
		},
		{
			name: "flags override file",
			args: []string{"--config", cfgPath, "--max-width", "90", "--backend", "sqlite", "--state", filepath.Join(dir, "s.db")},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Chart.MaxWidth != 90 {
					t.Errorf("MaxWidth = %d, want 90", cfg.Chart.MaxWidth)
				}
				if cfg.State.Backend != config.BackendSQLite {
					t.Errorf("Backend = %q, want sqlite", cfg.State.Backend)
				}
				if cfg.State.Path != filepath.Join(dir, "s.db") {
					t.Errorf("Path = %q", cfg.State.Path)
				}
			},
		},
		{
			name: "ephemeral wins",
			args: []string{"--config", cfgPath, "--backend", "sqlite", "--ephemeral"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.State.Backend != config.BackendMemory {
					t.Errorf("Backend = %q, want memory", cfg.State.Backend)
				}
			},
		},
		{
			name:    "non-positive max width fails fast",
			args:    []string{"--config", cfgPath, "--max-width", "0"},
			wantErr: config.ErrInvalidMaxWidth,
		},
		{
			name:    "unknown backend",
			args:    []string{"--config", cfgPath, "--backend", "redis"},
			wantErr: config.ErrUnknownBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := &rootOptions{}
			cmd := newRootCmdWith(opts)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}
			cfg, err := loadConfig(cmd, opts)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("loadConfig() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestWatch_RejectsInvalidMaxWidth(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "watch", "--config", filepath.Join(dir, "none.json"), "--ephemeral", "--max-width=-5")
	if !errors.Is(err, config.ErrInvalidMaxWidth) {
		t.Fatalf("watch error = %v, want ErrInvalidMaxWidth", err)
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output %q does not name %s", out, path)
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Chart.MaxWidth != config.DefaultMaxWidth {
		t.Errorf("MaxWidth = %d, want %d", cfg.Chart.MaxWidth, config.DefaultMaxWidth)
	}

	if _, err := execute(t, "config", "init", "--config", path); err == nil {
		t.Error("expected error when config exists")
	}
	if _, err := execute(t, "config", "init", "--config", path, "--force"); err != nil {
		t.Errorf("config init --force: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, "config", "path", "--config", "/tmp/x/chartfit.json")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if strings.TrimSpace(out) != "/tmp/x/chartfit.json" {
		t.Errorf("config path = %q", out)
	}
}
