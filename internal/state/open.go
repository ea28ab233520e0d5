package state

import (
	"fmt"

	"github.com/marcus/chartfit/internal/config"
)

// Open returns the store described by cfg, scoped to cfg.Origin.
func Open(cfg config.StateConfig) (Store, error) {
	var (
		s   Store
		err error
	)

	switch cfg.Backend {
	case config.BackendMemory:
		s = NewMemory()
	case config.BackendFile, "":
		path := cfg.Path
		if path == "" {
			if path, err = DefaultPath(); err != nil {
				return nil, err
			}
		}
		s, err = OpenFile(path)
	case config.BackendSQLite:
		path := cfg.Path
		if path == "" {
			if path, err = DefaultDBPath(); err != nil {
				return nil, err
			}
		}
		s, err = OpenSQLite(cfg.Driver, path)
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s state: %w", backendName(cfg.Backend), err)
	}
	return Scope(s, cfg.Origin), nil
}

func backendName(b string) string {
	if b == "" {
		return config.BackendFile
	}
	return b
}
