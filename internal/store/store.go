// Package store implements the Store backends that persist repticare
// collections as keyed JSON blobs.
package store

import (
	"fmt"

	"github.com/mesh-intelligence/repticare/pkg/types"
)

// Open creates the Store selected by cfg.Backend.
func Open(cfg types.Config) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendFile:
		return OpenFile(cfg.DataDir)
	case types.BackendSQLite:
		return OpenSQLite(cfg.DataDir)
	case types.BackendPostgres:
		return OpenPostgres(cfg.PostgresDSN)
	case types.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("open %q: %w", cfg.Backend, types.ErrBackendUnknown)
	}
}
