package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/hrnet/internal/config"
)

// Open returns the storage backend selected in cfg.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Backend {
	case BackendFile:
		return NewFileStorage(cfg.Storage.Path), nil
	case BackendSQLite:
		return NewSQLiteStorage(ctx, cfg.Storage.Path)
	case BackendPostgres:
		dbpool, err := NewDatabase(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", err)
		}
		return NewPostgresStorage(dbpool), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Storage.Backend)
	}
}
