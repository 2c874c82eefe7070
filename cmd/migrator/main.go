package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/UnknownOlympus/hrnet/internal/config"
	"github.com/UnknownOlympus/hrnet/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hrnet/internal/repository"
)

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()

	logger := sl.Setup(cfg.Env, os.Stdout).With(slog.String("division", "migrator"))

	if cfg.Storage.Backend != repository.BackendPostgres {
		logger.InfoContext(ctx, "Backend creates its schema on open, nothing to migrate",
			"backend", cfg.Storage.Backend)
		return
	}

	if err := migrate(ctx, logger, cfg.Postgres); err != nil {
		logger.ErrorContext(ctx, "Migration failed", sl.Err(err))
		os.Exit(1)
	}
}

func migrate(ctx context.Context, logger *slog.Logger, cfg config.PostgresConfig) error {
	dbpool, err := repository.NewDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	dtb := stdlib.OpenDBFromPool(dbpool)
	defer dtb.Close()

	version, err := repository.Migrate(dtb, cfg.MigrationsDir)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "✅ kv_store migrations applied",
		"database", cfg.Dbname, "dir", cfg.MigrationsDir, "version", version)

	return nil
}
