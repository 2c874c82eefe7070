package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose"

	"github.com/UnknownOlympus/hrnet/internal/config"
)

// Database is the part of a pgx pool used by PostgresStorage.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

const (
	idleTime = 30 * time.Second
	hcPeriod = 30 * time.Second
)

// NewDatabase opens the pool for the postgres backend and pings it once within cfg.ConnectTimeout.
func NewDatabase(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	dbpool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection to PostgreSQL: %w", err)
	}

	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL DB %s on %s: %w", cfg.Dbname, cfg.Host, err)
	}

	return dbpool, nil
}

// PoolConfig translates the postgres section of the configuration into pool settings.
func PoolConfig(cfg config.PostgresConfig) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MinConns = int32(cfg.MinConns) //nolint:gosec // bounded by config validation
	poolConfig.MaxConns = int32(cfg.MaxConns) //nolint:gosec // bounded by config validation
	poolConfig.MaxConnIdleTime = idleTime
	poolConfig.HealthCheckPeriod = hcPeriod
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "hrnet"

	return poolConfig, nil
}

// Migrate applies the kv_store migrations found in dir and returns the resulting schema version.
func Migrate(dtb *sql.DB, dir string) (int64, error) {
	if err := goose.Up(dtb, dir); err != nil {
		return 0, fmt.Errorf("failed to apply migrations from %s: %w", dir, err)
	}

	version, err := goose.GetDBVersion(dtb)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}

	return version, nil
}
