package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// PostgresStorage keeps state values in the kv_store table created by the migrator.
type PostgresStorage struct {
	db Database
}

func NewPostgresStorage(db Database) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Get returns the value stored under key.
func (r *PostgresStorage) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value string

	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get value by key: %w", err)
	}

	return value, nil
}

// Set inserts or replaces the value stored under key.
func (r *PostgresStorage) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = CURRENT_TIMESTAMP;
	`

	_, err := r.db.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("failed to save value: %w", err)
	}

	return nil
}

func (r *PostgresStorage) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL DB: %w", err)
	}
	return nil
}

func (r *PostgresStorage) Close() error {
	r.db.Close()
	return nil
}
