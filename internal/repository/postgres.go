package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// EnsureSchema creates the key-value table if it does not exist yet.
// The store is a single flat table; there is no versioning or migration logic.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL
		);
	`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}

	return nil
}

// Get returns the blob stored under the given key. An absent key is not an
// error: it returns a nil slice, which callers treat as empty state.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := `
		SELECT value
		FROM kv_store
		WHERE key = $1;
	`

	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		r.log.DebugContext(ctx, "No value stored under key", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query value for key: %w", err)
	}

	return value, nil
}

// Put overwrites the blob stored under the given key.
func (r *Repository) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
	`

	_, err := r.db.Exec(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert value for key: %w", err)
	}

	return nil
}
