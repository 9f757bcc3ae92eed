package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresKV connects to PostgreSQL (or CockroachDB) and ensures the
// single key/value table the bridge writes through exists.
func NewPostgresKV(ctx context.Context, databaseURL string) (*PostgresKV, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS app_state (
                key TEXT PRIMARY KEY,
                value BYTEA NOT NULL,
                updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure app_state table: %w", err)
	}

	return &PostgresKV{pool: pool}, nil
}

// NewPostgresKVFromPool wraps an existing pool. The app_state table must
// already exist. Useful for tests that manage their own server.
func NewPostgresKVFromPool(pool *pgxpool.Pool) *PostgresKV {
	return &PostgresKV{pool: pool}
}

// PostgresKV implements KV on a single-table PostgreSQL schema. Writers
// overwrite wholesale under their own key, so last-writer-wins is the only
// conflict semantics needed.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// Get returns the stored value for key.
func (s *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	var value []byte
	row := conn.QueryRow(ctx, `SELECT value FROM app_state WHERE key = $1`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("select state key %q: %w", key, err)
	}
	return value, nil
}

// Set upserts the value stored under key.
func (s *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, `
        INSERT INTO app_state (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
    `, key, value)
	if err != nil {
		return fmt.Errorf("upsert state key %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Deleting an absent key is a no-op.
func (s *PostgresKV) Delete(ctx context.Context, key string) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `DELETE FROM app_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete state key %q: %w", key, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresKV) Close() {
	s.pool.Close()
}
