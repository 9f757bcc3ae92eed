package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/cockroachdb/cockroach-go/v2/testserver"
	"github.com/jackc/pgx/v5/pgxpool"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	server, err := testserver.NewTestServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cockroach test server: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, server.PGURL().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to cockroach test server: %v\n", err)
		server.Stop()
		os.Exit(1)
	}

	if _, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS app_state (
                key TEXT PRIMARY KEY,
                value BYTEA NOT NULL,
                updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`); err != nil {
		fmt.Fprintf(os.Stderr, "create app_state table: %v\n", err)
		pool.Close()
		server.Stop()
		os.Exit(1)
	}

	testPool = pool

	code := m.Run()

	pool.Close()
	server.Stop()

	os.Exit(code)
}

func resetTable(t *testing.T) {
	t.Helper()
	if _, err := testPool.Exec(context.Background(), `DELETE FROM app_state`); err != nil {
		t.Fatalf("reset app_state: %v", err)
	}
}

func TestPostgresKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	resetTable(t)

	kv := NewPostgresKVFromPool(testPool)

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound for unknown key, got %v", err)
	}

	if err := kv.Set(ctx, "userNickname", []byte("kim")); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := kv.Get(ctx, "userNickname")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(value) != "kim" {
		t.Fatalf("unexpected value %q", value)
	}

	if err := kv.Set(ctx, "userNickname", []byte("lee")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	value, err = kv.Get(ctx, "userNickname")
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if string(value) != "lee" {
		t.Fatalf("expected upsert to overwrite, got %q", value)
	}

	if err := kv.Delete(ctx, "userNickname"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "userNickname"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
	}

	if err := kv.Delete(ctx, "userNickname"); err != nil {
		t.Fatalf("delete of absent key should be a no-op, got %v", err)
	}
}
