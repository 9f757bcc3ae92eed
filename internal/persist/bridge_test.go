package persist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/teamcook/formcheck/internal/models"
	"github.com/teamcook/formcheck/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type failingKV struct {
	err error
}

func (f failingKV) Get(context.Context, string) ([]byte, error)  { return nil, f.err }
func (f failingKV) Set(context.Context, string, []byte) error    { return f.err }
func (f failingKV) Delete(context.Context, string) error         { return f.err }

type missedCounter struct {
	count int
}

func (m *missedCounter) RecordMissedWrite() { m.count++ }

func TestBridgeCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	bridge := NewBridge(kv, discardLogger(), nil)

	if _, ok := bridge.LoadCatalog(ctx); ok {
		t.Fatal("expected ok=false before the first write")
	}

	videos := []models.Video{
		{ID: "1", Title: "Squat depth check", Author: "park", Category: models.CategorySquat, CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "Deadlift lockout", Author: "park", Category: models.CategoryDeadlift, CreatedAt: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
	}
	bridge.SaveCatalog(ctx, videos)

	loaded, ok := bridge.LoadCatalog(ctx)
	if !ok {
		t.Fatal("expected catalog to load after save")
	}
	if len(loaded) != 2 || loaded[0].ID != "1" || loaded[1].Title != "Deadlift lockout" {
		t.Fatalf("unexpected catalog %+v", loaded)
	}
}

func TestBridgeEmptyCatalogIsNotMissing(t *testing.T) {
	ctx := context.Background()
	bridge := NewBridge(storage.NewMemoryKV(), discardLogger(), nil)

	bridge.SaveCatalog(ctx, []models.Video{})

	loaded, ok := bridge.LoadCatalog(ctx)
	if !ok {
		t.Fatal("an intentionally empty catalog must load as present")
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty catalog, got %+v", loaded)
	}
}

func TestBridgeCorruptCatalogReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	if err := kv.Set(ctx, KeyCatalog, []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt payload: %v", err)
	}

	bridge := NewBridge(kv, discardLogger(), nil)
	if _, ok := bridge.LoadCatalog(ctx); ok {
		t.Fatal("corrupt payload must read as absent so the caller reseeds")
	}
}

func TestBridgeSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	bridge := NewBridge(kv, discardLogger(), nil)

	if _, ok := bridge.LoadSession(ctx); ok {
		t.Fatal("expected no session before the first write")
	}

	bridge.SaveSession(ctx, models.Session{Nickname: "kim", Email: "kim@example.com", Authenticated: true})

	session, ok := bridge.LoadSession(ctx)
	if !ok {
		t.Fatal("expected session to load after save")
	}
	if session.Nickname != "kim" || session.Email != "kim@example.com" || !session.Authenticated {
		t.Fatalf("unexpected session %+v", session)
	}

	bridge.SaveSession(ctx, models.Session{})
	if _, ok := bridge.LoadSession(ctx); ok {
		t.Fatal("signed-out save must remove the session keys")
	}
	if kv.Has(KeyUserNickname) || kv.Has(KeyUserEmail) {
		t.Fatal("session keys still present after sign-out")
	}
}

func TestBridgeCredentialRoundTrip(t *testing.T) {
	ctx := context.Background()
	bridge := NewBridge(storage.NewMemoryKV(), discardLogger(), nil)

	if _, ok := bridge.LoadCredential(ctx); ok {
		t.Fatal("expected no credential before the first write")
	}

	bridge.SaveCredential(ctx, models.Credential{Nickname: "kim", Email: "kim@example.com", PasswordHash: "hash"})

	cred, ok := bridge.LoadCredential(ctx)
	if !ok {
		t.Fatal("expected credential to load after save")
	}
	if cred.Nickname != "kim" || cred.Email != "kim@example.com" || cred.PasswordHash != "hash" {
		t.Fatalf("unexpected credential %+v", cred)
	}
}

func TestBridgeWriteFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	missed := &missedCounter{}
	bridge := NewBridge(failingKV{err: errors.New("disk full")}, discardLogger(), missed)

	bridge.SaveCatalog(ctx, []models.Video{{ID: "1"}})
	bridge.SaveSession(ctx, models.Session{Nickname: "kim", Authenticated: true})
	bridge.SaveCredential(ctx, models.Credential{Nickname: "kim"})

	if missed.count == 0 {
		t.Fatal("expected dropped writes to be recorded")
	}
}

func TestBridgeResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	bridge := NewBridge(kv, discardLogger(), nil)

	bridge.SaveCatalog(ctx, []models.Video{{ID: "1"}})
	bridge.SaveCredential(ctx, models.Credential{Nickname: "kim", Email: "kim@example.com", PasswordHash: "hash"})
	bridge.SaveSession(ctx, models.Session{Nickname: "kim", Email: "kim@example.com", Authenticated: true})

	if err := bridge.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for _, key := range []string{KeyCatalog, KeyRegNickname, KeyRegEmail, KeyRegPassword, KeyUserNickname, KeyUserEmail} {
		if kv.Has(key) {
			t.Fatalf("key %q survived reset", key)
		}
	}
}

func TestBridgeResetReportsFailure(t *testing.T) {
	bridge := NewBridge(failingKV{err: errors.New("unavailable")}, discardLogger(), nil)
	if err := bridge.Reset(context.Background()); err == nil {
		t.Fatal("expected reset to surface the backing store error")
	}
}
