package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/teamcook/formcheck/internal/config"
	"github.com/teamcook/formcheck/internal/storage"
)

func TestBuildDependencies(t *testing.T) {
	cfg := config.Config{
		ToastTTL:      3 * time.Second,
		UploadDelay:   2 * time.Second,
		EditDelay:     1500 * time.Millisecond,
		AuthRateLimit: 10,
		AuthRateBurst: 5,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps, err := buildDependencies(context.Background(), storage.NewMemoryKV(), cfg, logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if deps.Sessions == nil {
		t.Fatal("expected session store to be configured")
	}
	if deps.Catalog == nil {
		t.Fatal("expected catalog to be configured")
	}
	if deps.Dialogs == nil {
		t.Fatal("expected dialog orchestrator to be configured")
	}
	if deps.Toasts == nil {
		t.Fatal("expected toast queue to be configured")
	}
	if deps.Transfers == nil {
		t.Fatal("expected transfer simulator to be configured")
	}
	if deps.Limiter == nil {
		t.Fatal("expected rate limiter to be configured")
	}
	if deps.Metrics == nil {
		t.Fatal("expected metrics handler to be configured")
	}
	if deps.UploadDelay != cfg.UploadDelay || deps.EditDelay != cfg.EditDelay {
		t.Fatal("expected transfer delays to come from config")
	}
}

func TestOpenStateStore(t *testing.T) {
	ctx := context.Background()

	cfg := config.Config{StateStore: "memory"}
	kv, closeKV, err := openStateStore(ctx, cfg)
	if err != nil {
		t.Fatalf("memory store: %v", err)
	}
	closeKV()
	if kv == nil {
		t.Fatal("expected a memory store")
	}

	cfg = config.Config{StateStore: "file", StateDir: t.TempDir()}
	kv, closeKV, err = openStateStore(ctx, cfg)
	if err != nil {
		t.Fatalf("file store: %v", err)
	}
	closeKV()
	if kv == nil {
		t.Fatal("expected a file store")
	}

	if _, _, err := openStateStore(ctx, config.Config{StateStore: "carrier-pigeon"}); err == nil {
		t.Fatal("expected an error for an unknown backend")
	}
}
