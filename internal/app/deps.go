package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/teamcook/formcheck/internal/catalog"
	"github.com/teamcook/formcheck/internal/config"
	"github.com/teamcook/formcheck/internal/dialog"
	"github.com/teamcook/formcheck/internal/handlers"
	"github.com/teamcook/formcheck/internal/metrics"
	"github.com/teamcook/formcheck/internal/middleware"
	"github.com/teamcook/formcheck/internal/notify"
	"github.com/teamcook/formcheck/internal/persist"
	"github.com/teamcook/formcheck/internal/session"
	"github.com/teamcook/formcheck/internal/storage"
	"github.com/teamcook/formcheck/internal/upload"
)

// buildDependencies wires together concrete implementations used by the HTTP handlers.
func buildDependencies(ctx context.Context, kv storage.KV, cfg config.Config, logger *slog.Logger) (handlers.Dependencies, error) {
	collector := metrics.NewCollector()
	bridge := persist.NewBridge(kv, logger, collector)
	toasts := notify.NewQueue(cfg.ToastTTL, collector)
	dialogs := dialog.New()

	sessions := session.NewStore(ctx, bridge, toasts, collector)
	sessions.Navigate = func(path string) {
		logger.Info("navigation requested", "path", path)
	}

	content := catalog.NewStore(ctx, bridge, collector)

	limiter := middleware.NewKeyRateLimiter(cfg.AuthRateLimit, time.Minute, cfg.AuthRateBurst, 10*time.Minute)

	return handlers.Dependencies{
		Sessions:    sessions,
		Catalog:     content,
		Dialogs:     dialogs,
		Toasts:      toasts,
		Transfers:   upload.NewSimulator(logger),
		Limiter:     limiter,
		Metrics:     collector.Handler(),
		UploadDelay: cfg.UploadDelay,
		EditDelay:   cfg.EditDelay,
	}, nil
}
