package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/teamcook/formcheck/internal/config"
	"github.com/teamcook/formcheck/internal/handlers"
	"github.com/teamcook/formcheck/internal/httpserver"
	"github.com/teamcook/formcheck/internal/middleware"
	"github.com/teamcook/formcheck/internal/persist"
	"github.com/teamcook/formcheck/internal/storage"
)

// Run bootstraps the FormCheck application.
func Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("expected command: serve or reset")
	}

	switch args[0] {
	case "serve":
		return serve(ctx)
	case "reset":
		return runReset(ctx)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLogLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	kv, closeKV, err := openStateStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	deps, err := buildDependencies(ctx, kv, cfg, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps)

	handler := middleware.RequestLogger(logger)(mux)

	srv := httpserver.New(cfg.AppPort, handler)

	logger.Info("starting http server", "port", cfg.AppPort, "state_store", cfg.StateStore)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- srv.Start()
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case sig := <-signalCh:
		logger.Info("received signal, shutting down", "signal", sig.String())
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpserver.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// runReset clears the persisted keys so the next serve starts from the seed
// catalog with no registered account.
func runReset(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	kv, closeKV, err := openStateStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	bridge := persist.NewBridge(kv, logger, nil)
	if err := bridge.Reset(ctx); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}

	logger.Info("state cleared", "state_store", cfg.StateStore)
	return nil
}

// openStateStore selects the key-value backend named by the configuration.
func openStateStore(ctx context.Context, cfg config.Config) (storage.KV, func(), error) {
	switch cfg.StateStore {
	case "memory":
		return storage.NewMemoryKV(), func() {}, nil
	case "file":
		kv, err := storage.NewFileKV(cfg.StateDir)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() {}, nil
	case "redis":
		kv, err := storage.NewRedisKV(ctx, cfg.RedisAddr, cfg.RedisAuth)
		if err != nil {
			return nil, nil, err
		}
		return kv, func() { _ = kv.Close() }, nil
	case "postgres":
		kv, err := storage.NewPostgresKV(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown state store %q", cfg.StateStore)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
