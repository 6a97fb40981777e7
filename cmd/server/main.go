package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/canteen/internal/api"
	"github.com/mmynk/canteen/internal/config"
	"github.com/mmynk/canteen/internal/metrics"
	"github.com/mmynk/canteen/internal/service"
	"github.com/mmynk/canteen/internal/storage"
	"github.com/mmynk/canteen/internal/storage/file"
	"github.com/mmynk/canteen/internal/storage/memory"
	"github.com/mmynk/canteen/internal/storage/postgres"
	"github.com/mmynk/canteen/internal/storage/redis"
	"github.com/mmynk/canteen/internal/storage/sqlite"
	"github.com/mmynk/canteen/internal/views"
	"github.com/mmynk/canteen/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default $CONFIG_FILE)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Setup structured logging
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", cfg.Storage.Backend)

	cols := storage.NewCollections(store)
	if cfg.SeedMenu {
		if err := storage.SeedMenu(ctx, cols); err != nil {
			return fmt.Errorf("failed to seed menu: %w", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	renderer, err := views.NewRenderer()
	if err != nil {
		return err
	}

	menuSvc := service.NewMenuService(cols, m)
	orderSvc := service.NewOrderService(cols, service.WithMetrics(m))
	handler := api.NewHandler(menuSvc, orderSvc, renderer, cfg.PublicURL)

	// Wrap with h2c so HTTP/2 clients work without TLS
	h2cHandler := h2c.NewHandler(api.NewRouter(handler, m, reg), &http2.Server{})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// openStore creates the persistence backend selected by cfg.
func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Backend {
	case config.StorageFile:
		return file.New(cfg.DataDir)
	case config.StorageSQLite:
		return sqlite.New(cfg.DBPath)
	case config.StoragePostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	case config.StorageRedis:
		return redis.New(ctx, cfg.RedisAddr)
	case config.StorageMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
