package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/curarr/internal/api/v1"
	"github.com/vmunix/curarr/internal/config"
	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/importlist"
	"github.com/vmunix/curarr/internal/library"
	"github.com/vmunix/curarr/internal/migrations"
	"github.com/vmunix/curarr/internal/notify"
	"github.com/vmunix/curarr/internal/server"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

func runServer(configPath string) error {
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		configPath = discovered
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	// Ensure database directory exists
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Database.Path+"?_foreign_keys=on")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// === Stores and event plumbing ===
	libraryStore := library.NewStore(db)
	listStore := importlist.NewStore(db)
	eventLog := events.NewLog(db)
	bus := events.NewBus(eventLog, logger.With("component", "bus"))
	defer func() { _ = bus.Close() }()

	// === Services ===
	trigger := importlist.NewQueueTrigger(cfg.Sync.SearchQueueSize, libraryStore, bus,
		logger.With("component", "search"))

	syncer := importlist.NewSyncer(listStore, libraryStore, bus, trigger,
		cfg.Sync.FetchTimeout(), logger.With("component", "sync"))
	syncer.RegisterProvider("http", importlist.NewHTTPProvider(cfg.Sync.FetchTimeout(),
		logger.With("component", "provider")))

	scheduler := importlist.NewScheduler(listStore, syncer, cfg.Sync.ReconcileInterval(),
		logger.With("component", "scheduler"))

	poller := notify.NewPoller(eventLog, notify.NewStateStore(db), nil,
		cfg.Notifications.PollInterval(), logger.With("component", "notify"))

	// === Background components ===
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := server.NewRunner(scheduler, poller, trigger, bus, eventLog, logger)
	runnerDone := make(chan error, 1)
	go func() {
		runnerDone <- runner.Run(ctx)
	}()

	// === HTTP Setup ===
	mux := http.NewServeMux()

	apiV1 := v1.New(db, v1.Config{
		APIKey:  cfg.Server.APIKey,
		Version: version,
	})
	apiV1.SetSyncer(syncer)
	apiV1.SetNotifier(poller)
	apiV1.RegisterRoutes(mux)

	handler := v1.LogRequests(logger.With("component", "http"),
		v1.APIKeyAuth(cfg.Server.APIKey, mux))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting",
		"addr", addr,
		"database", cfg.Database.Path,
		"auth", cfg.Server.APIKey != "",
		"log_level", cfg.Server.LogLevel,
	)

	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig.String())

	// Stop background components
	cancel()
	select {
	case <-runnerDone:
	case <-time.After(10 * time.Second):
		logger.Warn("background components did not stop in time")
	}

	// Graceful HTTP shutdown with 30s timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
