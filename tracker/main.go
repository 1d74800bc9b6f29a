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

	ghandlers "github.com/gorilla/handlers"

	"deadline-tracker/tracker/adapters/db"
	"deadline-tracker/tracker/adapters/rest/handlers"
	"deadline-tracker/tracker/adapters/session"
	"deadline-tracker/tracker/config"
	"deadline-tracker/tracker/core"
)

func main() {
	// config
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "tracker server configuration file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	// logger
	log := mustMakeLogger(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	log.Info("starting tracker server")

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// database adapter
	storage, err := db.New(log, cfg.DB.Driver, cfg.DB.Address)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close db connection", "error", err)
		}
	}()

	if err := storage.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate db: %w", err)
	}

	// sessions
	pingers := map[string]core.Pinger{}
	var sessions core.SessionStore
	if cfg.Session.RedisAddress != "" {
		rs, err := session.NewRedisStore(log, cfg.Session.RedisAddress, cfg.Session.RedisDB, cfg.Session.TTL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = rs.Close() }()
		sessions = rs
		pingers["sessions"] = rs
	} else {
		log.Warn("session redis address is empty, keeping sessions in memory")
		sessions = session.NewMemoryStore()
	}

	// service
	svc := core.NewService(storage, sessions, cfg.Session.TTL)

	// http
	mux := http.NewServeMux()
	handlers.Register(mux, log, svc, pingers, cfg.HTTP.Timeout)

	var h http.Handler = mux
	h = ghandlers.CompressHandler(h)
	if len(cfg.HTTP.AllowedOrigins) > 0 {
		h = ghandlers.CORS(
			ghandlers.AllowedOrigins(cfg.HTTP.AllowedOrigins),
			ghandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
			ghandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		)(h)
	}
	h = ghandlers.RecoveryHandler(
		ghandlers.RecoveryLogger(slog.NewLogLogger(log.Handler(), slog.LevelError)),
		ghandlers.PrintRecoveryStack(true),
	)(h)

	server := http.Server{
		Addr:              cfg.HTTP.Address,
		ReadHeaderTimeout: cfg.HTTP.Timeout,
		Handler:           h,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("tracker http server is running", "address", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Debug("shutting down tracker server")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func mustMakeLogger(levelStr string) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
