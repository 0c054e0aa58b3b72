package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmtrv/lifebot/internal/bot"
	"github.com/dmtrv/lifebot/internal/engine"
	"github.com/dmtrv/lifebot/internal/metrics"
	"github.com/dmtrv/lifebot/internal/session"
	"github.com/dmtrv/lifebot/internal/storage/sqlite"
	"github.com/dmtrv/lifebot/internal/telegram"
	"github.com/dmtrv/lifebot/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		slog.Error("BOT_TOKEN is required")
		os.Exit(1)
	}

	dbPath := getEnv("DB_PATH", "./data/lifebot.db")
	metricsAddr := getEnv("METRICS_ADDR", ":9090")

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", dbPath)

	sessions := session.NewStore()
	eng := engine.New(sessions, store)
	router := bot.NewRouter(eng, store)

	tg, err := telegram.New(token, router)
	if err != nil {
		slog.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		slog.Info("metrics server starting", "address", metricsAddr)
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("bot starting")
	if err := tg.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("bot stopped", "error", err)
		os.Exit(1)
	}

	// Sessions are in-memory only; anything still open is discarded here.
	slog.Info("shutting down", "open_sessions", sessions.Len())
}
