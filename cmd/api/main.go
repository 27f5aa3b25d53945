package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreamspell/dreamspell/internal/config"
	"github.com/dreamspell/dreamspell/internal/database"
	"github.com/dreamspell/dreamspell/internal/filestorage"
	"github.com/dreamspell/dreamspell/internal/queue"
	"github.com/dreamspell/dreamspell/internal/server"
	"github.com/dreamspell/dreamspell/internal/usecase"
)

func main() {
	logger := newLogger()
	slog.SetDefault(logger)

	repo, err := database.New(logger)
	if err != nil {
		logger.Error("failed to open database", slog.String("err", err.Error()))
		os.Exit(1)
	}

	fsp, err := filestorage.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("failed to set up file storage", slog.String("err", err.Error()))
		os.Exit(1)
	}

	// without redis the sweep endpoint runs inline
	var qc usecase.QueueClient
	if os.Getenv(config.ENV_KEY_REDIS_HOST) != "" {
		client := queue.NewClient(logger)
		defer client.Close()
		qc = client
	}

	secret := []byte(os.Getenv(config.ENV_KEY_SESSION_SECRET))
	if len(secret) == 0 {
		logger.Error("SESSION_SECRET is required")
		os.Exit(1)
	}

	uc := usecase.New(repo, fsp, qc, secret, logger)
	app := server.NewServer(uc, logger)

	go func() {
		logger.Info("API server starting", slog.String("addr", app.Addr))
		if err := app.ListenAndServe(); err != nil {
			logger.Error("server error", slog.String("err", err.Error()))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down API server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", slog.String("err", err.Error()))
		os.Exit(1)
	}
	if err := uc.Close(); err != nil {
		logger.Error("close error", slog.String("err", err.Error()))
	}

	logger.Info("API server exited properly")
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch os.Getenv(config.ENV_KEY_LOG_LEVEL) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}
