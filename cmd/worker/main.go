package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dreamspell/dreamspell/internal/config"
	"github.com/dreamspell/dreamspell/internal/queue"
)

func main() {
	var mode = flag.String("mode", "worker", "Mode to run: 'worker', 'scheduler'")
	flag.Parse()

	level := slog.LevelInfo
	switch os.Getenv(config.ENV_KEY_LOG_LEVEL) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	switch *mode {
	case "worker":
		runWorker(logger)
	case "scheduler":
		runScheduler(logger)
	default:
		logger.Error("invalid mode, use 'worker' or 'scheduler'", slog.String("mode", *mode))
		os.Exit(1)
	}
}

func runWorker(logger *slog.Logger) {
	worker, err := queue.NewWorker(logger)
	if err != nil {
		logger.Error("failed to create worker", slog.String("err", err.Error()))
		os.Exit(1)
	}

	go func() {
		logger.Info("starting worker")
		if err := worker.Start(); err != nil {
			logger.Error("worker error", slog.String("err", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker")
	worker.Stop()
	logger.Info("worker exited properly")
}

func runScheduler(logger *slog.Logger) {
	scheduler, err := queue.NewScheduler(logger)
	if err != nil {
		logger.Error("failed to create scheduler", slog.String("err", err.Error()))
		os.Exit(1)
	}

	go func() {
		logger.Info("starting scheduler")
		if err := scheduler.Start(); err != nil {
			logger.Error("scheduler error", slog.String("err", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	scheduler.Stop()
	logger.Info("scheduler exited properly")
}
