package queue

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"

	"github.com/dreamspell/dreamspell/internal/config"
	"github.com/dreamspell/dreamspell/internal/database"
	"github.com/dreamspell/dreamspell/internal/filestorage"
	"github.com/dreamspell/dreamspell/internal/queue/handlers"
	"github.com/dreamspell/dreamspell/internal/usecase"
)

// Worker processes queued tasks against the same database and asset store
// the API uses.
type Worker struct {
	asynqServer *asynq.Server
	mux         *asynq.ServeMux
	repo        interface{ Close() error }
}

func NewWorker(logger *slog.Logger) (*Worker, error) {
	repo, err := database.New(logger)
	if err != nil {
		return nil, fmt.Errorf("creating repository: %w", err)
	}

	fsp, err := filestorage.NewFromEnv(context.Background())
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("creating file storage: %w", err)
	}

	// workers never mint sessions or enqueue, so no secret and no client
	uc := usecase.New(repo, fsp, nil, nil, logger)

	concurrency := 10
	if n, err := strconv.Atoi(os.Getenv(config.ENV_KEY_WORKER_CONCURRENCY)); err == nil && n > 0 {
		concurrency = n
	}

	asynqServer := asynq.NewServer(
		redisClientOpt(),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
		},
	)

	h := handlers.NewHandlers(uc, logger)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskTypeSweepAssets, h.HandleSweepAssets)

	logger.Info("worker registered handlers", slog.String("task", TaskTypeSweepAssets))

	return &Worker{
		asynqServer: asynqServer,
		mux:         mux,
		repo:        repo,
	}, nil
}

func (w *Worker) Start() error {
	return w.asynqServer.Start(w.mux)
}

func (w *Worker) Stop() {
	w.asynqServer.Shutdown()
	if err := w.repo.Close(); err != nil {
		slog.Error("closing repository", "err", err)
	}
}

// Scheduler enqueues the periodic sweep. Cronspec comes from SWEEP_CRONSPEC,
// default nightly.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(logger *slog.Logger) (*Scheduler, error) {
	cronspec := os.Getenv(config.ENV_KEY_SWEEP_CRONSPEC)
	if cronspec == "" {
		cronspec = "@every 24h"
	}

	scheduler := asynq.NewScheduler(redisClientOpt(), &asynq.SchedulerOpts{})

	entryID, err := scheduler.Register(cronspec, asynq.NewTask(TaskTypeSweepAssets, nil))
	if err != nil {
		return nil, fmt.Errorf("registering sweep schedule: %w", err)
	}
	logger.Info("scheduled sweep",
		slog.String("entry", entryID),
		slog.String("cronspec", cronspec))

	return &Scheduler{scheduler: scheduler}, nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Stop() {
	s.scheduler.Shutdown()
}
