package handlers

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// HandleSweepAssets runs one orphan-asset sweep. Returning an error lets
// asynq retry the whole sweep, which is safe: deleting an orphan twice is a
// no-op.
func (h *Handlers) HandleSweepAssets(ctx context.Context, task *asynq.Task) error {
	removed, err := h.usecase.SweepOrphanAssets(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "asset sweep failed", slog.String("err", err.Error()))
		return err
	}

	h.logger.InfoContext(ctx, "asset sweep finished", slog.Int("removed", removed))
	return nil
}
