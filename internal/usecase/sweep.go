package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Files younger than this are never swept: an upload becomes durable before
// its row commits, and a file replaced mid-sweep must not be collected while
// the replacing update is still in flight.
const sweepGracePeriod = time.Hour

// SweepOrphanAssets deletes stored files no live record references and
// returns how many were removed. Best-effort file cleanup during update and
// delete can leave orphans behind (a failed delete, a crash between the two
// writes, a lost race between concurrent updates); this is the compensating
// pass. Individual delete failures are logged and skipped.
func (u Usecase) SweepOrphanAssets(ctx context.Context) (int, error) {
	stored, err := u.fileStorageProvider.List(ctx, sweepGracePeriod)
	if err != nil {
		return 0, err
	}

	var (
		mu         sync.Mutex
		referenced = make(map[string]struct{})
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, k := range Kinds() {
		g.Go(func() error {
			names, err := u.repo.ListReferencedImages(gctx, k)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			for _, n := range names {
				referenced[n] = struct{}{}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var removed int
	for _, name := range stored {
		if _, ok := referenced[name]; ok {
			continue
		}
		if err := u.fileStorageProvider.Delete(ctx, name); err != nil {
			u.logger.WarnContext(ctx, "sweep could not delete orphan",
				slog.String("file", name),
				slog.String("err", err.Error()))
			continue
		}
		u.logger.InfoContext(ctx, "swept orphan asset", slog.String("file", name))
		removed++
	}

	return removed, nil
}

// EnqueueAssetSweep schedules a sweep on the worker queue. Without a queue
// client (local development, tests) the sweep runs inline instead.
func (u Usecase) EnqueueAssetSweep(ctx context.Context) error {
	if u.queueClient == nil {
		_, err := u.SweepOrphanAssets(ctx)
		return err
	}
	return u.queueClient.EnqueueSweep(ctx)
}
