package image

import (
	"context"
	"time"

	"github.com/posterlab/posters-ms-go/internal/logger"
	"github.com/posterlab/posters-ms-go/internal/port"
)

const staleFailureReason = "processing timed out"

type staleSweeperSrv struct {
	repo port.ImageRepository
}

// compile-time check: *staleSweeperSrv must satisfy port.StaleSweeper
var _ port.StaleSweeper = (*staleSweeperSrv)(nil)

func NewStaleSweeper(repo port.ImageRepository) port.StaleSweeper {
	return &staleSweeperSrv{repo: repo}
}

// SweepStale resolves images that have been sitting in processing longer than
// olderThan, e.g. because a worker died mid-task. Each one is force-failed
// with a compare-and-swap, so a worker finishing concurrently still wins.
func (s *staleSweeperSrv) SweepStale(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	ids, err := s.repo.ListProcessingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, id := range ids {
		ok, err := s.repo.FailProcessing(ctx, id, staleFailureReason, time.Now().UTC())
		if err != nil {
			logger.Errorf(ctx, "force-fail of stale image #%s failed: %v", id, err)
			continue
		}
		if ok {
			logger.Warnf(ctx, "image #%s stuck in processing since before %s, marked failed", id, cutoff.Format(time.RFC3339))
			swept++
		}
	}
	return swept, nil
}
