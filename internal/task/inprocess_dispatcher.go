package task

import (
	"context"
	"sync"
	"time"

	"github.com/posterlab/posters-ms-go/internal/logger"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// InProcessDispatcher runs poster generation in a goroutine of the API
// process itself. It is the fallback when Redis is not configured, so a
// triggered image still resolves to a terminal state within a bounded time.
type InProcessDispatcher struct {
	svc     port.PosterGenerator
	timeout time.Duration
	wg      sync.WaitGroup
}

// compile-time check: *InProcessDispatcher must satisfy port.TaskDispatcher
var _ port.TaskDispatcher = (*InProcessDispatcher)(nil)

func NewInProcessDispatcher(svc port.PosterGenerator, timeout time.Duration) *InProcessDispatcher {
	return &InProcessDispatcher{svc: svc, timeout: timeout}
}

// EnqueueGeneratePoster returns immediately; the generation runs out-of-band
// on a fresh context so the HTTP request finishing does not cancel it.
func (d *InProcessDispatcher) EnqueueGeneratePoster(ctx context.Context, id uuid.UUID) error {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		taskCtx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.svc.GeneratePoster(taskCtx, id); err != nil {
			logger.Errorf(taskCtx, "in-process poster generation for image #%s failed: %v", id, err)
		}
	}()
	return nil
}

// Wait blocks until all in-flight generations are done. Called on shutdown.
func (d *InProcessDispatcher) Wait() {
	d.wg.Wait()
}
