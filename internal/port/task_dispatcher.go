package port

import (
	"context"

	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// TaskDispatcher enqueues asynchronous poster-generation work.
type TaskDispatcher interface {
	EnqueueGeneratePoster(ctx context.Context, id uuid.UUID) error
}
