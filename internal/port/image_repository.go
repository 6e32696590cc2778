package port

import (
	"context"
	"time"

	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// ListImagesFilter restricts and paginates the admin listing.
// Limit and Offset are assumed validated by the caller.
type ListImagesFilter struct {
	Status *model.Status
	Limit  int
	Offset int
}

// ImageRepository defines persistence operations for images.
type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error)
	List(ctx context.Context, filter ListImagesFilter) ([]model.Image, error)
	// TransitionStatus atomically moves the image from one status to another.
	// It reports false when the image is missing or not in the expected
	// status, which makes it the single arbiter for racing triggers. A move
	// into processing also records when processing started.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.Status) (bool, error)
	// CompleteProcessing resolves an image still in processing to completed,
	// recording the poster key and the processed-at timestamp in the same
	// statement. It reports false when the image was resolved elsewhere in
	// the meantime, e.g. force-failed as stale.
	CompleteProcessing(ctx context.Context, id uuid.UUID, posterKey string, processedAt time.Time) (bool, error)
	// FailProcessing force-fails an image still in processing, recording the
	// reason and the processed-at timestamp in the same statement.
	FailProcessing(ctx context.Context, id uuid.UUID, reason string, processedAt time.Time) (bool, error)
	// ListProcessingBefore returns the ids of images whose processing started
	// before the given instant and has not resolved since.
	ListProcessingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error)
}
