package port

import (
	"context"
	"io"
	"time"

	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

type UUIDGen func() uuid.UUID

// ImageUploader validates an uploaded file and creates the pending record.
type ImageUploader interface {
	UploadImage(ctx context.Context, in UploadImageInput) (UploadImageOutput, error)
}
type UploadImageInput struct {
	Filename string
	Data     []byte
}
type UploadImageOutput struct {
	ID     uuid.UUID    `json:"id"`
	Status model.Status `json:"status"`
}

// StatusGetter reports the current lifecycle state of an image.
type StatusGetter interface {
	GetImageStatus(ctx context.Context, id uuid.UUID) (GetImageStatusOutput, error)
}
type GetImageStatusOutput struct {
	ID          uuid.UUID    `json:"id"`
	Status      model.Status `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	ProcessedAt *time.Time   `json:"processedAt"`
}

// ProcessTrigger moves a pending image into processing and enqueues the work.
type ProcessTrigger interface {
	TriggerProcess(ctx context.Context, id uuid.UUID) (TriggerProcessOutput, error)
}
type TriggerProcessOutput struct {
	ID     uuid.UUID    `json:"id"`
	Status model.Status `json:"status"`
}

// PosterGenerator performs the poster transformation for one image.
// It is only ever invoked by the background worker.
type PosterGenerator interface {
	GeneratePoster(ctx context.Context, id uuid.UUID) error
}

// ImageDownloader streams the finished poster artifact.
type ImageDownloader interface {
	DownloadImage(ctx context.Context, id uuid.UUID) (*DownloadImageOutput, error)
}
type DownloadImageOutput struct {
	Reader      io.ReadCloser
	ContentType string
	SizeBytes   int64
}

// ImageLister enumerates images for the admin view.
type ImageLister interface {
	ListImages(ctx context.Context, filter ListImagesFilter) ([]ListImagesItem, error)
}
type ListImagesItem struct {
	ID        uuid.UUID    `json:"id"`
	Filename  string       `json:"filename"`
	Status    model.Status `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// SignedURLGetter returns a time-limited public link to a completed poster.
type SignedURLGetter interface {
	GetSignedURL(ctx context.Context, id uuid.UUID) (*GetSignedURLOutput, error)
}
type GetSignedURLOutput struct {
	URL        string    `json:"url"`
	ValidUntil time.Time `json:"valid_until"`
}

// StaleSweeper force-fails images stuck in processing beyond a cutoff.
type StaleSweeper interface {
	SweepStale(ctx context.Context, olderThan time.Duration) (int, error)
}
