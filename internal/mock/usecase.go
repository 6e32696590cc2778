package mock

import (
	"context"
	"time"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// ImageUploader implements port.ImageUploader for tests.
type ImageUploader struct {
	Out port.UploadImageOutput
	Err error

	Called bool
	In     port.UploadImageInput
}

var _ port.ImageUploader = (*ImageUploader)(nil)

func (m *ImageUploader) UploadImage(ctx context.Context, in port.UploadImageInput) (port.UploadImageOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// StatusGetter implements port.StatusGetter for tests.
type StatusGetter struct {
	Out port.GetImageStatusOutput
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.StatusGetter = (*StatusGetter)(nil)

func (m *StatusGetter) GetImageStatus(ctx context.Context, id uuid.UUID) (port.GetImageStatusOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// ProcessTrigger implements port.ProcessTrigger for tests.
type ProcessTrigger struct {
	Out port.TriggerProcessOutput
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.ProcessTrigger = (*ProcessTrigger)(nil)

func (m *ProcessTrigger) TriggerProcess(ctx context.Context, id uuid.UUID) (port.TriggerProcessOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// PosterGenerator implements port.PosterGenerator for tests.
type PosterGenerator struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.PosterGenerator = (*PosterGenerator)(nil)

func (m *PosterGenerator) GeneratePoster(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}

// ImageDownloader implements port.ImageDownloader for tests.
type ImageDownloader struct {
	Out *port.DownloadImageOutput
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.ImageDownloader = (*ImageDownloader)(nil)

func (m *ImageDownloader) DownloadImage(ctx context.Context, id uuid.UUID) (*port.DownloadImageOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// ImageLister implements port.ImageLister for tests.
type ImageLister struct {
	Out []port.ListImagesItem
	Err error

	Called bool
	Filter port.ListImagesFilter
}

var _ port.ImageLister = (*ImageLister)(nil)

func (m *ImageLister) ListImages(ctx context.Context, filter port.ListImagesFilter) ([]port.ListImagesItem, error) {
	m.Called = true
	m.Filter = filter
	return m.Out, m.Err
}

// SignedURLGetter implements port.SignedURLGetter for tests.
type SignedURLGetter struct {
	Out *port.GetSignedURLOutput
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.SignedURLGetter = (*SignedURLGetter)(nil)

func (m *SignedURLGetter) GetSignedURL(ctx context.Context, id uuid.UUID) (*port.GetSignedURLOutput, error) {
	m.Called = true
	m.ID = id
	return m.Out, m.Err
}

// StaleSweeper implements port.StaleSweeper for tests.
type StaleSweeper struct {
	Swept int
	Err   error

	Called    bool
	OlderThan time.Duration
}

var _ port.StaleSweeper = (*StaleSweeper)(nil)

func (m *StaleSweeper) SweepStale(ctx context.Context, olderThan time.Duration) (int, error) {
	m.Called = true
	m.OlderThan = olderThan
	return m.Swept, m.Err
}
