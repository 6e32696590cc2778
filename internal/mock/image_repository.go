package mock

import (
	"context"
	"time"

	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// MockImageRepo implements repository operations for tests.
type MockImageRepo struct {
	ImageRecord *model.Image
	ListOut     []model.Image
	StaleIDs    []uuid.UUID

	GetErr        error
	CreateErr     error
	CompleteErr   error
	ListErr       error
	TransitionErr error
	FailErr       error
	StaleErr      error

	// CAS outcomes
	TransitionOK bool
	CompleteOK   bool
	FailOK       bool

	// call recording
	CreateCalled     bool
	CompleteCalled   bool
	GetCalled        bool
	ListCalled       bool
	TransitionCalled bool
	FailCalled       bool

	CreatedImage       *model.Image
	ListFilter         port.ListImagesFilter
	TransitionFrom     model.Status
	TransitionTo       model.Status
	CompletedID        uuid.UUID
	CompletedPosterKey string
	FailedID           uuid.UUID
	FailReason         string
}

var _ port.ImageRepository = (*MockImageRepo)(nil)

func (m *MockImageRepo) Create(ctx context.Context, img *model.Image) error {
	m.CreateCalled = true
	m.CreatedImage = img
	return m.CreateErr
}

func (m *MockImageRepo) CompleteProcessing(ctx context.Context, id uuid.UUID, posterKey string, processedAt time.Time) (bool, error) {
	m.CompleteCalled = true
	m.CompletedID = id
	m.CompletedPosterKey = posterKey
	if m.CompleteErr != nil {
		return false, m.CompleteErr
	}
	return m.CompleteOK, nil
}

func (m *MockImageRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.ImageRecord, nil
}

func (m *MockImageRepo) List(ctx context.Context, filter port.ListImagesFilter) ([]model.Image, error) {
	m.ListCalled = true
	m.ListFilter = filter
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.ListOut, nil
}

func (m *MockImageRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.Status) (bool, error) {
	m.TransitionCalled = true
	m.TransitionFrom = from
	m.TransitionTo = to
	if m.TransitionErr != nil {
		return false, m.TransitionErr
	}
	return m.TransitionOK, nil
}

func (m *MockImageRepo) FailProcessing(ctx context.Context, id uuid.UUID, reason string, processedAt time.Time) (bool, error) {
	m.FailCalled = true
	m.FailedID = id
	m.FailReason = reason
	if m.FailErr != nil {
		return false, m.FailErr
	}
	return m.FailOK, nil
}

func (m *MockImageRepo) ListProcessingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	if m.StaleErr != nil {
		return nil, m.StaleErr
	}
	return m.StaleIDs, nil
}
