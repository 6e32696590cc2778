package mock

import (
	"context"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// MockDispatcher implements task dispatching for tests.
type MockDispatcher struct {
	Err error

	Called bool
	ID     uuid.UUID
}

var _ port.TaskDispatcher = (*MockDispatcher)(nil)

func (m *MockDispatcher) EnqueueGeneratePoster(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.ID = id
	return m.Err
}
