package mock

import (
	"context"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// MockCache implements signed-url caching for tests.
type MockCache struct {
	SignedURLOut *port.GetSignedURLOutput

	GetErr error
	SetErr error

	GetCalled bool
	SetCalled bool
	SetValue  *port.GetSignedURLOutput
}

var _ port.Cache = (*MockCache)(nil)

func (m *MockCache) GetSignedURL(ctx context.Context, id uuid.UUID) (*port.GetSignedURLOutput, error) {
	m.GetCalled = true
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.SignedURLOut, nil
}

func (m *MockCache) SetSignedURL(ctx context.Context, id uuid.UUID, out *port.GetSignedURLOutput) error {
	m.SetCalled = true
	m.SetValue = out
	return m.SetErr
}
