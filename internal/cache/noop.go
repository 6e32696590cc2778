package cache

import (
	"context"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// Noop is used when Redis is not configured; every lookup is a miss.
type Noop struct{}

var _ port.Cache = (*Noop)(nil)

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) GetSignedURL(ctx context.Context, id uuid.UUID) (*port.GetSignedURLOutput, error) {
	return nil, nil
}

func (n *Noop) SetSignedURL(ctx context.Context, id uuid.UUID, out *port.GetSignedURLOutput) error {
	return nil
}
