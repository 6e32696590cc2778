package port

import (
	"context"

	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// Cache stores signed-url responses until the underlying link expires.
type Cache interface {
	GetSignedURL(ctx context.Context, id uuid.UUID) (*GetSignedURLOutput, error)
	SetSignedURL(ctx context.Context, id uuid.UUID, out *GetSignedURLOutput) error
}
