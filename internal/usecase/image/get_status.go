package image

import (
	"context"
	"database/sql"
	"errors"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

type statusGetterSrv struct {
	repo port.ImageRepository
}

// compile-time check: *statusGetterSrv must satisfy port.StatusGetter
var _ port.StatusGetter = (*statusGetterSrv)(nil)

func NewStatusGetter(repo port.ImageRepository) port.StatusGetter {
	return &statusGetterSrv{repo: repo}
}

func (s *statusGetterSrv) GetImageStatus(ctx context.Context, id uuid.UUID) (port.GetImageStatusOutput, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return port.GetImageStatusOutput{}, ErrImageNotFound
		}
		return port.GetImageStatusOutput{}, err
	}

	out := port.GetImageStatusOutput{
		ID:        img.ID,
		Status:    img.Status,
		CreatedAt: img.CreatedAt.UTC(),
	}
	if img.ProcessedAt != nil {
		t := img.ProcessedAt.UTC()
		out.ProcessedAt = &t
	}
	return out, nil
}
