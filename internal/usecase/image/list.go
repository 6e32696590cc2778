package image

import (
	"context"

	"github.com/posterlab/posters-ms-go/internal/port"
)

type listerSrv struct {
	repo port.ImageRepository
}

// compile-time check: *listerSrv must satisfy port.ImageLister
var _ port.ImageLister = (*listerSrv)(nil)

func NewImageLister(repo port.ImageRepository) port.ImageLister {
	return &listerSrv{repo: repo}
}

// ListImages returns images in creation order. The result is never nil so an
// empty page serialises as a JSON array.
func (s *listerSrv) ListImages(ctx context.Context, filter port.ListImagesFilter) ([]port.ListImagesItem, error) {
	imgs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]port.ListImagesItem, 0, len(imgs))
	for _, img := range imgs {
		items = append(items, port.ListImagesItem{
			ID:        img.ID,
			Filename:  img.OriginalFilename,
			Status:    img.Status,
			CreatedAt: img.CreatedAt.UTC(),
		})
	}
	return items, nil
}
