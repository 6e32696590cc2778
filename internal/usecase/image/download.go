package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

type downloaderSrv struct {
	repo port.ImageRepository
	strg port.Storage
}

// compile-time check: *downloaderSrv must satisfy port.ImageDownloader
var _ port.ImageDownloader = (*downloaderSrv)(nil)

func NewImageDownloader(repo port.ImageRepository, strg port.Storage) port.ImageDownloader {
	return &downloaderSrv{repo: repo, strg: strg}
}

func (s *downloaderSrv) DownloadImage(ctx context.Context, id uuid.UUID) (*port.DownloadImageOutput, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	if img.Status != model.StatusCompleted || img.PosterKey == nil {
		return nil, ErrImageNotProcessed
	}

	info, err := s.strg.StatFile(ctx, PostersBucket, *img.PosterKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			return nil, ErrImageNotProcessed
		}
		return nil, fmt.Errorf("stats for poster %q failed: %w", *img.PosterKey, err)
	}

	reader, err := s.strg.GetFile(ctx, PostersBucket, *img.PosterKey)
	if err != nil {
		return nil, fmt.Errorf("get poster %q: %w", *img.PosterKey, err)
	}

	return &port.DownloadImageOutput{
		Reader:      reader,
		ContentType: info.ContentType,
		SizeBytes:   info.SizeBytes,
	}, nil
}
