package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/posterlab/posters-ms-go/internal/logger"
	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// urlRenewalMargin keeps a cached link out of circulation once it gets close
// to expiring, so a client always has time to actually use it.
const urlRenewalMargin = 30 * time.Second

type signedURLGetterSrv struct {
	repo  port.ImageRepository
	strg  port.Storage
	cache port.Cache
	ttl   time.Duration
}

// compile-time check: *signedURLGetterSrv must satisfy port.SignedURLGetter
var _ port.SignedURLGetter = (*signedURLGetterSrv)(nil)

func NewSignedURLGetter(repo port.ImageRepository, strg port.Storage, cache port.Cache, ttl time.Duration) port.SignedURLGetter {
	return &signedURLGetterSrv{repo: repo, strg: strg, cache: cache, ttl: ttl}
}

func (s *signedURLGetterSrv) GetSignedURL(ctx context.Context, id uuid.UUID) (*port.GetSignedURLOutput, error) {
	cached, err := s.cache.GetSignedURL(ctx, id)
	if err != nil {
		logger.Warnf(ctx, "signed-url cache lookup for image #%s failed: %v", id, err)
	}
	if cached != nil && time.Until(cached.ValidUntil) > urlRenewalMargin {
		return cached, nil
	}

	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	if img.Status != model.StatusCompleted || img.PosterKey == nil {
		return nil, ErrImageNotCompleted
	}

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, PostersBucket, *img.PosterKey, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("presign poster %q: %w", *img.PosterKey, err)
	}

	out := &port.GetSignedURLOutput{
		URL:        url,
		ValidUntil: time.Now().UTC().Add(s.ttl),
	}
	if err := s.cache.SetSignedURL(ctx, id, out); err != nil {
		logger.Warnf(ctx, "signed-url cache write for image #%s failed: %v", id, err)
	}
	return out, nil
}
