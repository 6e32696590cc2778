package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/posterlab/posters-ms-go/internal/logger"
	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

type posterGeneratorSrv struct {
	repo     port.ImageRepository
	renderer port.PosterRenderer
	strg     port.Storage
}

// compile-time check: *posterGeneratorSrv must satisfy port.PosterGenerator
var _ port.PosterGenerator = (*posterGeneratorSrv)(nil)

func NewPosterGenerator(repo port.ImageRepository, renderer port.PosterRenderer, strg port.Storage) port.PosterGenerator {
	return &posterGeneratorSrv{repo: repo, renderer: renderer, strg: strg}
}

// GeneratePoster renders the wanted poster for an image currently in
// processing and resolves the record to a terminal state. Any failure along
// the way, including the context deadline expiring mid-render, marks the
// image failed so it never stays stuck in processing.
func (s *posterGeneratorSrv) GeneratePoster(ctx context.Context, id uuid.UUID) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrImageNotFound
		}
		return err
	}
	if img.Status != model.StatusProcessing {
		// a retry after resolution, or a stale task: nothing to do
		logger.Warnf(ctx, "skipping poster generation for image #%s: status is %q", id, img.Status)
		return nil
	}

	var finalErr error
	defer func() {
		if finalErr != nil {
			s.markAsFailed(img, finalErr.Error())
		}
	}()

	src, err := s.strg.GetFile(ctx, StagingBucket, img.ObjectKey)
	if err != nil {
		finalErr = fmt.Errorf("get source %q from staging: %w", img.ObjectKey, err)
		return finalErr
	}
	defer func(src io.ReadSeekCloser) {
		_ = src.Close()
	}(src)

	poster, mimeType, err := s.renderer.Render(ctx, src)
	if err != nil {
		finalErr = fmt.Errorf("render poster for image #%s: %w", id, err)
		return finalErr
	}
	defer func(poster io.ReadCloser) {
		_ = poster.Close()
	}(poster)

	ext, err := MimeTypeToExtension(mimeType)
	if err != nil {
		finalErr = fmt.Errorf("unexpected poster mime-type %q: %w", mimeType, err)
		return finalErr
	}
	posterKey := img.ID.String() + ext

	if err := s.strg.SaveFile(
		ctx,
		PostersBucket,
		posterKey,
		poster,
		-1, // streaming mode
		map[string]string{"Content-Type": mimeType},
	); err != nil {
		finalErr = fmt.Errorf("save poster %q: %w", posterKey, err)
		return finalErr
	}

	// completion is status-guarded: if the stale sweeper force-failed the
	// image while the render was running, the record stays failed and the
	// freshly saved poster is discarded.
	ok, err := s.repo.CompleteProcessing(ctx, id, posterKey, time.Now().UTC())
	if err != nil {
		finalErr = fmt.Errorf("complete image #%s: %w", id, err)
		return finalErr
	}
	if !ok {
		logger.Warnf(ctx, "image #%s was resolved elsewhere, discarding poster %q", id, posterKey)
		if err := s.strg.RemoveFile(context.Background(), PostersBucket, posterKey); err != nil {
			logger.Warnf(ctx, "failed to remove orphaned poster %q: %v", posterKey, err)
		}
		return nil
	}

	// the source bytes are only kept until the image resolves
	if err := s.strg.RemoveFile(context.Background(), StagingBucket, img.ObjectKey); err != nil {
		logger.Warnf(ctx, "failed to remove staging file %q: %v", img.ObjectKey, err)
	}

	return nil
}

// markAsFailed resolves the image to failed with a reason. It runs on a
// background context so a cancelled task context cannot prevent resolution,
// and is status-guarded so an image already resolved elsewhere is left alone.
func (s *posterGeneratorSrv) markAsFailed(img *model.Image, reason string) {
	ok, err := s.repo.FailProcessing(context.Background(), img.ID, reason, time.Now().UTC())
	if err != nil {
		logger.Errorf(context.Background(), "markAsFailed for image #%s failed: %v", img.ID, err)
		return
	}
	if !ok {
		logger.Warnf(context.Background(), "image #%s was resolved elsewhere, not marking failed", img.ID)
	}
}
