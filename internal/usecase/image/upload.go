package image

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/posterlab/posters-ms-go/internal/logger"
	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
)

type uploaderSrv struct {
	repo  port.ImageRepository
	strg  port.Storage
	genID port.UUIDGen
}

// compile-time check: *uploaderSrv must satisfy port.ImageUploader
var _ port.ImageUploader = (*uploaderSrv)(nil)

func NewImageUploader(repo port.ImageRepository, strg port.Storage, genID port.UUIDGen) port.ImageUploader {
	return &uploaderSrv{repo: repo, strg: strg, genID: genID}
}

// UploadImage validates the payload, persists the source bytes into the
// staging bucket and creates the pending database record. The uploaded bytes
// are sniffed rather than trusted: only real JPEG, PNG and WebP content is
// accepted regardless of the declared content type.
func (s *uploaderSrv) UploadImage(ctx context.Context, in port.UploadImageInput) (port.UploadImageOutput, error) {
	if len(in.Data) == 0 {
		return port.UploadImageOutput{}, ErrNoFile
	}
	if int64(len(in.Data)) > MaxFileSize {
		return port.UploadImageOutput{}, ErrFileTooLarge
	}

	mtype := mimetype.Detect(in.Data)
	if !IsMimeTypeAllowed(mtype.String()) {
		logger.Warnf(ctx, "rejecting upload %q: sniffed mime-type %q", in.Filename, mtype.String())
		return port.UploadImageOutput{}, ErrUnsupportedFileType
	}
	ext, err := MimeTypeToExtension(mtype.String())
	if err != nil {
		return port.UploadImageOutput{}, err
	}

	id := s.genID()
	objectKey := id.String() + ext

	if err := s.strg.SaveFile(
		ctx,
		StagingBucket,
		objectKey,
		bytes.NewReader(in.Data),
		int64(len(in.Data)),
		map[string]string{"Content-Type": mtype.String()},
	); err != nil {
		return port.UploadImageOutput{}, fmt.Errorf("save file %q to staging: %w", objectKey, err)
	}

	img := &model.Image{
		ID:               id,
		OriginalFilename: in.Filename,
		ObjectKey:        objectKey,
		MimeType:         mtype.String(),
		SizeBytes:        int64(len(in.Data)),
		Status:           model.StatusPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, img); err != nil {
		// don't leave an orphan behind in staging
		if rmErr := s.strg.RemoveFile(context.Background(), StagingBucket, objectKey); rmErr != nil {
			logger.Warnf(ctx, "cleanup of staging file %q failed: %v", objectKey, rmErr)
		}
		return port.UploadImageOutput{}, fmt.Errorf("create image record: %w", err)
	}

	return port.UploadImageOutput{ID: img.ID, Status: img.Status}, nil
}
