package mariadb

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

type ImageRepository struct {
	db *sql.DB
}

// compile-time check: *ImageRepository must satisfy port.ImageRepository
var _ port.ImageRepository = (*ImageRepository)(nil)

func NewImageRepository(db *sql.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, img *model.Image) error {
	log.Printf("creating database record for image #%s, at status %q...", img.ID, img.Status)

	const query = `
      INSERT INTO images
        (id, original_filename, object_key, poster_key, mime_type, size_bytes, status, failure_message, created_at, processing_started_at, processed_at)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		img.ID, img.OriginalFilename, img.ObjectKey, img.PosterKey,
		img.MimeType, img.SizeBytes, img.Status,
		img.FailureMessage, img.CreatedAt, img.ProcessingStartedAt, img.ProcessedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

func (r *ImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	log.Printf("fetching image #%s from the database...", id)

	const query = `
      SELECT id, original_filename, object_key, poster_key, mime_type, size_bytes, status, failure_message, created_at, processing_started_at, processed_at
      FROM images
      WHERE id = ?
    `
	row := r.db.QueryRowContext(ctx, query, id)
	var img model.Image
	if err := row.Scan(
		&img.ID, &img.OriginalFilename, &img.ObjectKey, &img.PosterKey,
		&img.MimeType, &img.SizeBytes, &img.Status,
		&img.FailureMessage, &img.CreatedAt, &img.ProcessingStartedAt, &img.ProcessedAt,
	); err != nil {
		return nil, err
	}

	return &img, nil
}

// List returns images in creation order; a nil filter status means no
// filtering. Pagination is a plain LIMIT/OFFSET over that ordering so pages
// are reproducible.
func (r *ImageRepository) List(ctx context.Context, filter port.ListImagesFilter) ([]model.Image, error) {
	log.Printf("listing images (limit %d, offset %d)...", filter.Limit, filter.Offset)

	query := `
      SELECT id, original_filename, object_key, poster_key, mime_type, size_bytes, status, failure_message, created_at, processing_started_at, processed_at
      FROM images
    `
	args := make([]any, 0, 3)
	if filter.Status != nil {
		query += ` WHERE status = ?`
		args = append(args, *filter.Status)
	}
	query += ` ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var imgs []model.Image
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(
			&img.ID, &img.OriginalFilename, &img.ObjectKey, &img.PosterKey,
			&img.MimeType, &img.SizeBytes, &img.Status,
			&img.FailureMessage, &img.CreatedAt, &img.ProcessingStartedAt, &img.ProcessedAt,
		); err != nil {
			return nil, err
		}
		imgs = append(imgs, img)
	}
	return imgs, rows.Err()
}

// TransitionStatus is the compare-and-swap at the heart of the state machine:
// the UPDATE only matches when the row still carries the expected status, so
// concurrent callers cannot both win the same transition. A move into
// processing stamps processing_started_at, the timestamp staleness is later
// measured against.
func (r *ImageRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to model.Status) (bool, error) {
	log.Printf("transitioning image #%s from %q to %q...", id, from, to)

	query := `UPDATE images SET status = ? WHERE id = ? AND status = ?`
	args := []any{to, id, from}
	if to == model.StatusProcessing {
		query = `UPDATE images SET status = ?, processing_started_at = ? WHERE id = ? AND status = ?`
		args = []any{to, time.Now().UTC(), id, from}
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ImageRepository) CompleteProcessing(ctx context.Context, id uuid.UUID, posterKey string, processedAt time.Time) (bool, error) {
	log.Printf("completing image #%s with poster %q...", id, posterKey)

	const query = `
      UPDATE images
      SET status = ?, poster_key = ?, processed_at = ?
      WHERE id = ? AND status = ?
    `
	res, err := r.db.ExecContext(ctx, query, model.StatusCompleted, posterKey, processedAt, id, model.StatusProcessing)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ImageRepository) FailProcessing(ctx context.Context, id uuid.UUID, reason string, processedAt time.Time) (bool, error) {
	log.Printf("force-failing image #%s...", id)

	const query = `
      UPDATE images
      SET status = ?, failure_message = ?, processed_at = ?
      WHERE id = ? AND status = ?
    `
	res, err := r.db.ExecContext(ctx, query, model.StatusFailed, reason, processedAt, id, model.StatusProcessing)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListProcessingBefore measures staleness from when processing started, not
// from upload: an image triggered long after its upload is not stale just
// because the upload is old.
func (r *ImageRepository) ListProcessingBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const query = `SELECT id FROM images WHERE status = ? AND processing_started_at < ? ORDER BY processing_started_at ASC`
	rows, err := r.db.QueryContext(ctx, query, model.StatusProcessing, before)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
