package image

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/posterlab/posters-ms-go/internal/mock"
	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

func TestGetImageStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending", func(t *testing.T) {
		id := uuid.NewUUID()
		created := time.Date(2026, 2, 3, 10, 30, 0, 0, time.UTC)
		repo := &mock.MockImageRepo{ImageRecord: &model.Image{
			ID:        id,
			Status:    model.StatusPending,
			CreatedAt: created,
		}}
		svc := NewStatusGetter(repo)

		out, err := svc.GetImageStatus(ctx, id)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if out.Status != model.StatusPending {
			t.Errorf("status = %q", out.Status)
		}
		if !out.CreatedAt.Equal(created) {
			t.Errorf("createdAt = %v; want %v", out.CreatedAt, created)
		}
		if out.ProcessedAt != nil {
			t.Errorf("processedAt = %v; want nil", out.ProcessedAt)
		}
	})

	t.Run("CompletedNormalisesToUTC", func(t *testing.T) {
		id := uuid.NewUUID()
		loc := time.FixedZone("UTC+2", 2*3600)
		processed := time.Date(2026, 2, 3, 12, 0, 0, 0, loc)
		repo := &mock.MockImageRepo{ImageRecord: &model.Image{
			ID:          id,
			Status:      model.StatusCompleted,
			CreatedAt:   time.Date(2026, 2, 3, 11, 0, 0, 0, loc),
			ProcessedAt: &processed,
		}}
		svc := NewStatusGetter(repo)

		out, err := svc.GetImageStatus(ctx, id)
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if out.CreatedAt.Location() != time.UTC {
			t.Errorf("createdAt location = %v; want UTC", out.CreatedAt.Location())
		}
		if out.ProcessedAt == nil || out.ProcessedAt.Location() != time.UTC {
			t.Errorf("processedAt = %v; want non-nil UTC", out.ProcessedAt)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := &mock.MockImageRepo{GetErr: sql.ErrNoRows}
		svc := NewStatusGetter(repo)

		_, err := svc.GetImageStatus(ctx, uuid.NewUUID())
		if !errors.Is(err, ErrImageNotFound) {
			t.Fatalf("got %v; want ErrImageNotFound", err)
		}
	})

	t.Run("RepoError", func(t *testing.T) {
		repo := &mock.MockImageRepo{GetErr: errors.New("db down")}
		svc := NewStatusGetter(repo)

		_, err := svc.GetImageStatus(ctx, uuid.NewUUID())
		if err == nil || errors.Is(err, ErrImageNotFound) {
			t.Fatalf("got %v; want a raw repo error", err)
		}
	})
}
