package image

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/posterlab/posters-ms-go/internal/mock"
	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

func processingImage(id uuid.UUID) *model.Image {
	return &model.Image{
		ID:               id,
		OriginalFilename: "mugshot.png",
		ObjectKey:        id.String() + ".png",
		MimeType:         "image/png",
		Status:           model.StatusProcessing,
	}
}

func TestGeneratePoster(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		id := uuid.NewUUID()
		repo := &mock.MockImageRepo{ImageRecord: processingImage(id), CompleteOK: true}
		strg := &mock.MockStorage{FileData: []byte("source bytes")}
		rend := &mock.MockRenderer{Out: []byte("poster bytes"), MimeType: "image/jpeg"}
		svc := NewPosterGenerator(repo, rend, strg)

		if err := svc.GeneratePoster(ctx, id); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !rend.Called {
			t.Fatal("renderer not called")
		}
		if strg.SavedBucket != PostersBucket {
			t.Errorf("poster saved in %q; want %q", strg.SavedBucket, PostersBucket)
		}
		if !bytes.Equal(strg.SavedData, []byte("poster bytes")) {
			t.Errorf("saved data = %q", strg.SavedData)
		}
		if !repo.CompleteCalled {
			t.Fatal("repo.CompleteProcessing not called")
		}
		if repo.CompletedID != id {
			t.Errorf("completed id = %s; want %s", repo.CompletedID, id)
		}
		if repo.CompletedPosterKey != id.String()+".jpg" {
			t.Errorf("poster key = %q; want %s.jpg", repo.CompletedPosterKey, id)
		}
		// the staging source is discarded once the image resolves
		if !strg.RemoveCalled || strg.RemovedBucket != StagingBucket {
			t.Error("staging source should be removed after completion")
		}
	})

	t.Run("LostCompletionRaceIsNoOp", func(t *testing.T) {
		id := uuid.NewUUID()
		repo := &mock.MockImageRepo{ImageRecord: processingImage(id), CompleteOK: false}
		strg := &mock.MockStorage{FileData: []byte("source bytes")}
		rend := &mock.MockRenderer{Out: []byte("poster bytes"), MimeType: "image/jpeg"}
		svc := NewPosterGenerator(repo, rend, strg)

		// the image was force-failed while the render was running; the
		// terminal record must stand and the fresh poster is discarded
		if err := svc.GeneratePoster(ctx, id); err != nil {
			t.Fatalf("expected nil on a lost completion race, got %v", err)
		}
		if repo.FailCalled {
			t.Error("no further status write should happen after a lost race")
		}
		if !strg.RemoveCalled || strg.RemovedBucket != PostersBucket {
			t.Errorf("orphaned poster should be removed, got removal from %q", strg.RemovedBucket)
		}
		if strg.RemovedKey != id.String()+".jpg" {
			t.Errorf("removed key = %q; want %s.jpg", strg.RemovedKey, id)
		}
	})

	t.Run("SkipsResolvedImage", func(t *testing.T) {
		id := uuid.NewUUID()
		img := processingImage(id)
		img.Status = model.StatusCompleted
		repo := &mock.MockImageRepo{ImageRecord: img}
		rend := &mock.MockRenderer{}
		svc := NewPosterGenerator(repo, rend, &mock.MockStorage{})

		if err := svc.GeneratePoster(ctx, id); err != nil {
			t.Fatalf("expected nil for a stale task, got %v", err)
		}
		if rend.Called {
			t.Error("renderer should not run for a resolved image")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := &mock.MockImageRepo{GetErr: sql.ErrNoRows}
		svc := NewPosterGenerator(repo, &mock.MockRenderer{}, &mock.MockStorage{})

		err := svc.GeneratePoster(ctx, uuid.NewUUID())
		if !errors.Is(err, ErrImageNotFound) {
			t.Fatalf("got %v; want ErrImageNotFound", err)
		}
	})

	t.Run("RenderFailureMarksFailed", func(t *testing.T) {
		id := uuid.NewUUID()
		repo := &mock.MockImageRepo{ImageRecord: processingImage(id), FailOK: true}
		strg := &mock.MockStorage{FileData: []byte("corrupt")}
		rend := &mock.MockRenderer{Err: errors.New("cannot decode")}
		svc := NewPosterGenerator(repo, rend, strg)

		if err := svc.GeneratePoster(ctx, id); err == nil {
			t.Fatal("expected error")
		}
		if !repo.FailCalled {
			t.Fatal("repo.FailProcessing not called")
		}
		if repo.FailedID != id {
			t.Errorf("failed id = %s; want %s", repo.FailedID, id)
		}
		if repo.FailReason == "" {
			t.Error("failure message not recorded")
		}
		// failed images keep their source bytes around for inspection
		if strg.RemoveCalled {
			t.Error("staging source should be retained on failure")
		}
	})

	t.Run("MissingSourceMarksFailed", func(t *testing.T) {
		id := uuid.NewUUID()
		repo := &mock.MockImageRepo{ImageRecord: processingImage(id), FailOK: true}
		strg := &mock.MockStorage{GetErr: ErrObjectNotFound}
		svc := NewPosterGenerator(repo, &mock.MockRenderer{}, strg)

		if err := svc.GeneratePoster(ctx, id); err == nil {
			t.Fatal("expected error")
		}
		if !repo.FailCalled {
			t.Error("image should be marked failed when the source is gone")
		}
	})

	t.Run("SaveFailureMarksFailed", func(t *testing.T) {
		id := uuid.NewUUID()
		repo := &mock.MockImageRepo{ImageRecord: processingImage(id), FailOK: true}
		strg := &mock.MockStorage{FileData: []byte("src"), SaveErr: errors.New("minio down")}
		rend := &mock.MockRenderer{Out: []byte("poster"), MimeType: "image/jpeg"}
		svc := NewPosterGenerator(repo, rend, strg)

		if err := svc.GeneratePoster(ctx, id); err == nil {
			t.Fatal("expected error")
		}
		if !repo.FailCalled {
			t.Error("image should be marked failed when the poster cannot be stored")
		}
	})
}
