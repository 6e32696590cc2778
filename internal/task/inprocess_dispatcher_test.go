package task

import (
	"context"
	"testing"
	"time"

	"github.com/posterlab/posters-ms-go/internal/mock"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

func TestInProcessDispatcher(t *testing.T) {
	id := uuid.NewUUID()
	svc := &mock.PosterGenerator{}
	d := NewInProcessDispatcher(svc, time.Second)

	if err := d.EnqueueGeneratePoster(context.Background(), id); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Wait()

	if !svc.Called {
		t.Fatal("generator not called")
	}
	if svc.ID != id {
		t.Errorf("generator got id %s; want %s", svc.ID, id)
	}
}

func TestInProcessDispatcherSurvivesServiceError(t *testing.T) {
	svc := &mock.PosterGenerator{Err: context.DeadlineExceeded}
	d := NewInProcessDispatcher(svc, time.Second)

	// the enqueue itself never fails; the error is resolved out-of-band
	if err := d.EnqueueGeneratePoster(context.Background(), uuid.NewUUID()); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	d.Wait()

	if !svc.Called {
		t.Fatal("generator not called")
	}
}
