package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	guuid "github.com/google/uuid"

	"github.com/posterlab/posters-ms-go/internal/mock"
	"github.com/posterlab/posters-ms-go/internal/task"
	msuuid "github.com/posterlab/posters-ms-go/internal/uuid"
)

func TestGeneratePosterHandler_InvalidID(t *testing.T) {
	svc := &mock.PosterGenerator{}
	err := GeneratePosterHandler(context.Background(), task.GeneratePosterPayload{ImageID: "invalid"}, time.Second, svc)
	if err == nil {
		t.Fatal("expected error for invalid UUID")
	}
	if svc.Called {
		t.Error("service should not be called on invalid id")
	}
}

func TestGeneratePosterHandler_ServiceError(t *testing.T) {
	id := msuuid.UUID(guuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svcErr := errors.New("svc fail")
	svc := &mock.PosterGenerator{Err: svcErr}

	err := GeneratePosterHandler(context.Background(), task.GeneratePosterPayload{ImageID: id.String()}, time.Second, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
	if !svc.Called {
		t.Error("service not called")
	}
	if svc.ID != id {
		t.Errorf("service got id %s; want %s", svc.ID, id)
	}
}

func TestGeneratePosterHandler_Success(t *testing.T) {
	id := msuuid.UUID(guuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svc := &mock.PosterGenerator{}

	err := GeneratePosterHandler(context.Background(), task.GeneratePosterPayload{ImageID: id.String()}, time.Second, svc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !svc.Called {
		t.Error("service not called")
	}
	if svc.ID != id {
		t.Errorf("service got id %s; want %s", svc.ID, id)
	}
}
