package task

import (
	"testing"

	"github.com/hibiken/asynq"

	"github.com/posterlab/posters-ms-go/internal/uuid"
)

func TestGeneratePosterTaskPayload(t *testing.T) {
	id := uuid.NewUUID()

	tk, err := NewGeneratePosterTask(id.String())
	if err != nil {
		t.Fatalf("NewGeneratePosterTask: %v", err)
	}
	if tk.Type() != TypeGeneratePoster {
		t.Errorf("type = %q; want %q", tk.Type(), TypeGeneratePoster)
	}

	p, err := ParseGeneratePosterPayload(tk)
	if err != nil {
		t.Fatalf("ParseGeneratePosterPayload: %v", err)
	}
	if p.ImageID != id.String() {
		t.Errorf("image id = %q; want %q", p.ImageID, id)
	}
}

func TestParseGeneratePosterPayloadInvalid(t *testing.T) {
	tk := asynq.NewTask(TypeGeneratePoster, []byte("not json"))
	if _, err := ParseGeneratePosterPayload(tk); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}
