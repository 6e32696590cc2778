package worker

import (
	"context"
	"log"
	"time"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/task"
	"github.com/posterlab/posters-ms-go/internal/uuid"
	"github.com/posterlab/posters-ms-go/internal/validation"
)

// GeneratePosterHandler handles a generate-poster task.
// It validates the incoming payload, converts it to the input expected by
// the poster generator service and bounds the whole run with a timeout so
// a hung transformation cannot hold the worker slot forever.
func GeneratePosterHandler(ctx context.Context, p task.GeneratePosterPayload, timeout time.Duration, svc port.PosterGenerator) error {
	if err := validation.ValidateStruct(p); err != nil {
		log.Printf("❌  Payload validation failed: %v", err)
		return err
	}

	id, err := uuid.Parse(p.ImageID)
	if err != nil {
		log.Printf("❌  Invalid image ID %q: %v", p.ImageID, err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := svc.GeneratePoster(ctx, id); err != nil {
		log.Printf("❌  Failed to generate poster for image #%s: %v", id, err)
		return err
	}

	log.Printf("✅  Successfully generated poster for image #%s", id)
	return nil
}
