package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const TypeGeneratePoster = "poster:generate"

type GeneratePosterPayload struct {
	ImageID string `json:"image_id" validate:"required,uuid"`
}

// NewGeneratePosterTask creates an Asynq task for generating the poster of an image by ID.
func NewGeneratePosterTask(imageID string) (*asynq.Task, error) {
	p := GeneratePosterPayload{ImageID: imageID}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal generate-poster payload: %w", err)
	}
	return asynq.NewTask(TypeGeneratePoster, data), nil
}

// ParseGeneratePosterPayload parses the task payload to GeneratePosterPayload.
func ParseGeneratePosterPayload(t *asynq.Task) (GeneratePosterPayload, error) {
	var p GeneratePosterPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return GeneratePosterPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
