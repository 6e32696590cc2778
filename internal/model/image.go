package model

import (
	"time"

	"github.com/posterlab/posters-ms-go/internal/uuid"
)

// Status is the lifecycle state of an uploaded image.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether the state machine allows moving from s to next.
// The only legal paths are pending→processing and processing→completed|failed.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	}
	return false
}

// Image is one uploaded picture and its poster-generation record.
// ProcessingStartedAt is set when the image enters processing and is the
// timestamp stale-processing detection runs on; ProcessedAt is non-nil iff
// Status is terminal; PosterKey is set iff Status is completed.
type Image struct {
	ID                  uuid.UUID
	OriginalFilename    string
	ObjectKey           string
	PosterKey           *string
	MimeType            string
	SizeBytes           int64
	Status              Status
	FailureMessage      *string
	CreatedAt           time.Time
	ProcessingStartedAt *time.Time
	ProcessedAt         *time.Time
}
