package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/posterlab/posters-ms-go/internal/logger"
	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

type processTriggerSrv struct {
	repo       port.ImageRepository
	dispatcher port.TaskDispatcher
}

// compile-time check: *processTriggerSrv must satisfy port.ProcessTrigger
var _ port.ProcessTrigger = (*processTriggerSrv)(nil)

func NewProcessTrigger(repo port.ImageRepository, dispatcher port.TaskDispatcher) port.ProcessTrigger {
	return &processTriggerSrv{repo: repo, dispatcher: dispatcher}
}

// TriggerProcess claims the pending→processing transition and enqueues the
// poster generation. The claim is a database compare-and-swap, so out of N
// racing triggers for one id exactly one wins; the rest observe a conflict.
func (s *processTriggerSrv) TriggerProcess(ctx context.Context, id uuid.UUID) (port.TriggerProcessOutput, error) {
	ok, err := s.repo.TransitionStatus(ctx, id, model.StatusPending, model.StatusProcessing)
	if err != nil {
		return port.TriggerProcessOutput{}, fmt.Errorf("transition image #%s to processing: %w", id, err)
	}
	if !ok {
		img, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return port.TriggerProcessOutput{}, ErrImageNotFound
			}
			return port.TriggerProcessOutput{}, err
		}
		if img.Status == model.StatusProcessing {
			return port.TriggerProcessOutput{}, ErrAlreadyProcessing
		}
		// completed or failed: terminal states cannot be re-triggered
		return port.TriggerProcessOutput{}, ErrAlreadyProcessed
	}

	if err := s.dispatcher.EnqueueGeneratePoster(ctx, id); err != nil {
		// give the claim back so a later trigger can retry
		if _, revertErr := s.repo.TransitionStatus(ctx, id, model.StatusProcessing, model.StatusPending); revertErr != nil {
			logger.Errorf(ctx, "revert of image #%s to pending failed: %v", id, revertErr)
		}
		return port.TriggerProcessOutput{}, fmt.Errorf("enqueue generate-poster task for image #%s: %w", id, err)
	}

	return port.TriggerProcessOutput{ID: id, Status: model.StatusProcessing}, nil
}
