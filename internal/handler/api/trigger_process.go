package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/posterlab/posters-ms-go/internal/api_context"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/usecase/image"
)

func TriggerProcessHandler(svc port.ProcessTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.TriggerProcess(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, image.ErrImageNotFound):
				WriteError(w, http.StatusNotFound, image.ErrImageNotFound.Error(), nil)
			case errors.Is(err, image.ErrAlreadyProcessing):
				WriteError(w, http.StatusConflict, image.ErrAlreadyProcessing.Error(), nil)
			case errors.Is(err, image.ErrAlreadyProcessed):
				WriteError(w, http.StatusConflict, image.ErrAlreadyProcessed.Error(), nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not trigger processing", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully queued image #%s for processing", id)
	}
}
