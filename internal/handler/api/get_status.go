package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/posterlab/posters-ms-go/internal/api_context"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/usecase/image"
)

func GetImageStatusHandler(svc port.StatusGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.GetImageStatus(r.Context(), id)
		if err != nil {
			if errors.Is(err, image.ErrImageNotFound) {
				WriteError(w, http.StatusNotFound, image.ErrImageNotFound.Error(), nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "could not get image status", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully returned status for image #%s", id)
	}
}
