package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/posterlab/posters-ms-go/internal/api_context"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/usecase/image"
)

func GetSignedURLHandler(svc port.SignedURLGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.GetSignedURL(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, image.ErrImageNotFound):
				WriteError(w, http.StatusNotFound, image.ErrImageNotFound.Error(), nil)
			case errors.Is(err, image.ErrImageNotCompleted):
				WriteError(w, http.StatusForbidden, image.ErrImageNotCompleted.Error(), nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not generate signed URL", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully generated signed URL for image #%s", id)
	}
}
