package api

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/posterlab/posters-ms-go/internal/api_context"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/usecase/image"
)

func DownloadImageHandler(svc port.ImageDownloader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		out, err := svc.DownloadImage(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, image.ErrImageNotFound):
				WriteError(w, http.StatusNotFound, image.ErrImageNotFound.Error(), nil)
			case errors.Is(err, image.ErrImageNotProcessed):
				WriteError(w, http.StatusNotFound, image.ErrImageNotProcessed.Error(), nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not download image", err)
			}
			return
		}
		defer func() { _ = out.Reader.Close() }()

		w.Header().Set("Content-Type", out.ContentType)
		if out.SizeBytes > 0 {
			w.Header().Set("Content-Length", strconv.FormatInt(out.SizeBytes, 10))
		}
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, out.Reader); err != nil {
			log.Printf("❌  Failed to stream poster for image #%s: %v", id, err)
			return
		}
		log.Printf("✅  Successfully served poster for image #%s", id)
	}
}
