package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/usecase/image"
)

// maxUploadBytes bounds the whole multipart body, not just the file part.
// Some slack over the file limit keeps form overhead from tripping it.
const maxUploadBytes = image.MaxFileSize + 1*1024*1024

func UploadImageHandler(svc port.ImageUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				WriteError(w, http.StatusRequestEntityTooLarge, image.ErrFileTooLarge.Error(), nil)
				return
			}
			WriteError(w, http.StatusBadRequest, image.ErrNoFile.Error(), err)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, image.ErrNoFile.Error(), nil)
			return
		}
		defer func() { _ = file.Close() }()

		if header.Size > image.MaxFileSize {
			WriteError(w, http.StatusRequestEntityTooLarge, image.ErrFileTooLarge.Error(), nil)
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not read uploaded file", err)
			return
		}

		out, err := svc.UploadImage(r.Context(), port.UploadImageInput{
			Filename: header.Filename,
			Data:     data,
		})
		if err != nil {
			switch {
			case errors.Is(err, image.ErrNoFile):
				WriteError(w, http.StatusBadRequest, image.ErrNoFile.Error(), nil)
			case errors.Is(err, image.ErrFileTooLarge):
				WriteError(w, http.StatusRequestEntityTooLarge, image.ErrFileTooLarge.Error(), nil)
			case errors.Is(err, image.ErrUnsupportedFileType):
				WriteError(w, http.StatusUnsupportedMediaType, image.ErrUnsupportedFileType.Error(), nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not upload image", err)
			}
			return
		}

		RespondJSON(w, http.StatusCreated, out)
		log.Printf("✅  Successfully uploaded image #%s", out.ID)
	}
}
