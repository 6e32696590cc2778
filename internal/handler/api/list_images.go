package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/validation"
)

const defaultListLimit = 10

type listImagesQuery struct {
	Status string `validate:"omitempty,imagestatus" json:"status"`
	Limit  int    `validate:"min=1,max=100"         json:"limit"`
	Offset int    `validate:"min=0"                 json:"offset"`
}

func ListImagesHandler(svc port.ImageLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query()

		q := listImagesQuery{Status: raw.Get("status"), Limit: defaultListLimit}

		if s := raw.Get("limit"); s != "" {
			limit, err := strconv.Atoi(s)
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q: not an integer", s), nil)
				return
			}
			q.Limit = limit
		}
		if s := raw.Get("offset"); s != "" {
			offset, err := strconv.Atoi(s)
			if err != nil {
				WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid offset %q: not an integer", s), nil)
				return
			}
			q.Offset = offset
		}

		if err := validation.ValidateStruct(q); err != nil {
			var vErrs validator.ValidationErrors
			if errors.As(err, &vErrs) && len(vErrs) > 0 {
				switch vErrs[0].Field() {
				case "status":
					WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid status %q", q.Status), nil)
				case "limit":
					WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %d: must be between 1 and 100", q.Limit), nil)
				default:
					WriteError(w, http.StatusBadRequest, fmt.Sprintf("invalid offset %d: must not be negative", q.Offset), nil)
				}
				return
			}
			WriteError(w, http.StatusBadRequest, "invalid query parameters", err)
			return
		}

		filter := port.ListImagesFilter{Limit: q.Limit, Offset: q.Offset}
		if q.Status != "" {
			st := model.Status(q.Status)
			filter.Status = &st
		}

		out, err := svc.ListImages(r.Context(), filter)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not list images", err)
			return
		}

		RespondJSON(w, http.StatusOK, out)
		log.Printf("✅  Successfully listed %d images", len(out))
	}
}
