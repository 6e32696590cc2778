package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/posterlab/posters-ms-go/internal/mock"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/usecase/image"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

func TestGetSignedURLHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		id := uuid.NewUUID()
		svc := &mock.SignedURLGetter{Out: &port.GetSignedURLOutput{
			URL:        "https://storage.example.com/posters/" + id.String() + ".jpg?X-Amz-Expires=900",
			ValidUntil: time.Now().UTC().Add(15 * time.Minute),
		}}

		req := withID(httptest.NewRequest("GET", "/images/"+id.String()+"/signed-url", nil), id)
		rec := httptest.NewRecorder()

		GetSignedURLHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusOK)
		}
		var body map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		url, _ := body["url"].(string)
		if !strings.Contains(url, id.String()) {
			t.Errorf("url %q should contain the image id", url)
		}
		if !strings.Contains(url, "X-Amz-Expires") {
			t.Errorf("url %q should embed expiry information", url)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := &mock.SignedURLGetter{Err: image.ErrImageNotFound}
		id := uuid.NewUUID()
		req := withID(httptest.NewRequest("GET", "/images/"+id.String()+"/signed-url", nil), id)
		rec := httptest.NewRecorder()

		GetSignedURLHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("NotCompleted", func(t *testing.T) {
		svc := &mock.SignedURLGetter{Err: image.ErrImageNotCompleted}
		id := uuid.NewUUID()
		req := withID(httptest.NewRequest("GET", "/images/"+id.String()+"/signed-url", nil), id)
		rec := httptest.NewRecorder()

		GetSignedURLHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusForbidden)
		}
		if !strings.Contains(rec.Body.String(), "not completed") {
			t.Errorf("body %q should mention not completed", rec.Body)
		}
	})

	t.Run("ServiceError", func(t *testing.T) {
		svc := &mock.SignedURLGetter{Err: errDummy}
		id := uuid.NewUUID()
		req := withID(httptest.NewRequest("GET", "/images/"+id.String()+"/signed-url", nil), id)
		rec := httptest.NewRecorder()

		GetSignedURLHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusInternalServerError)
		}
	})
}
