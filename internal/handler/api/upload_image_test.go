package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/posterlab/posters-ms-go/internal/mock"
	"github.com/posterlab/posters-ms-go/internal/model"
	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/usecase/image"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

func multipartBody(t *testing.T, fieldName, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestUploadImageHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		id := uuid.NewUUID()
		svc := &mock.ImageUploader{Out: port.UploadImageOutput{ID: id, Status: model.StatusPending}}

		body, contentType := multipartBody(t, "file", "mugshot.png", []byte("fake png bytes"))
		req := httptest.NewRequest("POST", "/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		UploadImageHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d; want %d; body %s", rec.Code, http.StatusCreated, rec.Body)
		}
		var out port.UploadImageOutput
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if out.ID != id {
			t.Errorf("id = %s; want %s", out.ID, id)
		}
		if out.Status != model.StatusPending {
			t.Errorf("status = %q; want %q", out.Status, model.StatusPending)
		}
		if !svc.Called {
			t.Error("service not called")
		}
		if svc.In.Filename != "mugshot.png" {
			t.Errorf("filename = %q; want %q", svc.In.Filename, "mugshot.png")
		}
	})

	t.Run("NoFileField", func(t *testing.T) {
		svc := &mock.ImageUploader{}

		body, contentType := multipartBody(t, "attachment", "mugshot.png", []byte("data"))
		req := httptest.NewRequest("POST", "/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		UploadImageHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rec.Body.String(), "no file provided") {
			t.Errorf("body %q should mention missing file", rec.Body)
		}
		if svc.Called {
			t.Error("service should not be called")
		}
	})

	t.Run("NotMultipart", func(t *testing.T) {
		svc := &mock.ImageUploader{}

		req := httptest.NewRequest("POST", "/images", strings.NewReader("plain body"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()

		UploadImageHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("FileTooLarge", func(t *testing.T) {
		svc := &mock.ImageUploader{}

		body, contentType := multipartBody(t, "file", "huge.png", make([]byte, image.MaxFileSize+1))
		req := httptest.NewRequest("POST", "/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		UploadImageHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusRequestEntityTooLarge)
		}
		if !strings.Contains(rec.Body.String(), "5MB") {
			t.Errorf("body %q should mention the size limit", rec.Body)
		}
		if svc.Called {
			t.Error("service should not be called")
		}
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		svc := &mock.ImageUploader{Err: image.ErrUnsupportedFileType}

		body, contentType := multipartBody(t, "file", "resume.pdf", []byte("%PDF-1.7"))
		req := httptest.NewRequest("POST", "/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		UploadImageHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnsupportedMediaType {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusUnsupportedMediaType)
		}
		if !strings.Contains(rec.Body.String(), "invalid or unsupported file type") {
			t.Errorf("body %q should mention the file type", rec.Body)
		}
	})

	t.Run("ServiceError", func(t *testing.T) {
		svc := &mock.ImageUploader{Err: errDummy}

		body, contentType := multipartBody(t, "file", "mugshot.png", []byte("data"))
		req := httptest.NewRequest("POST", "/images", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		UploadImageHandler(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d; want %d", rec.Code, http.StatusInternalServerError)
		}
	})
}
