package mock

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/posterlab/posters-ms-go/internal/port"
)

type nopReadSeekCloser struct{ *bytes.Reader }

func (nopReadSeekCloser) Close() error { return nil }

// MockStorage implements storage operations for tests.
type MockStorage struct {
	FileData  []byte
	InfoOut   port.FileInfo
	SignedURL string

	InitErr   error
	SignedErr error
	StatErr   error
	RemoveErr error
	GetErr    error
	SaveErr   error

	SaveCalled   bool
	RemoveCalled bool
	GetCalled    bool
	StatCalled   bool

	SavedBucket   string
	SavedKey      string
	SavedData     []byte
	SavedOpts     map[string]string
	RemovedBucket string
	RemovedKey    string
	GotBucket     string
	GotKey        string
}

var _ port.Storage = (*MockStorage)(nil)

func (m *MockStorage) InitBucket(bucket string) error { return m.InitErr }

func (m *MockStorage) GeneratePresignedDownloadURL(ctx context.Context, bucket, fileKey string, expiry time.Duration) (string, error) {
	if m.SignedErr != nil {
		return "", m.SignedErr
	}
	return m.SignedURL, nil
}

func (m *MockStorage) StatFile(ctx context.Context, bucket, fileKey string) (port.FileInfo, error) {
	m.StatCalled = true
	if m.StatErr != nil {
		return port.FileInfo{}, m.StatErr
	}
	return m.InfoOut, nil
}

func (m *MockStorage) RemoveFile(ctx context.Context, bucket, fileKey string) error {
	m.RemoveCalled = true
	m.RemovedBucket = bucket
	m.RemovedKey = fileKey
	return m.RemoveErr
}

func (m *MockStorage) GetFile(ctx context.Context, bucket, fileKey string) (io.ReadSeekCloser, error) {
	m.GetCalled = true
	m.GotBucket = bucket
	m.GotKey = fileKey
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return nopReadSeekCloser{bytes.NewReader(m.FileData)}, nil
}

func (m *MockStorage) SaveFile(ctx context.Context, bucket, fileKey string, reader io.Reader, fileSize int64, opts map[string]string) error {
	m.SaveCalled = true
	m.SavedBucket = bucket
	m.SavedKey = fileKey
	m.SavedOpts = opts
	if m.SaveErr != nil {
		return m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.SavedData = data
	return nil
}
