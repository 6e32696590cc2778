package mock

import (
	"bytes"
	"context"
	"io"

	"github.com/posterlab/posters-ms-go/internal/port"
)

// MockRenderer implements poster rendering for tests.
type MockRenderer struct {
	Out      []byte
	MimeType string
	Err      error

	Called bool
}

var _ port.PosterRenderer = (*MockRenderer)(nil)

func (m *MockRenderer) Render(ctx context.Context, r io.Reader) (io.ReadCloser, string, error) {
	m.Called = true
	if m.Err != nil {
		return nil, "", m.Err
	}
	return io.NopCloser(bytes.NewReader(m.Out)), m.MimeType, nil
}
