package port

import (
	"context"
	"io"
)

// PosterRenderer turns a source photograph into a wanted-poster artifact.
// It returns the encoded artifact and its mime type.
type PosterRenderer interface {
	Render(ctx context.Context, r io.Reader) (io.ReadCloser, string, error)
}
