package image

const (
	// StagingBucket holds source bytes until an image reaches a terminal state.
	StagingBucket = "staging"
	// PostersBucket holds finished poster artifacts.
	PostersBucket = "posters"

	// MaxFileSize is the upload cap advertised in error messages as 5MB.
	MaxFileSize = 5 * 1024 * 1024
)

var mimeTypesExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func IsMimeTypeAllowed(mimeType string) bool {
	_, ok := mimeTypesExtensions[mimeType]
	return ok
}

func MimeTypeToExtension(mimeType string) (string, error) {
	ext, ok := mimeTypesExtensions[mimeType]
	if !ok {
		return "", ErrUnsupportedFileType
	}
	return ext, nil
}
