package storage

import (
	"fmt"

	"github.com/minio/minio-go/v7"

	"github.com/posterlab/posters-ms-go/internal/usecase/image"
)

func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return image.ErrObjectNotFound
	case "NoSuchBucket":
		return image.ErrBucketNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return image.ErrUnauthorized
	default:
		// catch everything else
		return fmt.Errorf("%w: %v", image.ErrInternal, err)
	}
}
