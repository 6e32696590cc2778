package image

import "errors"

var (
	ErrImageNotFound     = errors.New("image not found")
	ErrImageNotProcessed = errors.New("image not processed yet")
	ErrImageNotCompleted = errors.New("image is not completed yet")
	ErrAlreadyProcessing = errors.New("image is already processing")
	ErrAlreadyProcessed  = errors.New("image has already been processed")

	ErrNoFile              = errors.New("no file provided")
	ErrUnsupportedFileType = errors.New("invalid or unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds the 5MB size limit")

	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
	ErrInternal       = errors.New("storage: internal error")
)
