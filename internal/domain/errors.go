package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed         = errors.New("document upload to storage failed")
	ErrFetchFailed          = errors.New("fetching document from URL failed")
	ErrExtractionFailed     = errors.New("extraction task failed")
	ErrUpstreamUnauthorized = errors.New("extraction service rejected credentials")
	ErrExtractionTimeout    = errors.New("extraction task timed out")
)
