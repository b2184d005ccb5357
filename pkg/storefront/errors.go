package storefront

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrInvalidInput indicates the caller passed no file or otherwise
	// malformed required input; raised before any network call
	ErrInvalidInput = errors.New("invalid input")

	// ErrUploadFailed indicates the blob store rejected or failed an upload
	ErrUploadFailed = errors.New("upload failed")

	// ErrObjectNotFound indicates an object was not found in storage
	ErrObjectNotFound = errors.New("object not found")

	// ErrStorageBackendNotFound indicates a storage backend was not found
	ErrStorageBackendNotFound = errors.New("storage backend not found")

	// ErrProductNotFound indicates a product was not found
	ErrProductNotFound = errors.New("product not found")
)

// UploadError represents a failed publish to a blob store. It carries the
// backend's diagnostic error verbatim; no retry is attempted on its behalf.
type UploadError struct {
	Backend string
	Key     string
	Err     error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed for key %s on backend %s: %v", e.Key, e.Backend, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// StorageError represents an error from a non-upload storage operation
type StorageError struct {
	Backend string
	Key     string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for key %s on backend %s: %v", e.Op, e.Key, e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
