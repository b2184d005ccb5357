package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/wishyoulucky/storefront/pkg/storefront"
)

// DefaultBaseURL fronts public URLs when the caller configures none.
const DefaultBaseURL = "https://storage.invalid"

// Backend is an in-memory implementation of the storefront.BlobStore
// interface, used as the store fake in tests and local development.
type Backend struct {
	mu           sync.RWMutex
	baseURL      string
	objects      map[string][]byte
	contentTypes map[string]string
	cacheControl map[string]string
}

// Config options for the in-memory backend
type Config struct {
	BaseURL string // Base for public URLs (default: DefaultBaseURL)
}

// New creates a new in-memory storage backend
func New() storefront.BlobStore {
	return NewWithConfig(Config{})
}

// NewWithConfig creates an in-memory backend with a custom public base URL
func NewWithConfig(config Config) storefront.BlobStore {
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Backend{
		baseURL:      baseURL,
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		cacheControl: make(map[string]string),
	}
}

// Upload stores content under the given key. With Overwrite unset an
// existing key is rejected; with it set the previous content is replaced
// (last writer wins).
func (b *Backend) Upload(ctx context.Context, reader io.Reader, params storefront.UploadParams) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[params.ObjectKey]; exists && !params.Overwrite {
		return fmt.Errorf("object already exists: %s", params.ObjectKey)
	}

	b.objects[params.ObjectKey] = data
	if params.ContentType != "" {
		b.contentTypes[params.ObjectKey] = params.ContentType
	} else if _, exists := b.contentTypes[params.ObjectKey]; !exists {
		b.contentTypes[params.ObjectKey] = "application/octet-stream"
	}
	b.cacheControl[params.ObjectKey] = params.CacheControl
	return nil
}

// PublicURL returns the public URL for a key. The key does not have to
// exist yet; URL issuance is a pure string computation.
func (b *Backend) PublicURL(ctx context.Context, objectKey string) (string, error) {
	return fmt.Sprintf("%s/%s", b.baseURL, objectKey), nil
}

// Download downloads content directly
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, storefront.ErrObjectNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete deletes content
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return storefront.ErrObjectNotFound
	}

	delete(b.objects, objectKey)
	delete(b.contentTypes, objectKey)
	delete(b.cacheControl, objectKey)
	return nil
}

// GetObjectMeta retrieves metadata for an object in memory
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*storefront.ObjectMeta, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, storefront.ErrObjectNotFound
	}

	return &storefront.ObjectMeta{
		Key:          objectKey,
		Size:         int64(len(data)),
		ContentType:  b.contentTypes[objectKey],
		CacheControl: b.cacheControl[objectKey],
		Metadata:     map[string]string{"content_type": b.contentTypes[objectKey]},
	}, nil
}
