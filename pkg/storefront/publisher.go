package storefront

import (
	"context"
	"fmt"
	"io"

	"github.com/wishyoulucky/storefront/pkg/storefront/objectkey"
)

// DefaultCacheControl is the cache lifetime hint attached to every
// published asset.
const DefaultCacheControl = "max-age=3600"

// File is a binary payload submitted for publishing. Name is the original
// filename (used for extension derivation), ContentType the declared MIME
// type, both optional.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadOptions control where an asset is published. All fields are
// optional: Folder defaults to the key generator's folder, FileName to a
// freshly generated unique token, Backend to the publisher's default store.
type UploadOptions struct {
	Folder   string
	FileName string
	Backend  string
}

// UploadResult is the outcome of a successful publish.
type UploadResult struct {
	Key     string `json:"key"`
	URL     string `json:"url"`
	Backend string `json:"backend"`
}

// BatchUploadResult is the per-file outcome of UploadAll.
type BatchUploadResult struct {
	FileName string
	Result   *UploadResult
	Err      error
}

// Publisher publishes binary assets to durable blob storage under
// deterministic keys and returns stable public URLs. Each call owns its
// inputs and produces a fresh result; concurrent uploads to distinct keys
// are independent, concurrent uploads to the same key race under the blob
// store's last-writer-wins overwrite policy.
type Publisher struct {
	blobStores     map[string]BlobStore
	defaultBackend string
	keys           *objectkey.Generator
}

// PublisherOption represents a functional option for configuring a Publisher
type PublisherOption func(*Publisher)

// WithBlobStore adds a named blob storage backend. The first registered
// backend becomes the default unless WithDefaultBackend overrides it.
func WithBlobStore(name string, store BlobStore) PublisherOption {
	return func(p *Publisher) {
		p.blobStores[name] = store
		if p.defaultBackend == "" {
			p.defaultBackend = name
		}
	}
}

// WithDefaultBackend selects the backend used when UploadOptions names none
func WithDefaultBackend(name string) PublisherOption {
	return func(p *Publisher) {
		p.defaultBackend = name
	}
}

// WithKeyGenerator replaces the default object key generator
func WithKeyGenerator(g *objectkey.Generator) PublisherOption {
	return func(p *Publisher) {
		p.keys = g
	}
}

// NewPublisher creates a Publisher with the given options. At least one
// blob store is required.
func NewPublisher(options ...PublisherOption) (*Publisher, error) {
	p := &Publisher{
		blobStores: make(map[string]BlobStore),
		keys:       objectkey.New(),
	}

	for _, option := range options {
		option(p)
	}

	if len(p.blobStores) == 0 {
		return nil, fmt.Errorf("at least one blob store is required")
	}
	if _, ok := p.blobStores[p.defaultBackend]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrStorageBackendNotFound, p.defaultBackend)
	}

	return p, nil
}

// GetBackend returns a registered blob store by name
func (p *Publisher) GetBackend(name string) (BlobStore, error) {
	store, exists := p.blobStores[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrStorageBackendNotFound, name)
	}
	return store, nil
}

// Upload publishes one asset and returns its storage key and public URL.
// The storage key is {folder}/{name}.{ext} with the extension taken from
// the file's original name (jpg when absent). Re-uploading under the same
// key overwrites prior content. The upload is not retried; the caller owns
// retry policy. The call is cancellable through ctx.
func (p *Publisher) Upload(ctx context.Context, file File, opts UploadOptions) (*UploadResult, error) {
	if file.Reader == nil {
		return nil, fmt.Errorf("%w: no file provided", ErrInvalidInput)
	}

	backendName := opts.Backend
	if backendName == "" {
		backendName = p.defaultBackend
	}
	store, err := p.GetBackend(backendName)
	if err != nil {
		return nil, err
	}

	key := p.keys.GenerateKey(opts.Folder, opts.FileName, file.Name)

	contentType := file.ContentType
	if contentType == "" {
		contentType = "image/" + objectkey.Extension(file.Name)
	}

	params := UploadParams{
		ObjectKey:    key,
		ContentType:  contentType,
		CacheControl: DefaultCacheControl,
		Overwrite:    true,
	}
	if err := store.Upload(ctx, file.Reader, params); err != nil {
		return nil, &UploadError{
			Backend: backendName,
			Key:     key,
			Err:     err,
		}
	}

	url, err := store.PublicURL(ctx, key)
	if err != nil {
		return nil, &StorageError{
			Backend: backendName,
			Key:     key,
			Op:      "public_url",
			Err:     err,
		}
	}

	return &UploadResult{
		Key:     key,
		URL:     url,
		Backend: backendName,
	}, nil
}

// UploadAll publishes a batch of files into one folder, continuing past
// per-file failures. Each file gets its own generated name; opts.FileName
// is ignored to keep keys unique within the batch.
func (p *Publisher) UploadAll(ctx context.Context, files []File, opts UploadOptions) []BatchUploadResult {
	results := make([]BatchUploadResult, 0, len(files))
	for _, file := range files {
		result, err := p.Upload(ctx, file, UploadOptions{
			Folder:  opts.Folder,
			Backend: opts.Backend,
		})
		results = append(results, BatchUploadResult{
			FileName: file.Name,
			Result:   result,
			Err:      err,
		})
	}
	return results
}
