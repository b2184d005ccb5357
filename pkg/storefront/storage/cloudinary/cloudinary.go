package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/wishyoulucky/storefront/pkg/storefront"
)

// Backend is a Cloudinary implementation of the storefront.BlobStore
// interface. The storage key doubles as the Cloudinary public ID; delivery
// URLs come back from the upload API and are cached per key. Cache lifetime
// is managed by Cloudinary's CDN, so UploadParams.CacheControl is accepted
// but not forwarded.
type Backend struct {
	cld *cloudinary.Cloudinary

	mu   sync.RWMutex
	urls map[string]string // key -> secure delivery URL
}

// Config options for the Cloudinary backend
type Config struct {
	// URL is a cloudinary:// credential URL. Takes precedence over the
	// individual fields below.
	URL string

	CloudName string
	APIKey    string
	APISecret string
}

// New creates a new Cloudinary storage backend
func New(config Config) (storefront.BlobStore, error) {
	var cld *cloudinary.Cloudinary
	var err error

	if config.URL != "" {
		cld, err = cloudinary.NewFromURL(config.URL)
	} else if config.CloudName != "" {
		cld, err = cloudinary.NewFromParams(config.CloudName, config.APIKey, config.APISecret)
	} else {
		return nil, errors.New("cloudinary credentials are required")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Backend{
		cld:  cld,
		urls: make(map[string]string),
	}, nil
}

// Upload uploads content under the given key (used as the public ID).
func (b *Backend) Upload(ctx context.Context, reader io.Reader, params storefront.UploadParams) error {
	result, err := b.cld.Upload.Upload(ctx, reader, uploader.UploadParams{
		PublicID:  params.ObjectKey,
		Overwrite: api.Bool(params.Overwrite),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to cloudinary: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to upload to cloudinary: %s", result.Error.Message)
	}

	b.mu.Lock()
	b.urls[params.ObjectKey] = result.SecureURL
	b.mu.Unlock()

	return nil
}

// PublicURL returns the secure delivery URL for a key. Keys uploaded
// through this backend resolve from the local cache; cold keys fall back to
// URL construction from the cloud configuration.
func (b *Backend) PublicURL(ctx context.Context, objectKey string) (string, error) {
	b.mu.RLock()
	url, ok := b.urls[objectKey]
	b.mu.RUnlock()
	if ok {
		return url, nil
	}

	img, err := b.cld.Image(objectKey)
	if err != nil {
		return "", fmt.Errorf("failed to build cloudinary URL: %w", err)
	}
	return img.String()
}

// Download downloads content directly. Cloudinary serves assets over its
// CDN, not through the upload API.
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	return nil, errors.New("direct download not supported for cloudinary backend")
}

// Delete deletes content
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	result, err := b.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: objectKey,
	})
	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("failed to delete from cloudinary: %s", result.Result)
	}

	b.mu.Lock()
	delete(b.urls, objectKey)
	b.mu.Unlock()

	return nil
}

// GetObjectMeta retrieves metadata for an asset via the admin API
func (b *Backend) GetObjectMeta(ctx context.Context, objectKey string) (*storefront.ObjectMeta, error) {
	asset, err := b.cld.Admin.Asset(ctx, admin.AssetParams{PublicID: objectKey})
	if err != nil {
		return nil, fmt.Errorf("failed to get cloudinary asset: %w", err)
	}
	if asset.Error.Message != "" {
		return nil, storefront.ErrObjectNotFound
	}

	contentType := "application/octet-stream"
	if asset.ResourceType != "" && asset.Format != "" {
		contentType = fmt.Sprintf("%s/%s", asset.ResourceType, asset.Format)
	}

	return &storefront.ObjectMeta{
		Key:         objectKey,
		Size:        int64(asset.Bytes),
		ContentType: contentType,
		UpdatedAt:   asset.CreatedAt,
		Metadata:    map[string]string{"content_type": contentType},
	}, nil
}
