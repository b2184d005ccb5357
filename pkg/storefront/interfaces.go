package storefront

import (
	"context"
	"io"
)

// BlobStore defines the interface for storage backends
type BlobStore interface {
	// Upload uploads content under the given key
	Upload(ctx context.Context, reader io.Reader, params UploadParams) error

	// PublicURL returns the canonical publicly resolvable URL for a key.
	// No authentication token is embedded (public-read bucket model).
	PublicURL(ctx context.Context, objectKey string) (string, error)

	// Download downloads content directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete deletes content
	Delete(ctx context.Context, objectKey string) error

	// GetObjectMeta retrieves metadata for an object
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// Repository defines the interface for the raw record source. Rows carry no
// schema guarantee; consumers pass them through the normalizer.
type Repository interface {
	// Product rows
	ListProducts(ctx context.Context) ([]map[string]any, error)
	GetProductBySlug(ctx context.Context, slug string) (map[string]any, error)

	// Banner rows
	ListBanners(ctx context.Context) ([]map[string]any, error)
	ListCategoryBanners(ctx context.Context) ([]map[string]any, error)

	// Order rows
	CreateOrder(ctx context.Context, order *Order) error
	ListOrders(ctx context.Context) ([]map[string]any, error)
}

// OrderReceivedEvent carries everything the notification sink needs to
// dispatch an order-received email.
type OrderReceivedEvent struct {
	To            string
	OrderID       int64
	OrderNumber   string
	TotalPrice    float64
	Deposit       float64
	PaidAmount    float64
	PaymentMethod string
	Customer      CustomerInfo
	Items         []OrderItem
}

// NotificationSink dispatches transactional notifications. Implementations
// own retry and templating; callers treat failures as non-fatal.
type NotificationSink interface {
	OrderReceived(ctx context.Context, event OrderReceivedEvent) error
}
