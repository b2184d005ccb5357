package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/wishyoulucky/storefront/pkg/storefront"
)

// Repository is an in-memory implementation of storefront.Repository. Rows
// are stored exactly as seeded, loosely typed, so the normalizer sees the
// same shapes a real backend would produce.
type Repository struct {
	mu              sync.RWMutex
	products        []map[string]any
	banners         []map[string]any
	categoryBanners []map[string]any
	orders          []map[string]any
	nextOrderID     int64
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{nextOrderID: 1}
}

// SeedProducts replaces the stored product rows
func (r *Repository) SeedProducts(rows []map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = rows
}

// SeedBanners replaces the stored banner rows
func (r *Repository) SeedBanners(rows []map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banners = rows
}

// SeedCategoryBanners replaces the stored category banner rows
func (r *Repository) SeedCategoryBanners(rows []map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categoryBanners = rows
}

func (r *Repository) ListProducts(ctx context.Context) ([]map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]map[string]any(nil), r.products...), nil
}

func (r *Repository) GetProductBySlug(ctx context.Context, slug string) (map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.products {
		if rowSlug, ok := row["slug"].(string); ok && rowSlug == slug {
			return row, nil
		}
		// Products without a stored slug are addressed by identifier.
		if id, ok := row["id"]; ok && rowID(id) == slug {
			return row, nil
		}
	}
	return nil, storefront.ErrProductNotFound
}

func (r *Repository) ListBanners(ctx context.Context) ([]map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]map[string]any(nil), r.banners...), nil
}

func (r *Repository) ListCategoryBanners(ctx context.Context) ([]map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]map[string]any(nil), r.categoryBanners...), nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *storefront.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextOrderID
	r.nextOrderID++
	if order.CreatedAt == "" {
		order.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	r.orders = append(r.orders, orderRow(order))
	return nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]map[string]any, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]map[string]any(nil), r.orders...), nil
}

// orderRow flattens an order back into the loose row shape list endpoints
// serve, keeping the read path uniform across backends.
func orderRow(order *storefront.Order) map[string]any {
	items := make([]any, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, map[string]any{
			"id":       item.ID,
			"name":     item.Name,
			"price":    item.Price,
			"quantity": item.Quantity,
			"image":    item.Image,
			"sku":      item.SKU,
			"variant":  item.Variant,
		})
	}

	return map[string]any{
		"id":         order.ID,
		"created_at": order.CreatedAt,
		"items":      items,
		"customer_info": map[string]any{
			"name":    order.Customer.Name,
			"phone":   order.Customer.Phone,
			"address": order.Customer.Address,
			"note":    order.Customer.Note,
			"email":   order.Customer.Email,
		},
		"total_selling_price": order.TotalPrice,
		"status":              order.Status,
		"tracking_number":     order.TrackingNumber,
		"admin_notes":         order.AdminNotes,
		"deposit":             order.Deposit,
		"shipping_cost":       order.ShippingCost,
		"discount":            order.Discount,
		"username":            order.Username,
	}
}

func rowID(id any) string {
	switch v := id.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case string:
		return v
	default:
		return ""
	}
}
