package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wishyoulucky/storefront/pkg/storefront"
)

func TestNormalizeProductDefaults(t *testing.T) {
	t.Run("empty map yields fully defaulted record", func(t *testing.T) {
		p := storefront.NormalizeProduct(map[string]any{})

		assert.Equal(t, int64(0), p.ID)
		assert.Equal(t, "", p.Name)
		assert.Equal(t, float64(0), p.SellingPrice)
		assert.Equal(t, "pre-order", p.Status)
		assert.Equal(t, "ETC", p.ProductType)
		assert.Equal(t, 0, p.Quantity)
		assert.Equal(t, "0", p.Slug)
		require.NotNil(t, p.Tags)
		assert.Empty(t, p.Tags)
		require.NotNil(t, p.Images)
		assert.Empty(t, p.Images)
	})

	t.Run("nil map behaves like empty map", func(t *testing.T) {
		p := storefront.NormalizeProduct(nil)
		assert.Equal(t, "pre-order", p.Status)
		assert.Equal(t, "ETC", p.ProductType)
		assert.NotNil(t, p.Tags)
		assert.NotNil(t, p.Images)
	})

	t.Run("present fields pass through", func(t *testing.T) {
		p := storefront.NormalizeProduct(map[string]any{
			"id":             float64(7),
			"name":           "Figure A",
			"selling_price":  float64(1290),
			"product_status": "in-stock",
			"product_type":   "Plush",
			"quantity":       float64(3),
			"slug":           "figure-a",
		})

		assert.Equal(t, int64(7), p.ID)
		assert.Equal(t, "Figure A", p.Name)
		assert.Equal(t, float64(1290), p.SellingPrice)
		assert.Equal(t, "in-stock", p.Status)
		assert.Equal(t, "Plush", p.ProductType)
		assert.Equal(t, 3, p.Quantity)
		assert.Equal(t, "figure-a", p.Slug)
	})
}

func TestNormalizeProductSlugFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{
			name: "explicit slug wins",
			raw:  map[string]any{"id": float64(42), "slug": "limited-keychain"},
			want: "limited-keychain",
		},
		{
			name: "missing slug falls back to id",
			raw:  map[string]any{"id": float64(42)},
			want: "42",
		},
		{
			name: "empty slug falls back to id",
			raw:  map[string]any{"id": float64(42), "slug": ""},
			want: "42",
		},
		{
			name: "no slug and no id",
			raw:  map[string]any{},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := storefront.NormalizeProduct(tt.raw)
			assert.Equal(t, tt.want, p.Slug)
		})
	}
}

func TestNormalizeProductImages(t *testing.T) {
	t.Run("malformed entries are dropped, order preserved", func(t *testing.T) {
		p := storefront.NormalizeProduct(map[string]any{
			"product_images": []any{
				nil,
				map[string]any{"image_url": "a"},
				map[string]any{"no_url": true},
				map[string]any{"image_url": "b"},
			},
		})

		require.Len(t, p.Images, 2)
		assert.Equal(t, "a", p.Images[0].ImageURL)
		assert.Equal(t, "b", p.Images[1].ImageURL)
	})

	t.Run("non-list value yields empty list", func(t *testing.T) {
		p := storefront.NormalizeProduct(map[string]any{
			"product_images": "not-a-list",
		})
		require.NotNil(t, p.Images)
		assert.Empty(t, p.Images)
	})

	t.Run("image fields are coerced", func(t *testing.T) {
		p := storefront.NormalizeProduct(map[string]any{
			"product_images": []any{
				map[string]any{"id": float64(9), "image_url": "https://cdn/x.jpg", "order": float64(2)},
			},
		})
		require.Len(t, p.Images, 1)
		assert.Equal(t, int64(9), p.Images[0].ID)
		assert.Equal(t, 2, p.Images[0].Order)
	})
}

func TestNormalizeProductTags(t *testing.T) {
	tests := []struct {
		name string
		tags any
		want []string
	}{
		{
			name: "string tags",
			tags: []any{"new", "limited"},
			want: []string{"new", "limited"},
		},
		{
			name: "entity tags use name",
			tags: []any{map[string]any{"name": "sale"}},
			want: []string{"sale"},
		},
		{
			name: "non-array yields empty list",
			tags: "not-an-array",
			want: []string{},
		},
		{
			name: "blank entries are filtered",
			tags: []any{"", "kept", map[string]any{"name": ""}},
			want: []string{"kept"},
		},
		{
			name: "missing tags yield empty list",
			tags: nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := storefront.NormalizeProduct(map[string]any{"tags": tt.tags})
			assert.Equal(t, tt.want, p.Tags)
		})
	}
}

func TestNormalizeBanner(t *testing.T) {
	b := storefront.NormalizeBanner(map[string]any{
		"id":        "banner-1",
		"image_url": "https://cdn/banner.jpg",
		"position":  float64(2),
		"active":    true,
	})

	assert.Equal(t, "banner-1", b.ID)
	assert.Equal(t, "https://cdn/banner.jpg", b.ImageURL)
	assert.Equal(t, 2, b.Position)
	assert.True(t, b.Active)

	empty := storefront.NormalizeBanner(map[string]any{})
	assert.Equal(t, "", empty.ID)
	assert.False(t, empty.Active)
}

func TestNormalizeCategoryBanner(t *testing.T) {
	cb := storefront.NormalizeCategoryBanner(map[string]any{
		"id":            "cb-1",
		"category_id":   float64(5),
		"category_name": "Plush",
		"image_url":     "https://cdn/cb.jpg",
		"active":        "true",
	})

	assert.Equal(t, "cb-1", cb.ID)
	assert.Equal(t, int64(5), cb.CategoryID)
	assert.Equal(t, "Plush", cb.CategoryName)
	assert.True(t, cb.Active)
}

func TestNormalizeOrder(t *testing.T) {
	o := storefront.NormalizeOrder(map[string]any{
		"id":                  float64(11),
		"total_selling_price": float64(1590),
		"deposit":             float64(500),
		"items": []any{
			map[string]any{"id": float64(1), "name": "Figure", "price": float64(1290), "quantity": float64(1)},
			"not-an-item",
		},
		"customer_info": map[string]any{
			"name":  "Somchai",
			"phone": "0891234567",
		},
	})

	assert.Equal(t, int64(11), o.ID)
	assert.Equal(t, float64(1590), o.TotalPrice)
	assert.Equal(t, float64(500), o.Deposit)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "Figure", o.Items[0].Name)
	assert.Equal(t, 1, o.Items[0].Quantity)
	assert.Equal(t, "Somchai", o.Customer.Name)
	assert.Equal(t, "0891234567", o.Customer.Phone)

	empty := storefront.NormalizeOrder(map[string]any{})
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.Items)
	assert.Equal(t, storefront.CustomerInfo{}, empty.Customer)
}

func TestNormalizeCoercion(t *testing.T) {
	// Row values arrive as float64 from JSON and int32/int64 from pgx scans.
	p := storefront.NormalizeProduct(map[string]any{
		"id":       int64(3),
		"quantity": int32(4),
		"name":     "from pgx",
	})
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, 4, p.Quantity)

	q := storefront.NormalizeProduct(map[string]any{
		"selling_price": "129.50",
		"quantity":      "6",
	})
	assert.Equal(t, 129.5, q.SellingPrice)
	assert.Equal(t, 6, q.Quantity)
}
