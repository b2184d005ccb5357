package storefront

import (
	"fmt"
	"strconv"
)

// NormalizeProduct converts an untyped, possibly-partial raw row into a
// fully-defaulted Product. It is total over all inputs, including the empty
// map: missing, nil or wrongly-shaped fields resolve to documented defaults
// and never raise an error. Upstream rows carry no schema guarantee, which
// is exactly why this exists; callers needing strict validation must add a
// separate validation layer on top.
func NormalizeProduct(raw map[string]any) Product {
	p := Product{
		ID:           asInt64(raw["id"]),
		Name:         asString(raw["name"]),
		SellingPrice: asFloat(raw["selling_price"]),
		Category:     asString(raw["category"]),
		Description:  asString(raw["description"]),
		Image:        asString(raw["image"]),
		Status:       stringOr(raw["product_status"], string(ProductStatusPreOrder)),
		SKU:          asString(raw["sku"]),
		Quantity:     int(asInt64(raw["quantity"])),
		ShipmentDate: asString(raw["shipment_date"]),
		ProductType:  stringOr(raw["product_type"], ProductTypeETC),
		Slug:         asString(raw["slug"]),
		CreatedAt:    asString(raw["created_at"]),
		UpdatedAt:    asString(raw["updated_at"]),
		Tags:         normalizeTags(raw["tags"]),
		Images:       normalizeProductImages(raw["product_images"]),
	}

	// Every product gets a non-empty slug: fall back to the identifier.
	if p.Slug == "" {
		p.Slug = strconv.FormatInt(p.ID, 10)
	}

	return p
}

// NormalizeBanner applies the same total-defaulting strategy to a raw
// banner row.
func NormalizeBanner(raw map[string]any) Banner {
	return Banner{
		ID:        asString(raw["id"]),
		ImageURL:  asString(raw["image_url"]),
		Position:  int(asInt64(raw["position"])),
		Active:    asBool(raw["active"]),
		CreatedAt: asString(raw["created_at"]),
		UpdatedAt: asString(raw["updated_at"]),
	}
}

// NormalizeCategoryBanner applies the same total-defaulting strategy to a
// raw category-banner row.
func NormalizeCategoryBanner(raw map[string]any) CategoryBanner {
	return CategoryBanner{
		ID:           asString(raw["id"]),
		CategoryID:   asInt64(raw["category_id"]),
		CategoryName: asString(raw["category_name"]),
		ImageURL:     asString(raw["image_url"]),
		LinkURL:      asString(raw["link_url"]),
		Active:       asBool(raw["active"]),
		UpdatedBy:    asString(raw["updated_by"]),
		UpdatedAt:    asString(raw["updated_at"]),
	}
}

// NormalizeOrder applies the same total-defaulting strategy to a raw order
// row, including its nested line items and customer block.
func NormalizeOrder(raw map[string]any) Order {
	o := Order{
		ID:             asInt64(raw["id"]),
		CreatedAt:      asString(raw["created_at"]),
		TotalPrice:     asFloat(raw["total_selling_price"]),
		Status:         asString(raw["status"]),
		TrackingNumber: asString(raw["tracking_number"]),
		AdminNotes:     asString(raw["admin_notes"]),
		Deposit:        asFloat(raw["deposit"]),
		ShippingCost:   asFloat(raw["shipping_cost"]),
		Discount:       asFloat(raw["discount"]),
		Username:       asString(raw["username"]),
		Items:          normalizeOrderItems(raw["items"]),
	}

	if customer, ok := raw["customer_info"].(map[string]any); ok {
		o.Customer = CustomerInfo{
			Name:    asString(customer["name"]),
			Phone:   asString(customer["phone"]),
			Address: asString(customer["address"]),
			Note:    asString(customer["note"]),
			Email:   asString(customer["email"]),
		}
	}

	return o
}

// normalizeTags accepts either plain labels or labeled entities; anything
// else yields an empty list. Blank entries are filtered out.
func normalizeTags(value any) []string {
	entries, ok := value.([]any)
	if !ok {
		return []string{}
	}

	tags := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch v := entry.(type) {
		case string:
			if v != "" {
				tags = append(tags, v)
			}
		case map[string]any:
			if name := asString(v["name"]); name != "" {
				tags = append(tags, name)
			}
		}
	}
	return tags
}

// normalizeProductImages keeps entries that are objects carrying an
// image_url, in their original relative order. Malformed nested entries are
// dropped silently, never surfaced as an error.
func normalizeProductImages(value any) []ProductImage {
	entries, ok := value.([]any)
	if !ok {
		return []ProductImage{}
	}

	images := make([]ProductImage, 0, len(entries))
	for _, entry := range entries {
		img, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		url := asString(img["image_url"])
		if url == "" {
			continue
		}
		images = append(images, ProductImage{
			ID:       asInt64(img["id"]),
			ImageURL: url,
			Order:    int(asInt64(img["order"])),
		})
	}
	return images
}

func normalizeOrderItems(value any) []OrderItem {
	entries, ok := value.([]any)
	if !ok {
		return []OrderItem{}
	}

	items := make([]OrderItem, 0, len(entries))
	for _, entry := range entries {
		raw, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, OrderItem{
			ID:       asInt64(raw["id"]),
			Name:     asString(raw["name"]),
			Price:    asFloat(raw["price"]),
			Quantity: int(asInt64(raw["quantity"])),
			Image:    asString(raw["image"]),
			SKU:      asString(raw["sku"]),
			Variant:  asString(raw["variant"]),
		})
	}
	return items
}

// Presence/truthiness coercion helpers. Rows arrive from JSON decoding
// (float64 numbers), from pgx row scans (int32/int64), or hand-built in
// tests, so each helper accepts the usual spread of dynamic shapes.

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func stringOr(value any, def string) string {
	if s := asString(value); s != "" {
		return s
	}
	return def
}

func asFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

func asInt64(value any) int64 {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return 0
}

func asBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return false
}
