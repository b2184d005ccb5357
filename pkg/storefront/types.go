package storefront

import "time"

// ProductStatus is the domain type for product lifecycle states.
type ProductStatus string

// Product status constants (typed).
const (
	ProductStatusPreOrder ProductStatus = "pre-order"
	ProductStatusInStock  ProductStatus = "in-stock"
	ProductStatusSoldOut  ProductStatus = "sold-out"
)

// Product type constants. ProductTypeETC is the generic bucket a product
// falls into when no explicit type is recorded.
const (
	ProductTypeKeychain     = "Keyring/Keychain"
	ProductTypeMiniFigure   = "Mini Figure"
	ProductTypeMediumFigure = "Medium Figure/Statue"
	ProductTypeBigFigure    = "Big Figure/Statue"
	ProductTypePlush        = "Plush"
	ProductTypeStandee      = "Standee"
	ProductTypeClothing     = "Clothing & Accessories"
	ProductTypeETC          = "ETC"
)

// ProductImage is one entry in a product's image gallery. Order is the
// display ordering key, lowest first.
type ProductImage struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
	Order    int    `json:"order"`
}

// Product is the public-facing product record. Every field is always
// populated after normalization: absent source fields resolve to the zero
// value or documented default, never to a partially-undefined record.
type Product struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	SellingPrice float64        `json:"selling_price"`
	Category     string         `json:"category"`
	Description  string         `json:"description"`
	Image        string         `json:"image"`
	Status       string         `json:"product_status"`
	SKU          string         `json:"sku"`
	Quantity     int            `json:"quantity"`
	ShipmentDate string         `json:"shipment_date"`
	ProductType  string         `json:"product_type"`
	Slug         string         `json:"slug"`
	Tags         []string       `json:"tags"`
	Images       []ProductImage `json:"product_images"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// Banner is a homepage carousel banner.
type Banner struct {
	ID        string `json:"id"`
	ImageURL  string `json:"image_url"`
	Position  int    `json:"position"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CategoryBanner links a banner image to a category page. CategoryID and
// CategoryName are both optional; either may identify the category.
type CategoryBanner struct {
	ID           string `json:"id"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	ImageURL     string `json:"image_url"`
	LinkURL      string `json:"link_url"`
	Active       bool   `json:"active"`
	UpdatedBy    string `json:"updated_by"`
	UpdatedAt    string `json:"updated_at"`
}

// OrderItem is one line item of an order.
type OrderItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
	SKU      string  `json:"sku"`
	Variant  string  `json:"variant"`
}

// CustomerInfo is the contact block embedded in an order.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Note    string `json:"note"`
	Email   string `json:"email"`
}

// Order is a customer order with its line items and adjustments.
type Order struct {
	ID             int64        `json:"id"`
	CreatedAt      string       `json:"created_at"`
	Items          []OrderItem  `json:"items"`
	Customer       CustomerInfo `json:"customer_info"`
	TotalPrice     float64      `json:"total_selling_price"`
	Status         string       `json:"status"`
	TrackingNumber string       `json:"tracking_number"`
	AdminNotes     string       `json:"admin_notes"`
	Deposit        float64      `json:"deposit"`
	ShippingCost   float64      `json:"shipping_cost"`
	Discount       float64      `json:"discount"`
	Username       string       `json:"username"`
}

// ObjectMeta contains metadata about an object in blob storage.
type ObjectMeta struct {
	Key          string
	Size         int64
	ContentType  string
	CacheControl string
	UpdatedAt    time.Time
	ETag         string
	Metadata     map[string]string
}

// UploadParams contains parameters for uploading an object to a blob store.
// Overwrite selects overwrite-on-conflict semantics: a re-upload under the
// same key replaces prior content (last writer wins).
type UploadParams struct {
	ObjectKey    string
	ContentType  string
	CacheControl string
	Overwrite    bool
}
