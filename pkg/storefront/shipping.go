package storefront

// shippingByType is the per-unit shipping fee table, keyed by product type.
// Aliases map to the same fee as their canonical type. Big figures ship
// free.
var shippingByType = map[string]float64{
	ProductTypeKeychain:     35,
	"Keychain":              35,
	"Keyring":               35,
	ProductTypeMiniFigure:   50,
	ProductTypeBigFigure:    0,
	"Big Figure":            0,
	"Big Statue":            0,
	ProductTypeMediumFigure: 80,
	"Medium Figure":         80,
	"Medium Statue":         80,
	ProductTypePlush:        40,
	ProductTypeStandee:      35,
	ProductTypeClothing:     40,
	"Clothing":              40,
	"Accessories":           40,
}

// defaultShippingFee applies to ETC and any unrecognized product type.
const defaultShippingFee = 50

// ShippingFeeFor returns the per-unit shipping fee for a product type.
func ShippingFeeFor(productType string) float64 {
	if productType == "" {
		productType = ProductTypeETC
	}
	if fee, ok := shippingByType[productType]; ok {
		return fee
	}
	return defaultShippingFee
}

// CalculateShipping sums the shipping cost over raw cart items. Items are
// loosely-typed rows (same shape the normalizer consumes); product_type and
// quantity are read with the usual get-or-default coercion.
func CalculateShipping(items []map[string]any) float64 {
	var total float64
	for _, item := range items {
		fee := ShippingFeeFor(stringOr(item["product_type"], ProductTypeETC))
		total += fee * float64(asInt64(item["quantity"]))
	}
	return total
}
