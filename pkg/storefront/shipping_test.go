package storefront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wishyoulucky/storefront/pkg/storefront"
)

func TestShippingFeeFor(t *testing.T) {
	tests := []struct {
		productType string
		want        float64
	}{
		{"Keyring/Keychain", 35},
		{"Keychain", 35},
		{"Mini Figure", 50},
		{"Medium Figure/Statue", 80},
		{"Big Figure/Statue", 0},
		{"Plush", 40},
		{"Standee", 35},
		{"Clothing & Accessories", 40},
		{"ETC", 50},
		{"", 50},
		{"Something Unknown", 50},
	}

	for _, tt := range tests {
		name := tt.productType
		if name == "" {
			name = "empty defaults to ETC"
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, storefront.ShippingFeeFor(tt.productType))
		})
	}
}

func TestCalculateShipping(t *testing.T) {
	t.Run("sums per-unit fees over quantities", func(t *testing.T) {
		items := []map[string]any{
			{"product_type": "Plush", "quantity": float64(2)},
			{"product_type": "Big Figure/Statue", "quantity": float64(1)},
			{"product_type": "Keychain", "quantity": float64(3)},
		}
		// 2*40 + 1*0 + 3*35
		assert.Equal(t, float64(185), storefront.CalculateShipping(items))
	})

	t.Run("missing fields fall back to defaults", func(t *testing.T) {
		items := []map[string]any{
			{"quantity": float64(2)}, // no type: ETC rate
		}
		assert.Equal(t, float64(100), storefront.CalculateShipping(items))
	})

	t.Run("empty cart ships free", func(t *testing.T) {
		assert.Equal(t, float64(0), storefront.CalculateShipping(nil))
	})

	t.Run("zero quantity contributes nothing", func(t *testing.T) {
		items := []map[string]any{
			{"product_type": "Plush"},
		}
		assert.Equal(t, float64(0), storefront.CalculateShipping(items))
	})
}
