package cart

import (
	"math"

	"storefront-cart/internal/domain"
)

// DefaultTaxRate is the storefront's VAT rate (Portuguese IVA). The
// rate is a presentation-time parameter, never persisted.
const DefaultTaxRate = 0.23

// EffectiveUnitPrice prefers the variant price override captured in the
// snapshot over the base product price.
func EffectiveUnitPrice(item domain.LineItem) int64 {
	if item.Product.VariantPriceCents != nil {
		return *item.Product.VariantPriceCents
	}
	return item.Product.PriceCents
}

func Subtotal(items []domain.LineItem) int64 {
	var total int64
	for _, item := range items {
		total += EffectiveUnitPrice(item) * int64(item.Quantity)
	}
	return total
}

func ItemCount(items []domain.LineItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func TaxAmount(items []domain.LineItem, rate float64) int64 {
	return int64(math.Round(float64(Subtotal(items)) * rate))
}

func Total(items []domain.LineItem, rate float64) int64 {
	return Subtotal(items) + TaxAmount(items, rate)
}
