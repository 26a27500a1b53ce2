package cart

import (
	"testing"

	"storefront-cart/internal/domain"
)

func TestEffectiveUnitPricePrefersVariantOverride(t *testing.T) {
	override := int64(2590)
	item := domain.LineItem{Product: domain.ProductSnapshot{PriceCents: 1490, VariantPriceCents: &override}}
	if got := EffectiveUnitPrice(item); got != 2590 {
		t.Fatalf("expected override 2590, got %d", got)
	}
	item.Product.VariantPriceCents = nil
	if got := EffectiveUnitPrice(item); got != 1490 {
		t.Fatalf("expected base 1490, got %d", got)
	}
}

func TestTaxAndTotal(t *testing.T) {
	items := []domain.LineItem{
		{Quantity: 2, Product: domain.ProductSnapshot{PriceCents: 25}},
		{Quantity: 1, Product: domain.ProductSnapshot{PriceCents: 50}},
	}
	if got := Subtotal(items); got != 100 {
		t.Fatalf("subtotal=%d want 100", got)
	}
	if got := TaxAmount(items, 0.23); got != 23 {
		t.Fatalf("tax=%d want 23", got)
	}
	if got := Total(items, 0.23); got != 123 {
		t.Fatalf("total=%d want 123", got)
	}
}

func TestTaxAmountRounds(t *testing.T) {
	items := []domain.LineItem{{Quantity: 1, Product: domain.ProductSnapshot{PriceCents: 1499}}}
	// 1499 * 0.23 = 344.77 -> 345
	if got := TaxAmount(items, DefaultTaxRate); got != 345 {
		t.Fatalf("tax=%d want 345", got)
	}
}

func TestAggregatesOnEmptyList(t *testing.T) {
	if Subtotal(nil) != 0 || ItemCount(nil) != 0 || TaxAmount(nil, DefaultTaxRate) != 0 || Total(nil, DefaultTaxRate) != 0 {
		t.Fatalf("empty list aggregates must all be zero")
	}
}
