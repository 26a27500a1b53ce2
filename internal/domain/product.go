package domain

import "time"

// Product status values as stored in the catalog.
const (
	ProductStatusActive   = "active"
	ProductStatusArchived = "archived"
)

type Product struct {
	ID                string           `json:"id"`
	Slug              string           `json:"slug"`
	Name              string           `json:"name"`
	Brand             string           `json:"brand,omitempty"`
	Category          string           `json:"category,omitempty"`
	Description       string           `json:"description,omitempty"`
	PriceCents        int64            `json:"priceCents"`
	ComparePriceCents *int64           `json:"comparePriceCents,omitempty"`
	Currency          string           `json:"currency"`
	Images            []string         `json:"images,omitempty"`
	Status            string           `json:"status"`
	StockQuantity     int              `json:"stockQuantity"`
	Variants          []ProductVariant `json:"variants,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
}

// ProductVariant is a sellable variation of a product (size, shade, length).
// PriceCents, when set, overrides the base product price.
type ProductVariant struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Value         string `json:"value,omitempty"`
	PriceCents    *int64 `json:"priceCents,omitempty"`
	StockQuantity int    `json:"stockQuantity"`
}

// Variant returns the variant with the given id, or nil.
func (p Product) Variant(variantID string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// InStock reports whether the product (or the given variant of it) can be
// added to a cart.
func (p Product) InStock(variant *ProductVariant) bool {
	if p.Status != ProductStatusActive {
		return false
	}
	if variant != nil {
		return variant.StockQuantity > 0
	}
	return p.StockQuantity > 0
}
