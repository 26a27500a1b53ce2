package domain

import "time"

// ProductSnapshot is the denormalized display data captured when a line
// item is added. It is never re-synced with the live catalog, so later
// catalog price changes do not affect items already in the cart.
type ProductSnapshot struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Slug              string   `json:"slug,omitempty"`
	PriceCents        int64    `json:"price"`
	ComparePriceCents *int64   `json:"comparePrice,omitempty"`
	VariantPriceCents *int64   `json:"variantPrice,omitempty"`
	Images            []string `json:"images,omitempty"`
	Status            string   `json:"status"`
	StockQuantity     int      `json:"quantity"`
}

// LineItem is one cart entry: a quantity of a specific product/variant
// plus its snapshot. ID is the composite key derived from ProductID and
// the optional VariantID; it is unique within a cart.
type LineItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	VariantID string          `json:"variantId,omitempty"`
	Quantity  int             `json:"quantity"`
	Product   ProductSnapshot `json:"product"`
	AddedAt   time.Time       `json:"addedAt"`
}

// Shipping methods supported by the storefront.
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
	ShippingPickup   = "pickup"
)

// Coupon types.
const (
	CouponPercentage = "percentage"
	CouponFixed      = "fixed"
)

// Coupon is a session-scoped discount. Value is percent points for
// percentage coupons and cents for fixed ones.
type Coupon struct {
	Code             string `json:"code"`
	Type             string `json:"type"`
	Value            int64  `json:"value"`
	MinAmountCents   int64  `json:"minAmountCents,omitempty"`
	MaxDiscountCents int64  `json:"maxDiscountCents,omitempty"`
	Description      string `json:"description,omitempty"`
}

// CartSummary is the checkout-facing breakdown computed from the current
// items; nothing in it is stored independently.
type CartSummary struct {
	SubtotalCents int64 `json:"subtotalCents"`
	ShippingCents int64 `json:"shippingCents"`
	DiscountCents int64 `json:"discountCents"`
	TaxCents      int64 `json:"taxCents"`
	TotalCents    int64 `json:"totalCents"`
	ItemCount     int   `json:"itemCount"`
}
