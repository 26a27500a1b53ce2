// Package cart exposes the storefront-facing cart API: store actions,
// derived aggregates, and the session-scoped coupon/shipping state used
// to build the checkout summary. Consumers only see this surface, so
// the store/adapter wiring behind it can change freely.
package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	cartstore "storefront-cart/internal/cart"
	"storefront-cart/internal/domain"
)

// Shipping costs and free-shipping thresholds per method, in cents.
var shippingRates = map[string]struct {
	CostCents       int64
	FreeShippingMin int64
}{
	domain.ShippingStandard: {CostCents: 990, FreeShippingMin: 19900},
	domain.ShippingExpress:  {CostCents: 1990, FreeShippingMin: 29900},
	domain.ShippingPickup:   {CostCents: 0, FreeShippingMin: 0},
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	store    *cartstore.Store
	products productRepo
	taxRate  float64

	mu       sync.Mutex
	coupon   *domain.Coupon
	shipping string
}

func New(store *cartstore.Store, products productRepo, taxRate float64) *Service {
	if taxRate <= 0 {
		taxRate = cartstore.DefaultTaxRate
	}
	return &Service{
		store:    store,
		products: products,
		taxRate:  taxRate,
		shipping: domain.ShippingStandard,
	}
}

// AddProduct resolves the catalog entry, captures its display snapshot
// at add-time, and adds the quantity to the cart. The snapshot is
// frozen: later catalog changes do not touch existing lines.
func (s *Service) AddProduct(ctx context.Context, productID, variantID string, quantity int) (domain.LineItem, error) {
	if quantity < 1 {
		return domain.LineItem{}, domain.ErrInvalidQuantity
	}
	if s.products == nil {
		return domain.LineItem{}, errors.New("product repository unavailable")
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.LineItem{}, errors.New("product not found")
		}
		return domain.LineItem{}, err
	}

	var variant *domain.ProductVariant
	if strings.TrimSpace(variantID) != "" {
		variant = product.Variant(variantID)
		if variant == nil {
			return domain.LineItem{}, errors.New("variant not found")
		}
	}
	if !product.InStock(variant) {
		return domain.LineItem{}, errors.New("product out of stock")
	}

	snap := snapshotFromProduct(*product, variant)
	return s.store.AddItem(ctx, cartstore.AddInput{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		Product:   snap,
	})
}

func (s *Service) RemoveItem(ctx context.Context, id string) {
	s.store.RemoveItem(ctx, id)
}

func (s *Service) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.store.UpdateQuantity(ctx, id, quantity)
}

// Clear empties the cart and drops the session coupon. Checkout calls
// this on success.
func (s *Service) Clear(ctx context.Context) {
	s.store.Clear(ctx)
	s.mu.Lock()
	s.coupon = nil
	s.mu.Unlock()
}

func (s *Service) OpenCart()        { s.store.Open() }
func (s *Service) CloseCart()       { s.store.Close() }
func (s *Service) ToggleCart() bool { return s.store.Toggle() }
func (s *Service) IsOpen() bool     { return s.store.IsOpen() }

func (s *Service) Items() []domain.LineItem { return s.store.Items() }
func (s *Service) ItemCount() int           { return s.store.ItemCount() }
func (s *Service) Subtotal() int64          { return s.store.Subtotal() }
func (s *Service) IsEmpty() bool            { return s.store.IsEmpty() }

func (s *Service) IsInCart(productID, variantID string) bool {
	return s.store.IsInCart(productID, variantID)
}

func (s *Service) GetItem(productID, variantID string) (domain.LineItem, bool) {
	return s.store.Get(productID, variantID)
}

// TaxAmount computes tax on the current subtotal. A non-positive rate
// falls back to the configured storefront rate.
func (s *Service) TaxAmount(rate float64) int64 {
	if rate <= 0 {
		rate = s.taxRate
	}
	return cartstore.TaxAmount(s.store.Items(), rate)
}

// Total is subtotal plus tax at the given (or configured) rate.
func (s *Service) Total(rate float64) int64 {
	if rate <= 0 {
		rate = s.taxRate
	}
	return cartstore.Total(s.store.Items(), rate)
}

// ApplyCoupon attaches a coupon to the session. Eligibility against the
// minimum amount is evaluated at summary time, not here, so a coupon
// applied to a small cart activates once the cart grows.
func (s *Service) ApplyCoupon(c domain.Coupon) error {
	if strings.TrimSpace(c.Code) == "" {
		return errors.New("coupon code required")
	}
	if c.Type != domain.CouponPercentage && c.Type != domain.CouponFixed {
		return errors.New("unsupported coupon type")
	}
	if c.Value <= 0 {
		return errors.New("coupon value must be positive")
	}
	s.mu.Lock()
	s.coupon = &c
	s.mu.Unlock()
	return nil
}

func (s *Service) RemoveCoupon() {
	s.mu.Lock()
	s.coupon = nil
	s.mu.Unlock()
}

func (s *Service) Coupon() *domain.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

func (s *Service) SetShippingMethod(method string) error {
	if _, ok := shippingRates[method]; !ok {
		return errors.New("unsupported shipping method")
	}
	s.mu.Lock()
	s.shipping = method
	s.mu.Unlock()
	return nil
}

func (s *Service) ShippingMethod() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

// Summary builds the checkout breakdown from the current items plus the
// session coupon and shipping method. A non-positive rate uses the
// configured storefront rate. Tax applies to subtotal minus discount;
// the total never goes below zero.
func (s *Service) Summary(rate float64) domain.CartSummary {
	if rate <= 0 {
		rate = s.taxRate
	}
	items := s.store.Items()
	subtotal := cartstore.Subtotal(items)

	s.mu.Lock()
	coupon := s.coupon
	method := s.shipping
	s.mu.Unlock()

	var shipping int64
	if method != domain.ShippingPickup {
		r := shippingRates[method]
		if subtotal < r.FreeShippingMin {
			shipping = r.CostCents
		}
	}

	discount := discountFor(coupon, subtotal)
	tax := roundCents(float64(subtotal-discount) * rate)
	total := subtotal + shipping + tax - discount
	if total < 0 {
		total = 0
	}

	return domain.CartSummary{
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		DiscountCents: discount,
		TaxCents:      tax,
		TotalCents:    total,
		ItemCount:     cartstore.ItemCount(items),
	}
}

func discountFor(coupon *domain.Coupon, subtotal int64) int64 {
	if coupon == nil {
		return 0
	}
	if coupon.MinAmountCents > 0 && subtotal < coupon.MinAmountCents {
		return 0
	}
	var discount int64
	switch coupon.Type {
	case domain.CouponPercentage:
		discount = roundCents(float64(subtotal) * float64(coupon.Value) / 100)
		if coupon.MaxDiscountCents > 0 && discount > coupon.MaxDiscountCents {
			discount = coupon.MaxDiscountCents
		}
	case domain.CouponFixed:
		discount = coupon.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

func roundCents(v float64) int64 {
	if v >= 0 {
		return int64(v + 0.5)
	}
	return int64(v - 0.5)
}

func snapshotFromProduct(p domain.Product, variant *domain.ProductVariant) domain.ProductSnapshot {
	snap := domain.ProductSnapshot{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		PriceCents:        p.PriceCents,
		ComparePriceCents: p.ComparePriceCents,
		Images:            p.Images,
		Status:            p.Status,
		StockQuantity:     p.StockQuantity,
	}
	if variant != nil {
		if variant.PriceCents != nil {
			price := *variant.PriceCents
			snap.VariantPriceCents = &price
		}
		snap.StockQuantity = variant.StockQuantity
	}
	return snap
}
