// Package storage is the persistence boundary for the cart: a single
// slot holding the JSON-serialized line-item list. Backends report
// failures as errors; the cart engine decides what to do with them.
package storage

import (
	"context"

	"storefront-cart/internal/domain"
)

type Store interface {
	// Load reads the persisted line items. A backend with nothing
	// persisted yet returns (nil, nil).
	Load(ctx context.Context) ([]domain.LineItem, error)
	// Save replaces the persisted line items with the given list.
	Save(ctx context.Context, items []domain.LineItem) error
}
