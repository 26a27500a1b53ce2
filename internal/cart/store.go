// Package cart owns the canonical in-memory line-item list and keeps a
// best-effort persisted copy through the storage adapter. Persistence
// failures are logged and swallowed: losing durability is preferable to
// losing the cart mid-session.
package cart

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-cart/internal/domain"
	"storefront-cart/internal/storage"
)

// Store is the authoritative cart state container. One instance is
// created at bootstrap and shared; a mutex serializes mutations since
// HTTP handlers run concurrently.
type Store struct {
	mu      sync.Mutex
	logger  *log.Logger
	storage storage.Store

	sessionID    string
	items        []domain.LineItem
	isOpen       bool
	hydrated     bool
	ready        chan struct{}
	lastActivity time.Time
}

func New(st storage.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{
		logger:       logger,
		storage:      st,
		sessionID:    uuid.NewString(),
		ready:        make(chan struct{}),
		lastActivity: time.Now(),
	}
}

// SessionID identifies this in-memory cart for logs and notifications.
func (s *Store) SessionID() string {
	return s.sessionID
}

// LineItemID derives the composite key used for storage indexing and
// duplicate detection.
func LineItemID(productID, variantID string) string {
	if variantID == "" {
		return productID
	}
	return productID + ":" + variantID
}

// AddInput describes a line item to add.
type AddInput struct {
	ProductID string
	VariantID string
	Quantity  int
	Product   domain.ProductSnapshot
}

// AddItem merges the quantity into an existing line with the same
// product/variant pair, or appends a new line preserving insertion
// order. Quantities below one are rejected.
func (s *Store) AddItem(ctx context.Context, in AddInput) (domain.LineItem, error) {
	if in.Quantity < 1 {
		return domain.LineItem{}, domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := LineItemID(in.ProductID, in.VariantID)
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity += in.Quantity
			s.touch()
			s.persist(ctx)
			return s.items[i], nil
		}
	}

	item := domain.LineItem{
		ID:        id,
		ProductID: in.ProductID,
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
		Product:   in.Product,
		AddedAt:   time.Now().UTC(),
	}
	s.items = append(s.items, item)
	s.touch()
	s.persist(ctx)
	return item, nil
}

// RemoveItem drops the line with the given composite key. Removing an
// absent id is a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.touch()
			s.persist(ctx)
			return
		}
	}
}

// UpdateQuantity replaces the line's quantity; a quantity of zero or
// below removes the line instead.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, id)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.touch()
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and persists the empty list.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.touch()
	s.persist(ctx)
}

// Open, Close and Toggle mutate only the transient panel-visibility
// flag; it is never persisted.
func (s *Store) Open() {
	s.mu.Lock()
	s.isOpen = true
	s.mu.Unlock()
}

func (s *Store) Close() {
	s.mu.Lock()
	s.isOpen = false
	s.mu.Unlock()
}

func (s *Store) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
	return s.isOpen
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ItemCount(s.items)
}

func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Subtotal(s.items)
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// IsInCart reports whether the product (optionally narrowed to a
// variant) has a line in the cart.
func (s *Store) IsInCart(productID, variantID string) bool {
	_, ok := s.Get(productID, variantID)
	return ok
}

// Get returns the line for the product/variant pair. An empty variantID
// matches any line for the product.
func (s *Store) Get(productID, variantID string) (domain.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ProductID != productID {
			continue
		}
		if variantID != "" && item.VariantID != variantID {
			continue
		}
		return item, true
	}
	return domain.LineItem{}, false
}

// LastActivity is the time of the most recent mutation. The abandonment
// watcher keys off it.
func (s *Store) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActivity
}

func (s *Store) touch() {
	s.lastActivity = time.Now()
}

// persist writes the current list through the storage adapter. Failures
// are logged and swallowed; the in-memory cart stays authoritative for
// the rest of the session. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context) {
	if s.storage == nil {
		return
	}
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	if err := s.storage.Save(ctx, items); err != nil {
		s.logger.Printf("cart store: session=%s persist failed, continuing in memory: %v", s.sessionID, err)
	}
}
