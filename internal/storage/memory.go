package storage

import (
	"context"
	"sync"

	"storefront-cart/internal/domain"
)

// Memory keeps the persisted cart in process memory. Used by tests and
// as the fallback when no cart file is configured.
type Memory struct {
	mu    sync.Mutex
	items []domain.LineItem

	// LoadErr and SaveErr, when set, are returned by the respective
	// operations. Tests use these to exercise degraded persistence.
	LoadErr error
	SaveErr error

	// Saves counts successful Save calls.
	Saves int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) ([]domain.LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]domain.LineItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *Memory) Save(_ context.Context, items []domain.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.items = make([]domain.LineItem, len(items))
	copy(m.items, items)
	m.Saves++
	return nil
}

// Seed replaces the persisted items directly, bypassing Save accounting.
func (m *Memory) Seed(items []domain.LineItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make([]domain.LineItem, len(items))
	copy(m.items, items)
}
