package cart

import "context"

// Hydrate loads the persisted cart into the store exactly once per
// process lifetime. It only installs the loaded items if the in-memory
// list is still empty at that moment: a user action that ran before
// hydration completed has already persisted itself and wins, and the
// stale snapshot read here is discarded. Repeat calls are no-ops.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.hydrated = true
	defer close(s.ready)

	if s.storage == nil {
		return
	}
	loaded, err := s.storage.Load(ctx)
	if err != nil {
		// Corrupt or unreadable storage hydrates as an empty cart.
		s.logger.Printf("cart store: session=%s hydration load failed, starting empty: %v", s.sessionID, err)
		return
	}
	if len(loaded) == 0 {
		return
	}
	if len(s.items) != 0 {
		s.logger.Printf("cart store: session=%s hydration skipped, cart already has %d items", s.sessionID, len(s.items))
		return
	}
	s.items = loaded
	s.logger.Printf("cart store: session=%s hydrated %d items", s.sessionID, len(loaded))
}

// Ready is closed once Hydrate has run, whether or not items were
// installed. Consumers that must not render before hydration completes
// wait on it.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Hydrated reports whether Hydrate has already run.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}
