// Package abandonment watches the cart for idle sessions and sends a
// single recovery email per idle episode.
package abandonment

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"storefront-cart/internal/cart"
	"storefront-cart/internal/domain"
	"storefront-cart/internal/mail"
)

type cartState interface {
	SessionID() string
	Items() []domain.LineItem
	LastActivity() time.Time
}

type Service struct {
	cart      cartState
	mailer    mail.Sender
	recipient string
	idleAfter time.Duration
	interval  time.Duration
	logger    *log.Logger

	// lastActivity value already notified for; a new mutation resets
	// the episode and re-arms the watcher.
	notifiedFor time.Time
}

func New(cartState cartState, mailer mail.Sender, recipient string, idleAfter time.Duration, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		cart:      cartState,
		mailer:    mailer,
		recipient: recipient,
		idleAfter: idleAfter,
		interval:  time.Minute,
		logger:    logger,
	}
}

// Run polls until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx, time.Now())
		}
	}
}

// Check sends a recovery mail when the cart is non-empty and has sat
// idle past the configured window, at most once per idle episode.
// It reports whether a mail went out.
func (s *Service) Check(ctx context.Context, now time.Time) bool {
	items := s.cart.Items()
	if len(items) == 0 {
		return false
	}
	last := s.cart.LastActivity()
	if now.Sub(last) < s.idleAfter {
		return false
	}
	if s.notifiedFor.Equal(last) {
		return false
	}

	subject := "You left something in your cart"
	body := recoveryBody(items)
	if err := s.mailer.Send(ctx, s.recipient, subject, body); err != nil {
		s.logger.Printf("abandonment: session=%s send failed: %v", s.cart.SessionID(), err)
		return false
	}
	s.notifiedFor = last
	s.logger.Printf("abandonment: session=%s recovery mail sent, %d lines idle since %s", s.cart.SessionID(), len(items), last.Format(time.RFC3339))
	return true
}

func recoveryBody(items []domain.LineItem) string {
	body := "Your cart is waiting:\n\n"
	for _, item := range items {
		body += fmt.Sprintf("  %dx %s (%.2f EUR)\n", item.Quantity, item.Product.Name, float64(cart.EffectiveUnitPrice(item))/100)
	}
	body += fmt.Sprintf("\nSubtotal: %.2f EUR\n", float64(cart.Subtotal(items))/100)
	return body
}
