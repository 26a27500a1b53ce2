package mail

import "context"

// Sender delivers transactional storefront mail.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}
