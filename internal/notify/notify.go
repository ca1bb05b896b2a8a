// Package notify delivers booking confirmations to ticket buyers. Delivery
// is best-effort: the allocation engine never rolls a booking back because a
// confirmation failed.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/cimillas/lottery-tickets/internal/domain"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Confirmation builds the subject and body for a booking confirmation.
func Confirmation(identity domain.Identity, ticketNumbers []string) (subject, body string) {
	subject = fmt.Sprintf("Lottery tickets purchase confirmation for %s", identity.Email)
	name := identity.FullName
	if name == "" {
		name = identity.Email
	}
	body = fmt.Sprintf(
		"Dear %s,\n\nThank you for purchasing the following lottery tickets: %s.\n\nRegards,\nThe Lottery Team",
		name,
		strings.Join(ticketNumbers, ", "),
	)
	return subject, body
}

// Nop discards every message. Used in tests and when no SMTP relay is
// configured.
type Nop struct{}

func (Nop) Send(context.Context, string, string, string) error {
	return nil
}
