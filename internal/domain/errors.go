package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmailRequired      = errors.New("email required")
	ErrInvalidTicketCount = errors.New("invalid ticket count")
	ErrNoTicketNumbers    = errors.New("no ticket numbers requested")
	ErrRoundNotFound      = errors.New("round not found")
	ErrRoundConflict      = errors.New("round number conflict")
	ErrAllocationConflict = errors.New("allocation conflict")
)

// TicketsUnavailableError reports requested numbers that are neither in the
// round's available set nor already part of the requester's own booking.
// Booking is all-or-nothing: none of the requested numbers are allocated
// when this is returned.
type TicketsUnavailableError struct {
	RoundNo       int64
	TicketNumbers []string
}

func (e *TicketsUnavailableError) Error() string {
	return fmt.Sprintf("tickets not available in round %d: %s", e.RoundNo, strings.Join(e.TicketNumbers, ", "))
}
