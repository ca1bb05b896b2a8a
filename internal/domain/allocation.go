package domain

import "time"

type AllocationKind string

const (
	// AllocationBooked is a reservation; the same identity can keep booking
	// more numbers into it within the round.
	AllocationBooked AllocationKind = "booked"
	// AllocationSold is terminal; sold numbers never move again.
	AllocationSold AllocationKind = "sold"
)

// Allocation records the ticket numbers assigned to one identity within a
// round. At most one allocation exists per (round, identity, kind).
type Allocation struct {
	ID            string
	RoundNo       int64
	IdentityID    string
	Kind          AllocationKind
	TicketNumbers []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AllocationEntry pairs an allocation with its owning identity for reporting.
type AllocationEntry struct {
	Allocation Allocation
	Identity   Identity
}
