package domain

// TicketRecord is one ticket number in the flattened round view. User is the
// owner's display string; empty for available tickets.
type TicketRecord struct {
	RoundNo      int64
	TicketNumber string
	Availability bool
	Sold         bool
	User         string
}

// RoundView is the de-duplicated, user-attributed listing of every ticket in
// a round, ordered booked, then available, then sold. Counts are per ticket
// number, not per allocation record.
type RoundView struct {
	Tickets     []TicketRecord
	BookedCount int
	SoldCount   int
}
