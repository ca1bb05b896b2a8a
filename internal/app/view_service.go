package app

import (
	"context"

	"github.com/cimillas/lottery-tickets/internal/domain"
)

type ViewRepository interface {
	GetRound(ctx context.Context, roundNo int64) (domain.Round, error)
	GetLatestRound(ctx context.Context) (domain.Round, error)
	ListAllocations(ctx context.Context, roundNo int64) ([]domain.AllocationEntry, error)
}

// ViewService projects stored round state into the flattened ticket listing.
type ViewService struct {
	repo ViewRepository
}

func NewViewService(repo ViewRepository) *ViewService {
	return &ViewService{repo: repo}
}

// Compose expands the round identified by roundNo (or the latest round when
// roundNo is nil) into one record per ticket number, attributed to the
// owning identity for booked and sold numbers. Output order is booked, then
// available, then sold; counts are per expanded number.
func (s *ViewService) Compose(ctx context.Context, roundNo *int64) (domain.RoundView, error) {
	var (
		round domain.Round
		err   error
	)
	if roundNo != nil {
		round, err = s.repo.GetRound(ctx, *roundNo)
	} else {
		round, err = s.repo.GetLatestRound(ctx)
	}
	if err != nil {
		return domain.RoundView{}, err
	}

	entries, err := s.repo.ListAllocations(ctx, round.RoundNo)
	if err != nil {
		return domain.RoundView{}, err
	}

	var booked, sold []domain.TicketRecord
	for _, entry := range entries {
		user := entry.Identity.DisplayName()
		for _, number := range entry.Allocation.TicketNumbers {
			rec := domain.TicketRecord{
				RoundNo:      round.RoundNo,
				TicketNumber: number,
				User:         user,
			}
			if entry.Allocation.Kind == domain.AllocationSold {
				rec.Sold = true
				sold = append(sold, rec)
			} else {
				booked = append(booked, rec)
			}
		}
	}

	tickets := make([]domain.TicketRecord, 0, len(booked)+len(round.AvailableTickets)+len(sold))
	tickets = append(tickets, booked...)
	for _, number := range round.AvailableTickets {
		tickets = append(tickets, domain.TicketRecord{
			RoundNo:      round.RoundNo,
			TicketNumber: number,
			Availability: true,
		})
	}
	tickets = append(tickets, sold...)

	return domain.RoundView{
		Tickets:     tickets,
		BookedCount: len(booked),
		SoldCount:   len(sold),
	}, nil
}
