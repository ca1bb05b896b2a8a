package app

import (
	"context"

	"github.com/cimillas/lottery-tickets/internal/clock"
	"github.com/cimillas/lottery-tickets/internal/domain"
	"github.com/cimillas/lottery-tickets/internal/metrics"
)

type RoundRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	MaxRoundNo(ctx context.Context) (int64, error)
	InsertRound(ctx context.Context, round domain.Round) error
	GetLatestRound(ctx context.Context) (domain.Round, error)
}

// createRoundAttempts bounds the insert-with-retry loop under concurrent
// round creation.
const createRoundAttempts = 5

// RoundService creates lottery rounds and reports the latest availability.
type RoundService struct {
	repo  RoundRepository
	clock clock.Clock
}

func NewRoundService(repo RoundRepository, clk clock.Clock) *RoundService {
	return &RoundService{
		repo:  repo,
		clock: clk,
	}
}

// CreateRound materializes a fresh round of count zero-padded ticket numbers
// and assigns it the next round number. Numbering is gapless: the round
// number is read as max+1 and inserted in one transaction, and the primary
// key turns a concurrent duplicate into a conflict that is retried with a
// freshly read maximum.
func (s *RoundService) CreateRound(ctx context.Context, count int) (int64, error) {
	if count <= 0 {
		return 0, domain.ErrInvalidTicketCount
	}

	numbers := domain.TicketNumbers(count)

	for attempt := 0; attempt < createRoundAttempts; attempt++ {
		var roundNo int64
		err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
			max, err := s.repo.MaxRoundNo(txCtx)
			if err != nil {
				return err
			}
			roundNo = max + 1
			return s.repo.InsertRound(txCtx, domain.Round{
				RoundNo:          roundNo,
				AvailableTickets: numbers,
				CreatedAt:        s.clock.Now(),
			})
		})
		if err == domain.ErrRoundConflict {
			// A concurrent creator claimed this number; re-read and retry.
			continue
		}
		if err != nil {
			return 0, err
		}
		metrics.RoundCreated()
		return roundNo, nil
	}
	return 0, domain.ErrRoundConflict
}

// LatestAvailability returns the most recent round with its current
// available ticket numbers.
func (s *RoundService) LatestAvailability(ctx context.Context) (domain.Round, error) {
	return s.repo.GetLatestRound(ctx)
}
