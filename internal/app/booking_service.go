package app

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cimillas/lottery-tickets/internal/clock"
	"github.com/cimillas/lottery-tickets/internal/domain"
	"github.com/cimillas/lottery-tickets/internal/metrics"
	"github.com/cimillas/lottery-tickets/internal/notify"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetRoundForUpdate(ctx context.Context, roundNo int64) (domain.Round, error)
	FindAllocation(ctx context.Context, roundNo int64, identityID string, kind domain.AllocationKind) (*domain.Allocation, error)
	InsertAllocation(ctx context.Context, alloc domain.Allocation) error
	UpdateAllocationNumbers(ctx context.Context, allocationID string, numbers []string, updatedAt time.Time) error
	UpdateAvailableTickets(ctx context.Context, roundNo int64, numbers []string) error
}

// IdentityResolver is the slice of IdentityService the engine needs.
type IdentityResolver interface {
	Resolve(ctx context.Context, p domain.Profile) (domain.Identity, error)
}

// BookingService is the allocation engine: it moves ticket numbers from a
// round's available set into the requester's booking, enforcing at-most-once
// assignment of each number.
type BookingService struct {
	repo       BookingRepository
	identities IdentityResolver
	sender     notify.Sender
	clock      clock.Clock
	logger     *zap.Logger
}

func NewBookingService(repo BookingRepository, identities IdentityResolver, sender notify.Sender, clk clock.Clock, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		repo:       repo,
		identities: identities,
		sender:     sender,
		clock:      clk,
		logger:     logger,
	}
}

type BookInput struct {
	RoundNo       int64
	TicketNumbers []string
	Profile       domain.Profile
}

type BookResult struct {
	Identity         domain.Identity
	TicketNumbers    []string
	UpdatedAvailable []string
	// NotifyErr reports a failed confirmation delivery. The booking itself
	// is already committed when it is set.
	NotifyErr error
}

// Book validates the requested numbers against the round's available set and
// merges them into the requester's booking, all inside one transaction that
// holds a row lock on the round. Concurrent bookings against the same round
// therefore serialize, and a number can only ever be granted once.
//
// A requested number must be available or already part of the requester's own
// booking (re-requesting your own number is a no-op). Numbers held by anyone
// else fail the whole call with TicketsUnavailableError and nothing is
// allocated.
func (s *BookingService) Book(ctx context.Context, in BookInput) (BookResult, error) {
	requested := normalizeNumbers(in.TicketNumbers)
	if len(requested) == 0 {
		return BookResult{}, domain.ErrNoTicketNumbers
	}

	identity, err := s.identities.Resolve(ctx, in.Profile)
	if err != nil {
		return BookResult{}, err
	}

	now := s.clock.Now()
	var result BookResult

	err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
		round, err := s.repo.GetRoundForUpdate(txCtx, in.RoundNo)
		if err != nil {
			return err
		}

		existing, err := s.repo.FindAllocation(txCtx, in.RoundNo, identity.ID, domain.AllocationBooked)
		if err != nil {
			return err
		}

		available := make(map[string]struct{}, len(round.AvailableTickets))
		for _, n := range round.AvailableTickets {
			available[n] = struct{}{}
		}
		owned := make(map[string]struct{})
		if existing != nil {
			for _, n := range existing.TicketNumbers {
				owned[n] = struct{}{}
			}
		}

		var missing []string
		for _, n := range requested {
			if _, ok := available[n]; ok {
				continue
			}
			if _, ok := owned[n]; ok {
				continue
			}
			missing = append(missing, n)
		}
		if len(missing) > 0 {
			return &domain.TicketsUnavailableError{RoundNo: in.RoundNo, TicketNumbers: missing}
		}

		removing := make(map[string]struct{}, len(requested))
		for _, n := range requested {
			removing[n] = struct{}{}
		}
		updated := make([]string, 0, len(round.AvailableTickets))
		for _, n := range round.AvailableTickets {
			if _, ok := removing[n]; !ok {
				updated = append(updated, n)
			}
		}

		if existing != nil {
			merged := normalizeNumbers(append(existing.TicketNumbers, requested...))
			if err := s.repo.UpdateAllocationNumbers(txCtx, existing.ID, merged, now); err != nil {
				return err
			}
		} else {
			alloc := domain.Allocation{
				ID:            uuid.NewString(),
				RoundNo:       in.RoundNo,
				IdentityID:    identity.ID,
				Kind:          domain.AllocationBooked,
				TicketNumbers: requested,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := s.repo.InsertAllocation(txCtx, alloc); err != nil {
				return err
			}
		}

		if err := s.repo.UpdateAvailableTickets(txCtx, in.RoundNo, updated); err != nil {
			return err
		}

		result = BookResult{
			Identity:         identity,
			TicketNumbers:    requested,
			UpdatedAvailable: updated,
		}
		return nil
	})
	if err != nil {
		var unavailable *domain.TicketsUnavailableError
		if errors.As(err, &unavailable) {
			metrics.BookingConflict()
		}
		return BookResult{}, err
	}
	metrics.TicketsBooked(len(requested))

	if s.sender != nil {
		subject, body := notify.Confirmation(identity, requested)
		if err := s.sender.Send(ctx, identity.Email, subject, body); err != nil {
			s.logger.Warn("booking confirmation delivery failed",
				zap.Int64("round_no", in.RoundNo),
				zap.String("email", identity.Email),
				zap.Error(err),
			)
			result.NotifyErr = err
		}
	}
	return result, nil
}

// normalizeNumbers trims, drops blanks, de-duplicates and sorts. Numbers are
// zero-padded so lexical order matches numeric order.
func normalizeNumbers(numbers []string) []string {
	seen := make(map[string]struct{}, len(numbers))
	out := make([]string, 0, len(numbers))
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
