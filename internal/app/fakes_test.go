package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cimillas/lottery-tickets/internal/domain"
)

// fakeStore is an in-memory stand-in for the Postgres repositories. WithTx
// takes a mutex for its whole duration, mirroring the row lock that
// serializes concurrent bookings and round creations against the real store.
type fakeStore struct {
	mu          sync.Mutex
	rounds      map[int64]*domain.Round
	allocations []*domain.Allocation

	idMu       sync.Mutex
	identities map[string]domain.Identity // by email

	insertRoundConflicts int // inject this many conflicts before accepting
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rounds:     make(map[int64]*domain.Round),
		identities: make(map[string]domain.Identity),
	}
}

func (f *fakeStore) addRound(roundNo int64, available ...string) {
	f.rounds[roundNo] = &domain.Round{
		RoundNo:          roundNo,
		AvailableTickets: append([]string(nil), available...),
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

func (f *fakeStore) MaxRoundNo(context.Context) (int64, error) {
	var max int64
	for no := range f.rounds {
		if no > max {
			max = no
		}
	}
	return max, nil
}

func (f *fakeStore) InsertRound(_ context.Context, round domain.Round) error {
	if f.insertRoundConflicts > 0 {
		f.insertRoundConflicts--
		return domain.ErrRoundConflict
	}
	if _, exists := f.rounds[round.RoundNo]; exists {
		return domain.ErrRoundConflict
	}
	stored := round
	stored.AvailableTickets = append([]string(nil), round.AvailableTickets...)
	f.rounds[round.RoundNo] = &stored
	return nil
}

func (f *fakeStore) GetLatestRound(context.Context) (domain.Round, error) {
	var latest *domain.Round
	for _, round := range f.rounds {
		if latest == nil || round.RoundNo > latest.RoundNo {
			latest = round
		}
	}
	if latest == nil {
		return domain.Round{}, domain.ErrRoundNotFound
	}
	return *latest, nil
}

func (f *fakeStore) GetRound(_ context.Context, roundNo int64) (domain.Round, error) {
	round, ok := f.rounds[roundNo]
	if !ok {
		return domain.Round{}, domain.ErrRoundNotFound
	}
	return *round, nil
}

func (f *fakeStore) GetRoundForUpdate(ctx context.Context, roundNo int64) (domain.Round, error) {
	return f.GetRound(ctx, roundNo)
}

func (f *fakeStore) UpdateAvailableTickets(_ context.Context, roundNo int64, numbers []string) error {
	round, ok := f.rounds[roundNo]
	if !ok {
		return domain.ErrRoundNotFound
	}
	round.AvailableTickets = append([]string(nil), numbers...)
	return nil
}

func (f *fakeStore) FindAllocation(_ context.Context, roundNo int64, identityID string, kind domain.AllocationKind) (*domain.Allocation, error) {
	for _, alloc := range f.allocations {
		if alloc.RoundNo == roundNo && alloc.IdentityID == identityID && alloc.Kind == kind {
			copied := *alloc
			copied.TicketNumbers = append([]string(nil), alloc.TicketNumbers...)
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertAllocation(ctx context.Context, alloc domain.Allocation) error {
	if existing, _ := f.FindAllocation(ctx, alloc.RoundNo, alloc.IdentityID, alloc.Kind); existing != nil {
		return domain.ErrAllocationConflict
	}
	stored := alloc
	stored.TicketNumbers = append([]string(nil), alloc.TicketNumbers...)
	f.allocations = append(f.allocations, &stored)
	return nil
}

func (f *fakeStore) UpdateAllocationNumbers(_ context.Context, allocationID string, numbers []string, updatedAt time.Time) error {
	for _, alloc := range f.allocations {
		if alloc.ID == allocationID {
			alloc.TicketNumbers = append([]string(nil), numbers...)
			alloc.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrAllocationConflict
}

func (f *fakeStore) ListAllocations(_ context.Context, roundNo int64) ([]domain.AllocationEntry, error) {
	byID := make(map[string]domain.Identity, len(f.identities))
	for _, identity := range f.identities {
		byID[identity.ID] = identity
	}

	var entries []domain.AllocationEntry
	for _, alloc := range f.allocations {
		if alloc.RoundNo != roundNo {
			continue
		}
		entries = append(entries, domain.AllocationEntry{
			Allocation: *alloc,
			Identity:   byID[alloc.IdentityID],
		})
	}
	return entries, nil
}

// UpsertByEmail implements IdentityRepository. A separate mutex keeps it safe
// for concurrent bookings, which resolve identities outside the round lock.
func (f *fakeStore) UpsertByEmail(_ context.Context, identity domain.Identity) (domain.Identity, error) {
	f.idMu.Lock()
	defer f.idMu.Unlock()

	if existing, ok := f.identities[identity.Email]; ok {
		existing.FullName = identity.FullName
		existing.Contact = identity.Contact
		existing.UpdatedAt = identity.UpdatedAt
		f.identities[identity.Email] = existing
		return existing, nil
	}
	f.identities[identity.Email] = identity
	return identity, nil
}

type failingIdentityRepo struct{}

func (failingIdentityRepo) UpsertByEmail(context.Context, domain.Identity) (domain.Identity, error) {
	return domain.Identity{}, errors.New("identity store unavailable")
}

type recordingSender struct {
	mu       sync.Mutex
	fail     error
	to       []string
	subjects []string
	bodies   []string
}

func (s *recordingSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	s.to = append(s.to, to)
	s.subjects = append(s.subjects, subject)
	s.bodies = append(s.bodies, body)
	return nil
}
