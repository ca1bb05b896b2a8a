package app

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/cimillas/lottery-tickets/internal/clock"
	"github.com/cimillas/lottery-tickets/internal/domain"
)

type IdentityRepository interface {
	UpsertByEmail(ctx context.Context, identity domain.Identity) (domain.Identity, error)
}

// IdentityService resolves user-supplied profiles to durable identities.
type IdentityService struct {
	repo  IdentityRepository
	clock clock.Clock
}

func NewIdentityService(repo IdentityRepository, clk clock.Clock) *IdentityService {
	return &IdentityService{
		repo:  repo,
		clock: clk,
	}
}

// Resolve finds or creates the identity for the supplied profile. Email is
// the natural key; mutable profile fields are overwritten with the supplied
// values on every call, so resolving the same email twice yields one record
// carrying the latest payload.
func (s *IdentityService) Resolve(ctx context.Context, p domain.Profile) (domain.Identity, error) {
	email := strings.TrimSpace(p.Email)
	if email == "" {
		return domain.Identity{}, domain.ErrEmailRequired
	}

	now := s.clock.Now()
	// The generated ID only survives when no identity exists for the email;
	// the upsert returns the stored record either way.
	return s.repo.UpsertByEmail(ctx, domain.Identity{
		ID:        uuid.NewString(),
		Email:     email,
		FullName:  strings.TrimSpace(p.FullName),
		Contact:   strings.TrimSpace(p.Contact),
		CreatedAt: now,
		UpdatedAt: now,
	})
}
