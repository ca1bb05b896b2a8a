package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/lottery-tickets/internal/domain"
)

// IdentityRepository stores identities keyed by email.
type IdentityRepository struct {
	pool *pgxpool.Pool
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{pool: pool}
}

// UpsertByEmail creates the identity on first sighting of its email and
// refreshes the mutable profile fields otherwise, in a single statement.
func (r *IdentityRepository) UpsertByEmail(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	const stmt = `
INSERT INTO identities (id, email, full_name, contact, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (email) DO UPDATE SET
	full_name = EXCLUDED.full_name,
	contact = EXCLUDED.contact,
	updated_at = EXCLUDED.updated_at
RETURNING id, email, full_name, contact, created_at, updated_at`

	var out domain.Identity
	err := querierFrom(ctx, r.pool).QueryRow(ctx, stmt,
		identity.ID,
		identity.Email,
		identity.FullName,
		identity.Contact,
		identity.CreatedAt,
		identity.UpdatedAt,
	).Scan(&out.ID, &out.Email, &out.FullName, &out.Contact, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("upsert identity: %w", err)
	}
	return out, nil
}

// GetByEmail returns nil when no identity exists for the email.
func (r *IdentityRepository) GetByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	const query = `
SELECT id, email, full_name, contact, created_at, updated_at
FROM identities
WHERE email = $1`

	var out domain.Identity
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, email).
		Scan(&out.ID, &out.Email, &out.FullName, &out.Contact, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}
	return &out, nil
}
