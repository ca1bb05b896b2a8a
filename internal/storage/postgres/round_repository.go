package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cimillas/lottery-tickets/internal/domain"
)

// RoundRepository stores rounds and their ticket allocations.
type RoundRepository struct {
	pool *pgxpool.Pool
}

func NewRoundRepository(pool *pgxpool.Pool) *RoundRepository {
	return &RoundRepository{pool: pool}
}

func (r *RoundRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *RoundRepository) MaxRoundNo(ctx context.Context) (int64, error) {
	const query = `SELECT COALESCE(MAX(round_no), 0) FROM rounds`
	var max int64
	if err := querierFrom(ctx, r.pool).QueryRow(ctx, query).Scan(&max); err != nil {
		return 0, fmt.Errorf("max round no: %w", err)
	}
	return max, nil
}

func (r *RoundRepository) InsertRound(ctx context.Context, round domain.Round) error {
	const stmt = `
INSERT INTO rounds (round_no, available_tickets, created_at)
VALUES ($1, $2, $3)`

	_, err := querierFrom(ctx, r.pool).Exec(ctx, stmt, round.RoundNo, round.AvailableTickets, round.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRoundConflict
		}
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

func (r *RoundRepository) GetRound(ctx context.Context, roundNo int64) (domain.Round, error) {
	const query = `
SELECT round_no, available_tickets, created_at
FROM rounds
WHERE round_no = $1`
	return r.scanRound(querierFrom(ctx, r.pool).QueryRow(ctx, query, roundNo))
}

func (r *RoundRepository) GetLatestRound(ctx context.Context) (domain.Round, error) {
	const query = `
SELECT round_no, available_tickets, created_at
FROM rounds
ORDER BY round_no DESC
LIMIT 1`
	return r.scanRound(querierFrom(ctx, r.pool).QueryRow(ctx, query))
}

// GetRoundForUpdate locks the round row for the rest of the transaction.
// Booking's read-compute-write runs entirely under this lock, so concurrent
// bookings against the same round serialize.
func (r *RoundRepository) GetRoundForUpdate(ctx context.Context, roundNo int64) (domain.Round, error) {
	const query = `
SELECT round_no, available_tickets, created_at
FROM rounds
WHERE round_no = $1
FOR UPDATE`
	return r.scanRound(querierFrom(ctx, r.pool).QueryRow(ctx, query, roundNo))
}

func (r *RoundRepository) scanRound(row pgx.Row) (domain.Round, error) {
	var round domain.Round
	err := row.Scan(&round.RoundNo, &round.AvailableTickets, &round.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Round{}, domain.ErrRoundNotFound
		}
		return domain.Round{}, fmt.Errorf("scan round: %w", err)
	}
	return round, nil
}

func (r *RoundRepository) UpdateAvailableTickets(ctx context.Context, roundNo int64, numbers []string) error {
	const stmt = `UPDATE rounds SET available_tickets = $2 WHERE round_no = $1`

	tag, err := querierFrom(ctx, r.pool).Exec(ctx, stmt, roundNo, numbers)
	if err != nil {
		return fmt.Errorf("update available tickets: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRoundNotFound
	}
	return nil
}

func (r *RoundRepository) FindAllocation(ctx context.Context, roundNo int64, identityID string, kind domain.AllocationKind) (*domain.Allocation, error) {
	const query = `
SELECT id, round_no, identity_id, kind, ticket_numbers, created_at, updated_at
FROM allocations
WHERE round_no = $1 AND identity_id = $2 AND kind = $3`

	var a domain.Allocation
	err := querierFrom(ctx, r.pool).QueryRow(ctx, query, roundNo, identityID, kind).
		Scan(&a.ID, &a.RoundNo, &a.IdentityID, &a.Kind, &a.TicketNumbers, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find allocation: %w", err)
	}
	return &a, nil
}

func (r *RoundRepository) InsertAllocation(ctx context.Context, alloc domain.Allocation) error {
	const stmt = `
INSERT INTO allocations (id, round_no, identity_id, kind, ticket_numbers, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querierFrom(ctx, r.pool).Exec(ctx, stmt,
		alloc.ID,
		alloc.RoundNo,
		alloc.IdentityID,
		alloc.Kind,
		alloc.TicketNumbers,
		alloc.CreatedAt,
		alloc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAllocationConflict
		}
		if isForeignKeyViolation(err) {
			return domain.ErrRoundNotFound
		}
		return fmt.Errorf("insert allocation: %w", err)
	}
	return nil
}

func (r *RoundRepository) UpdateAllocationNumbers(ctx context.Context, allocationID string, numbers []string, updatedAt time.Time) error {
	const stmt = `UPDATE allocations SET ticket_numbers = $2, updated_at = $3 WHERE id = $1`

	tag, err := querierFrom(ctx, r.pool).Exec(ctx, stmt, allocationID, numbers, updatedAt)
	if err != nil {
		return fmt.Errorf("update allocation numbers: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAllocationConflict
	}
	return nil
}

func (r *RoundRepository) ListAllocations(ctx context.Context, roundNo int64) ([]domain.AllocationEntry, error) {
	const query = `
SELECT a.id, a.round_no, a.identity_id, a.kind, a.ticket_numbers, a.created_at, a.updated_at,
       i.id, i.email, i.full_name, i.contact, i.created_at, i.updated_at
FROM allocations a
JOIN identities i ON i.id = a.identity_id
WHERE a.round_no = $1
ORDER BY a.created_at ASC`

	rows, err := querierFrom(ctx, r.pool).Query(ctx, query, roundNo)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()

	var entries []domain.AllocationEntry
	for rows.Next() {
		var entry domain.AllocationEntry
		if err := rows.Scan(
			&entry.Allocation.ID,
			&entry.Allocation.RoundNo,
			&entry.Allocation.IdentityID,
			&entry.Allocation.Kind,
			&entry.Allocation.TicketNumbers,
			&entry.Allocation.CreatedAt,
			&entry.Allocation.UpdatedAt,
			&entry.Identity.ID,
			&entry.Identity.Email,
			&entry.Identity.FullName,
			&entry.Identity.Contact,
			&entry.Identity.CreatedAt,
			&entry.Identity.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		entries = append(entries, entry)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate allocations: %w", rows.Err())
	}
	return entries, nil
}
