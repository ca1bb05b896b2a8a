package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cimillas/lottery-tickets/internal/domain"
	"github.com/cimillas/lottery-tickets/internal/testutil"
)

func TestIdentityRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewIdentityRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	t.Run("UpsertByEmail inserts on first sighting", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		got, err := repo.UpsertByEmail(ctx, domain.Identity{
			ID:        uuid.NewString(),
			Email:     "alice@example.com",
			FullName:  "Alice",
			Contact:   "555-0100",
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Email != "alice@example.com" || got.FullName != "Alice" || got.Contact != "555-0100" {
			t.Fatalf("unexpected identity: %+v", got)
		}
		if got.ID == "" {
			t.Fatal("expected id to be set")
		}
	})

	t.Run("UpsertByEmail keeps the id and refreshes profile fields", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		now := time.Now().UTC().Truncate(time.Microsecond)

		first, err := repo.UpsertByEmail(ctx, domain.Identity{
			ID:        uuid.NewString(),
			Email:     "bob@example.com",
			FullName:  "Bob",
			Contact:   "old",
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		second, err := repo.UpsertByEmail(ctx, domain.Identity{
			ID:        uuid.NewString(),
			Email:     "bob@example.com",
			FullName:  "Robert",
			Contact:   "new",
			CreatedAt: now.Add(time.Minute),
			UpdatedAt: now.Add(time.Minute),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if second.ID != first.ID {
			t.Fatalf("expected stable id %s, got %s", first.ID, second.ID)
		}
		if second.FullName != "Robert" || second.Contact != "new" {
			t.Fatalf("expected refreshed profile, got %+v", second)
		}

		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM identities").Scan(&count); err != nil {
			t.Fatalf("query count: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected a single identity row, got %d", count)
		}
	})

	t.Run("GetByEmail returns nil when missing", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		testutil.InsertIdentity(t, ctx, pool, "carol@example.com", "Carol")

		got, err := repo.GetByEmail(ctx, "carol@example.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got == nil || got.FullName != "Carol" {
			t.Fatalf("unexpected identity: %+v", got)
		}

		got, err = repo.GetByEmail(ctx, "nobody@example.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})
}
