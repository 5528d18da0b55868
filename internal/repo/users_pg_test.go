package repo

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rauanseidaly/habittrackerbot/internal/db"
	"github.com/rauanseidaly/habittrackerbot/internal/domain"
)

// Runs only against a real database: set TEST_DATABASE_URL to enable.
func newPgStore(t *testing.T) *Postgres {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.ApplyMigrations(ctx, pool, "../../migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE users`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return NewPostgres(pool)
}

func TestPostgresCreditFlow(t *testing.T) {
	ctx := context.Background()
	s := newPgStore(t)

	if err := s.EnsureUser(ctx, 1, "alice"); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := s.EnsureUser(ctx, 1, "renamed"); err != nil {
		t.Fatalf("re-ensure: %v", err)
	}

	ok, err := s.ApplyCredit(ctx, 1, domain.Meditation, "2025-03-01")
	if err != nil || !ok {
		t.Fatalf("first credit: ok=%v err=%v", ok, err)
	}
	ok, err = s.ApplyCredit(ctx, 1, domain.Meditation, "2025-03-01")
	if err != nil {
		t.Fatalf("second credit: %v", err)
	}
	if ok {
		t.Error("same-day credit applied twice")
	}

	u, err := s.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("username = %q, want alice", u.Username)
	}
	if u.Counters[domain.Meditation] != 1 || u.TotalPoints != 1 {
		t.Errorf("unexpected state: %+v total=%d", u.Counters, u.TotalPoints)
	}

	top, err := s.TopUsers(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 1 || top[0].Username != "alice" {
		t.Errorf("top = %+v", top)
	}
}
