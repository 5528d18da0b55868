package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rauanseidaly/habittrackerbot/internal/domain"
)

// UserStore persists one row per Telegram user: the three habit counters,
// the date each habit last earned a point, and the running total.
type UserStore interface {
	// EnsureUser registers the user if unseen. Repeat calls are no-ops;
	// in particular the stored username is not refreshed.
	EnsureUser(ctx context.Context, id int64, username string) error

	// GetUser returns domain.ErrNotFound on a miss.
	GetUser(ctx context.Context, id int64) (domain.User, error)

	// ApplyCredit adds one point for the habit, but only if its stored
	// last-credit date is unset or earlier than day. The condition is part
	// of the update statement, so concurrent same-day credits collapse to
	// a single winner. Reports whether a credit was applied.
	ApplyCredit(ctx context.Context, id int64, h domain.Habit, day string) (bool, error)

	// TopUsers returns up to limit users ordered by total points descending.
	TopUsers(ctx context.Context, limit int) ([]domain.RankedUser, error)
}

// habitColumns maps a habit to its counter and last-credit columns.
// The habit set is closed; column names never come from user input.
func habitColumns(h domain.Habit) (countCol, lastCol string) {
	switch h {
	case domain.Meditation:
		return "meditation_count", "last_meditation"
	case domain.Reading:
		return "book_count", "last_book"
	case domain.PhysicalActivity:
		return "fiz_count", "last_fiz"
	}
	panic(fmt.Sprintf("repo: unknown habit %q", h))
}

type Postgres struct{ pool *pgxpool.Pool }

func NewPostgres(p *pgxpool.Pool) *Postgres { return &Postgres{pool: p} }

func (r *Postgres) EnsureUser(ctx context.Context, id int64, username string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users(user_id, username)
		VALUES($1,$2)
		ON CONFLICT (user_id) DO NOTHING
	`, id, username)
	return err
}

func (r *Postgres) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u := domain.User{
		ID:         id,
		Counters:   make(map[domain.Habit]int, len(domain.Habits)),
		LastCredit: make(map[domain.Habit]string, len(domain.Habits)),
	}
	var med, book, fiz int
	var lastMed, lastBook, lastFiz string
	err := r.pool.QueryRow(ctx, `
		SELECT username,
		       meditation_count, book_count, fiz_count,
		       total_points,
		       COALESCE(last_meditation,''), COALESCE(last_book,''), COALESCE(last_fiz,'')
		FROM users WHERE user_id=$1
	`, id).Scan(&u.Username, &med, &book, &fiz, &u.TotalPoints, &lastMed, &lastBook, &lastFiz)
	if err == pgx.ErrNoRows {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	u.Counters[domain.Meditation] = med
	u.Counters[domain.Reading] = book
	u.Counters[domain.PhysicalActivity] = fiz
	u.LastCredit[domain.Meditation] = lastMed
	u.LastCredit[domain.Reading] = lastBook
	u.LastCredit[domain.PhysicalActivity] = lastFiz
	return u, nil
}

func (r *Postgres) ApplyCredit(ctx context.Context, id int64, h domain.Habit, day string) (bool, error) {
	countCol, lastCol := habitColumns(h)
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE users
		SET %[1]s = %[1]s + 1,
		    total_points = total_points + 1,
		    %[2]s = $2
		WHERE user_id = $1
		  AND (%[2]s IS NULL OR %[2]s < $2)
	`, countCol, lastCol), id, day)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Postgres) TopUsers(ctx context.Context, limit int) ([]domain.RankedUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT username, total_points FROM users
		ORDER BY total_points DESC, user_id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.RankedUser, 0, limit)
	for rows.Next() {
		var u domain.RankedUser
		if err := rows.Scan(&u.Username, &u.TotalPoints); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
