package repo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/rauanseidaly/habittrackerbot/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS users (
	user_id INTEGER PRIMARY KEY,
	username TEXT NOT NULL DEFAULT '',
	meditation_count INTEGER NOT NULL DEFAULT 0,
	book_count INTEGER NOT NULL DEFAULT 0,
	fiz_count INTEGER NOT NULL DEFAULT 0,
	total_points INTEGER NOT NULL DEFAULT 0,
	last_meditation TEXT,
	last_book TEXT,
	last_fiz TEXT
);`

// SQLite is the default UserStore, backed by a single database file.
type SQLite struct{ db *sql.DB }

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema exists.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single connection: SQLite allows one writer at a time, and funnelling
	// everything through one conn avoids SQLITE_BUSY under concurrent credits.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create users table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (r *SQLite) Close() error { return r.db.Close() }

func (r *SQLite) EnsureUser(ctx context.Context, id int64, username string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO users(user_id, username) VALUES(?, ?)
	`, id, username)
	return err
}

func (r *SQLite) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u := domain.User{
		ID:         id,
		Counters:   make(map[domain.Habit]int, len(domain.Habits)),
		LastCredit: make(map[domain.Habit]string, len(domain.Habits)),
	}
	var med, book, fiz int
	var lastMed, lastBook, lastFiz string
	err := r.db.QueryRowContext(ctx, `
		SELECT username,
		       meditation_count, book_count, fiz_count,
		       total_points,
		       COALESCE(last_meditation,''), COALESCE(last_book,''), COALESCE(last_fiz,'')
		FROM users WHERE user_id=?
	`, id).Scan(&u.Username, &med, &book, &fiz, &u.TotalPoints, &lastMed, &lastBook, &lastFiz)
	if err == sql.ErrNoRows {
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

func (r *SQLite) ApplyCredit(ctx context.Context, id int64, h domain.Habit, day string) (bool, error) {
	countCol, lastCol := habitColumns(h)
	// Dates are YYYY-MM-DD text, so < compares calendar order.
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
		UPDATE users
		SET %[1]s = %[1]s + 1,
		    total_points = total_points + 1,
		    %[2]s = ?
		WHERE user_id = ?
		  AND (%[2]s IS NULL OR %[2]s < ?)
	`, countCol, lastCol), day, id, day)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SQLite) TopUsers(ctx context.Context, limit int) ([]domain.RankedUser, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT username, total_points FROM users
		ORDER BY total_points DESC, user_id
		LIMIT ?
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
