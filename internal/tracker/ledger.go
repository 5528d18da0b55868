package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/rauanseidaly/habittrackerbot/internal/domain"
	"github.com/rauanseidaly/habittrackerbot/internal/repo"
)

// Result of recording a habit.
type Result int

const (
	Credited Result = iota
	AlreadyCredited
)

// Ledger enforces the one-credit-per-habit-per-day rule. There is no
// stored "done today" flag and no midnight reset: eligibility is
// recomputed from the last-credit date on every call.
type Ledger struct {
	store repo.UserStore
	clock Clock
}

func NewLedger(store repo.UserStore, clock Clock) *Ledger {
	return &Ledger{store: store, clock: clock}
}

// Record credits the habit for today unless it already earned a point
// today. Returns domain.ErrUnknownUser if the user was never registered;
// callers are expected to EnsureUser before recording.
func (l *Ledger) Record(ctx context.Context, userID int64, h domain.Habit) (Result, error) {
	today := l.clock.Today()

	credited, err := l.store.ApplyCredit(ctx, userID, h, today)
	if err != nil {
		return 0, fmt.Errorf("apply credit: %w", err)
	}
	if credited {
		return Credited, nil
	}

	// Nothing changed: either today's point is already on the books or the
	// row does not exist at all.
	if _, err := l.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrUnknownUser
		}
		return 0, err
	}
	return AlreadyCredited, nil
}
