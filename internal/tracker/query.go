package tracker

import (
	"context"

	"github.com/rauanseidaly/habittrackerbot/internal/domain"
	"github.com/rauanseidaly/habittrackerbot/internal/repo"
)

const leaderboardSize = 10

// Query serves the read-only views: a single profile and the top list.
type Query struct {
	store repo.UserStore
}

func NewQuery(store repo.UserStore) *Query {
	return &Query{store: store}
}

// Profile returns the user's record verbatim, domain.ErrNotFound on a miss.
func (q *Query) Profile(ctx context.Context, userID int64) (domain.User, error) {
	return q.store.GetUser(ctx, userID)
}

// Leaderboard returns up to ten users by descending total points.
// An empty store yields an empty slice, not an error.
func (q *Query) Leaderboard(ctx context.Context) ([]domain.RankedUser, error) {
	return q.store.TopUsers(ctx, leaderboardSize)
}
