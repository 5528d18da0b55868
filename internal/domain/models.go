package domain

import "errors"

// Habit is one of the three fixed daily activities the bot tracks.
// The values double as callback keys on the habit menu.
type Habit string

const (
	Meditation       Habit = "meditation"
	Reading          Habit = "book"
	PhysicalActivity Habit = "fiz"
)

// Habits lists every tracked habit in menu order.
var Habits = []Habit{Meditation, Reading, PhysicalActivity}

// ParseHabit maps a callback key to a Habit. Unknown keys report ok=false.
func ParseHabit(key string) (Habit, bool) {
	switch Habit(key) {
	case Meditation:
		return Meditation, true
	case Reading:
		return Reading, true
	case PhysicalActivity:
		return PhysicalActivity, true
	}
	return "", false
}

// User is one row of the users table.
// TotalPoints always equals the sum of Counters.
type User struct {
	ID          int64
	Username    string
	Counters    map[Habit]int
	LastCredit  map[Habit]string // YYYY-MM-DD, "" if never credited
	TotalPoints int
}

// RankedUser is a leaderboard entry.
type RankedUser struct {
	Username    string
	TotalPoints int
}

var (
	// ErrNotFound is returned on a point lookup miss.
	ErrNotFound = errors.New("user not found")

	// ErrUnknownUser means a credit was requested for an unregistered user.
	// The adapter must ensure registration first, so this is a call-ordering
	// bug, not a user-facing condition.
	ErrUnknownUser = errors.New("unknown user")
)
