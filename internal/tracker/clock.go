package tracker

import "time"

// DayLayout is how calendar days are stored and compared.
const DayLayout = "2006-01-02"

// Clock supplies the calendar day credits are evaluated against.
// The test suite substitutes a fixed clock.
type Clock interface {
	Today() string // YYYY-MM-DD
}

type locationClock struct{ loc *time.Location }

// NewClock returns a Clock that reads wall time in loc. All users share
// this one location; per-user timezones are out of scope.
func NewClock(loc *time.Location) Clock {
	return locationClock{loc: loc}
}

func (c locationClock) Today() string {
	return time.Now().In(c.loc).Format(DayLayout)
}
