package progression

import "time"

// Calendar answers day-boundary questions in a single fixed location.
// Two instants are on the same day when their year, month and day match
// after conversion into that location.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a calendar bound to loc. Nil means time.Local.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

func (c Calendar) SameDay(a, b time.Time) bool {
	loc := c.Location()
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns the first instant of t's day. Where a zone shift skips
// midnight the day starts at the end of the gap.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.Location()).Date()
	return c.dayStart(y, m, d)
}

// DaysBefore steps back n calendar days from the start of t's day.
func (c Calendar) DaysBefore(t time.Time, n int) time.Time {
	loc := c.Location()
	y, m, d := t.In(loc).Date()
	// noon exists on every day, midnight doesn't
	anchor := time.Date(y, m, d-n, 12, 0, 0, 0, loc)
	return c.StartOfDay(anchor)
}

// DayKey formats the day of t as YYYY-MM-DD.
func (c Calendar) DayKey(t time.Time) string {
	return t.In(c.Location()).Format(time.DateOnly)
}

// ParseDay reads a YYYY-MM-DD key as the start of that day.
func (c Calendar) ParseDay(key string) (time.Time, error) {
	date, err := time.Parse(time.DateOnly, key)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return c.dayStart(y, m, d), nil
}

func (c Calendar) dayStart(y int, m time.Month, d int) time.Time {
	loc := c.Location()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if c.onDate(start, y, m, d) {
		return start
	}
	// midnight fell into a gap and was normalized onto the previous day
	if _, end := start.ZoneBounds(); !end.IsZero() && c.onDate(end, y, m, d) {
		return end.In(loc)
	}
	for !c.onDate(start, y, m, d) && start.Before(time.Date(y, m, d, 12, 0, 0, 0, loc)) {
		start = start.Add(time.Minute)
	}
	return start
}

func (c Calendar) onDate(t time.Time, y int, m time.Month, d int) bool {
	ty, tm, td := t.In(c.Location()).Date()
	return ty == y && tm == m && td == d
}
