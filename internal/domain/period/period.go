package period

import (
	"errors"
	"time"
)

// Period constants for the supported reporting windows.
const (
	Week  = "week"
	Month = "month"
	Year  = "year"
)

// ErrInvalidPeriod is returned when the selector is not week, month, or year.
var ErrInvalidPeriod = errors.New("period must be 'week', 'month', or 'year'")

// Range is a resolved inclusive reporting window.
// Start is 00:00:00 of the first day, End is 23:59:59.999 of the last day.
type Range struct {
	Start time.Time
	End   time.Time
}

// endOfDay returns 23:59:59.999 on the given day.
func endOfDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), time.Local)
}

// Resolve turns a period selector plus an optional month offset into a
// concrete inclusive range.
// PRE: period is Week, Month, or Year
// POST: Start is day 1 at 00:00:00 and End is the last day at 23:59:59.999
// INVARIANT: monthOffset only affects the Month period; Week and Year ignore it
func Resolve(period string, monthOffset int, now time.Time) (Range, error) {
	switch period {
	case Week:
		// Monday-based week. Sunday counts as day 7 of the prior week,
		// so it rolls back up to six days.
		daysSinceMonday := int(now.Weekday()) - 1
		if now.Weekday() == time.Sunday {
			daysSinceMonday = 6
		}
		monday := now.AddDate(0, 0, -daysSinceMonday)
		sunday := monday.AddDate(0, 0, 6)
		return Range{
			Start: time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.Local),
			End:   endOfDay(sunday.Year(), sunday.Month(), sunday.Day()),
		}, nil

	case Month:
		// time.Date normalizes out-of-range months, so arbitrary positive
		// or negative offsets land in the right year.
		start := time.Date(now.Year(), now.Month()+time.Month(monthOffset), 1, 0, 0, 0, 0, time.Local)
		lastDay := start.AddDate(0, 1, -1)
		return Range{
			Start: start,
			End:   endOfDay(lastDay.Year(), lastDay.Month(), lastDay.Day()),
		}, nil

	case Year:
		return Range{
			Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.Local),
			End:   endOfDay(now.Year(), time.December, 31),
		}, nil
	}

	return Range{}, ErrInvalidPeriod
}

// StartDate returns the range start as a YYYY-MM-DD string for store boundaries.
func (r Range) StartDate() string {
	return r.Start.Format("2006-01-02")
}

// EndDate returns the range end as a YYYY-MM-DD string for store boundaries.
func (r Range) EndDate() string {
	return r.End.Format("2006-01-02")
}

// Contains reports whether t falls inside the inclusive range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Label returns a human-readable description of the range for report headers.
func (r Range) Label(period string) string {
	switch period {
	case Week:
		return r.Start.Format("2 Jan 2006") + " – " + r.End.Format("2 Jan 2006")
	case Month:
		return r.Start.Format("January 2006")
	case Year:
		return r.Start.Format("2006")
	}
	return r.StartDate() + " – " + r.EndDate()
}
