package payroll

import "time"

// RemainingFridays lists the valid weekly payment dates (Fridays) left in the
// given year. For the current year enumeration starts from today (inclusive
// when today is a Friday); for a future year it starts from January 1.
// PRE: year is the current year or later; earlier years yield no dates
// POST: Every returned date is a Friday on or before December 31 of year,
// and never earlier than today
func RemainingFridays(year int, now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)

	var start time.Time
	switch {
	case year < now.Year():
		return nil
	case year == now.Year():
		start = today
	default:
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	}

	// time.Weekday numbers Sunday as 0 and Friday as 5.
	offset := (int(time.Friday) - int(start.Weekday()) + 7) % 7
	friday := start.AddDate(0, 0, offset)

	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local)

	var dates []time.Time
	for !friday.After(end) {
		dates = append(dates, friday)
		friday = friday.AddDate(0, 0, 7)
	}
	return dates
}
