// Package workday counts business days (Monday through Friday) and normalizes
// timestamps to calendar days. Leave sizing and attendance statistics both go
// through Count so there is exactly one definition of a working day.
package workday

import "time"

// IsWorkingDay reports whether t falls on Monday through Friday.
func IsWorkingDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// Count returns the number of working days in the inclusive range [start, end].
// Only the calendar date of each argument is considered. It returns 0 when end
// is before start.
func Count(start, end time.Time) int {
	from := civil(start)
	to := civil(end)
	if to.Before(from) {
		return 0
	}

	days := int(to.Sub(from).Hours()/24) + 1
	count := (days / 7) * 5

	// remaining partial week, starting on from's weekday
	wd := from.Weekday()
	for i := 0; i < days%7; i++ {
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
		wd = (wd + 1) % 7
	}

	return count
}

// Date returns the calendar day of t as observed in loc, expressed as
// midnight UTC. All stored calendar dates use this form.
func Date(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return civil(t.In(loc))
}

// MonthRange returns the first and last calendar day of the given month.
func MonthRange(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// civil maps t's calendar date to midnight UTC so subtraction is free of DST
// offsets.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
