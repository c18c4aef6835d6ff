package domain

import "time"

// LeaveDate is an inclusive calendar range during which a staff member is
// unavailable regardless of schedules or override flags.
type LeaveDate struct {
	ID        string
	StaffID   string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
}

// Contains reports whether date falls inside the range. Comparison is by
// calendar date, not timestamp.
func (l LeaveDate) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(l.StartDate)) && !d.After(DateOnly(l.EndDate))
}

// Ended reports whether the range is fully in the past relative to today.
// A leave ending today is still active today.
func (l LeaveDate) Ended(today time.Time) bool {
	return DateOnly(l.EndDate).Before(DateOnly(today))
}

// DateOnly truncates a timestamp to its calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
