package domain

import "time"

// EventStatus is a projection of wall-clock time over the event window.
// Cancelled is the one stored, sticky state and overrides the projection.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "UPCOMING"
	EventStatusOnGoing   EventStatus = "ONGOING"
	EventStatusElapsed   EventStatus = "ELAPSED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// Event is a campus event requiring photography/videography coverage.
type Event struct {
	ID              string
	Name            string
	Location        string
	Date            time.Time
	StartTime       string
	EndTime         string
	Cancelled       bool
	CCSOnly         bool
	IgnoreConflicts bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StatusAt derives the event status at the given instant. Status is never
// stored; deriving it from the window avoids drift between a stored field
// and the clock.
func (e *Event) StatusAt(now time.Time) EventStatus {
	if e.Cancelled {
		return EventStatusCancelled
	}
	start := e.windowEdge(e.StartTime)
	end := e.windowEdge(e.EndTime)
	switch {
	case now.Before(start):
		return EventStatusUpcoming
	case now.Before(end):
		return EventStatusOnGoing
	default:
		return EventStatusElapsed
	}
}

func (e *Event) windowEdge(clock string) time.Time {
	minutes, err := MinuteOfDay(clock)
	if err != nil {
		minutes = 0
	}
	day := DateOnly(e.Date)
	return day.Add(time.Duration(minutes) * time.Minute)
}
