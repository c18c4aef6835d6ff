package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusAtProjection(t *testing.T) {
	event := Event{
		Date:      time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		EndTime:   "17:00",
	}

	day := func(clock string) time.Time {
		min, err := MinuteOfDay(clock)
		assert.NoError(t, err)
		return event.Date.Add(time.Duration(min) * time.Minute)
	}

	assert.Equal(t, EventStatusUpcoming, event.StatusAt(day("13:59")))
	assert.Equal(t, EventStatusOnGoing, event.StatusAt(day("14:00")))
	assert.Equal(t, EventStatusOnGoing, event.StatusAt(day("16:59")))
	assert.Equal(t, EventStatusElapsed, event.StatusAt(day("17:00")))
	assert.Equal(t, EventStatusElapsed, event.StatusAt(day("23:00")))
}

func TestCancelledOverridesProjection(t *testing.T) {
	event := Event{
		Date:      time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "14:00",
		EndTime:   "17:00",
		Cancelled: true,
	}

	before := time.Date(2026, time.September, 1, 9, 0, 0, 0, time.UTC)
	after := time.Date(2026, time.September, 20, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, EventStatusCancelled, event.StatusAt(before))
	assert.Equal(t, EventStatusCancelled, event.StatusAt(after))
}
