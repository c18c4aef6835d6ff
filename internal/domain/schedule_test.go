package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinuteOfDay(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:05": 545,
		"23:59": 1439,
		" 10:30 ": 630,
	}
	for clock, want := range cases {
		got, err := MinuteOfDay(clock)
		require.NoError(t, err, clock)
		assert.Equal(t, want, got, clock)
	}

	for _, clock := range []string{"", "9", "24:00", "12:60", "ab:cd", "12:00:00"} {
		_, err := MinuteOfDay(clock)
		assert.Error(t, err, clock)
	}
}

func TestValidateWindow(t *testing.T) {
	start, end, err := ValidateWindow("09:00", "11:30")
	require.NoError(t, err)
	assert.Equal(t, 540, start)
	assert.Equal(t, 690, end)

	_, _, err = ValidateWindow("11:00", "11:00")
	assert.Error(t, err)

	_, _, err = ValidateWindow("12:00", "09:00")
	assert.Error(t, err)
}

func TestIsCCSSubject(t *testing.T) {
	assert.True(t, IsCCSSubject("CCPROG1"))
	assert.True(t, IsCCSSubject("ccapdev"))
	assert.True(t, IsCCSSubject(" CCDSALG "))
	assert.False(t, IsCCSSubject("GEMATMW"))
	assert.False(t, IsCCSSubject(""))
}

func TestLeaveDateContains(t *testing.T) {
	leave := LeaveDate{
		StartDate: time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.September, 9, 0, 0, 0, 0, time.UTC),
	}

	// timestamps within a covered day count regardless of clock
	assert.True(t, leave.Contains(time.Date(2026, time.September, 7, 23, 59, 0, 0, time.UTC)))
	assert.True(t, leave.Contains(time.Date(2026, time.September, 9, 0, 0, 1, 0, time.UTC)))
	assert.False(t, leave.Contains(time.Date(2026, time.September, 6, 12, 0, 0, 0, time.UTC)))
	assert.False(t, leave.Contains(time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)))
}

func TestLeaveDateEnded(t *testing.T) {
	leave := LeaveDate{
		StartDate: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
	}

	// a leave ending today is still active
	assert.False(t, leave.Ended(time.Date(2026, time.September, 5, 18, 0, 0, 0, time.UTC)))
	assert.True(t, leave.Ended(time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC)))
}

func TestHasLiveToken(t *testing.T) {
	now := time.Date(2026, time.September, 7, 12, 0, 0, 0, time.UTC)
	token := "tok"
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	live := StaffAssignment{
		ConfirmationStatus: ConfirmationPending,
		ConfirmationToken:  &token,
		TokenExpiresAt:     &future,
	}
	assert.True(t, live.HasLiveToken(now))

	expired := live
	expired.TokenExpiresAt = &past
	assert.False(t, expired.HasLiveToken(now))
	assert.True(t, expired.TokenExpired(now))

	resolved := live
	resolved.ConfirmationStatus = ConfirmationConfirmed
	assert.False(t, resolved.HasLiveToken(now))

	bare := StaffAssignment{ConfirmationStatus: ConfirmationPending}
	assert.False(t, bare.HasLiveToken(now))
	assert.True(t, bare.TokenExpired(now))
}
