package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// 2026-09-07 is a Monday.
var monday = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

func member(name string, roles ...domain.StaffRole) domain.StaffMember {
	return domain.StaffMember{
		ID:     name,
		Name:   name,
		Roles:  roles,
		Active: true,
	}
}

func classOn(day int, start, end, subject string) domain.Schedule {
	return domain.Schedule{DayOfWeek: day, StartTime: start, EndTime: end, Subject: subject}
}

func TestResolveRosterEmptyRequest(t *testing.T) {
	staff := []domain.StaffMember{member("ana", domain.StaffRolePhotographer)}

	result, err := ResolveRoster(staff, Request{})
	require.NoError(t, err)
	assert.Empty(t, result.Photographers)
	assert.Empty(t, result.Videographers)
}

func TestResolveRosterInvalidWindow(t *testing.T) {
	staff := []domain.StaffMember{member("ana", domain.StaffRolePhotographer)}

	_, err := ResolveRoster(staff, Request{Date: monday, StartTime: "12:00", EndTime: "10:00"})
	require.Error(t, err)
}

func TestNoScheduleMeansFullyAvailable(t *testing.T) {
	staff := []domain.StaffMember{member("ana", domain.StaffRolePhotographer)}

	result, err := ResolveRoster(staff, Request{Date: monday, StartTime: "09:00", EndTime: "11:00"})
	require.NoError(t, err)
	require.Len(t, result.Photographers, 1)
	assert.True(t, result.Photographers[0].FullyAvailable)
	assert.Empty(t, result.Photographers[0].Conflicts)
}

func TestDualRoleAppearsInBothLists(t *testing.T) {
	staff := []domain.StaffMember{member("ana", domain.StaffRolePhotographer, domain.StaffRoleVideographer)}

	result, err := ResolveRoster(staff, Request{Date: monday, StartTime: "09:00", EndTime: "11:00"})
	require.NoError(t, err)
	assert.Len(t, result.Photographers, 1)
	assert.Len(t, result.Videographers, 1)
}

func TestScheduleOtherDayDoesNotConflict(t *testing.T) {
	ana := member("ana", domain.StaffRolePhotographer)
	ana.Schedules = []domain.Schedule{classOn(2, "09:00", "11:00", "GEMATMW")}

	result, err := ResolveRoster([]domain.StaffMember{ana}, Request{Date: monday, StartTime: "09:00", EndTime: "11:00"})
	require.NoError(t, err)
	require.Len(t, result.Photographers, 1)
	assert.True(t, result.Photographers[0].FullyAvailable)
}

func TestBackToBackBlocksDoNotConflict(t *testing.T) {
	ana := member("ana", domain.StaffRolePhotographer)
	ana.Schedules = []domain.Schedule{classOn(1, "10:00", "11:00", "GEMATMW")}

	result, err := ResolveRoster([]domain.StaffMember{ana}, Request{Date: monday, StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	require.Len(t, result.Photographers, 1)
	assert.True(t, result.Photographers[0].FullyAvailable)
}

func TestContainedBlockConflicts(t *testing.T) {
	ana := member("ana", domain.StaffRolePhotographer)
	ana.Schedules = []domain.Schedule{classOn(1, "09:30", "09:45", "GEMATMW")}

	result, err := ResolveRoster([]domain.StaffMember{ana}, Request{Date: monday, StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)
	require.Len(t, result.Photographers, 1)
	entry := result.Photographers[0]
	assert.False(t, entry.FullyAvailable)
	require.Len(t, entry.Conflicts, 1)
	assert.Equal(t, "09:30", entry.Conflicts[0].StartTime)
	assert.Equal(t, "Schedule conflict", entry.Conflicts[0].Reason)
}

func TestIgnoreConflictsOverridesSchedules(t *testing.T) {
	ana := member("ana", domain.StaffRolePhotographer)
	ana.Schedules = []domain.Schedule{classOn(1, "09:00", "11:00", "GEMATMW")}

	result, err := ResolveRoster([]domain.StaffMember{ana}, Request{
		Date: monday, StartTime: "09:00", EndTime: "11:00", IgnoreConflicts: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Photographers, 1)
	assert.True(t, result.Photographers[0].FullyAvailable)
}

func TestCCSOnlySuppressesOnlyCCSSubjects(t *testing.T) {
	ana := member("ana", domain.StaffRolePhotographer)
	ana.Schedules = []domain.Schedule{
		classOn(1, "09:00", "10:00", "CCPROG1"),
		classOn(1, "10:30", "11:30", "GEMATMW"),
	}

	result, err := ResolveRoster([]domain.StaffMember{ana}, Request{
		Date: monday, StartTime: "09:00", EndTime: "12:00", CCSOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Photographers, 1)
	entry := result.Photographers[0]
	assert.False(t, entry.FullyAvailable)
	require.Len(t, entry.Conflicts, 1)
	assert.Equal(t, "GEMATMW", entry.Conflicts[0].Subject)
}

func TestLeaveExcludesFromRosterEvenWithOverrides(t *testing.T) {
	ana := member("ana", domain.StaffRolePhotographer, domain.StaffRoleVideographer)
	ana.LeaveDates = []domain.LeaveDate{{StartDate: monday.AddDate(0, 0, -1), EndDate: monday}}

	result, err := ResolveRoster([]domain.StaffMember{ana}, Request{
		Date: monday, StartTime: "09:00", EndTime: "11:00", IgnoreConflicts: true,
	})
	require.NoError(t, err)
	assert.Empty(t, result.Photographers)
	assert.Empty(t, result.Videographers)
}

func TestCheckMemberReportsLeaveAsConflict(t *testing.T) {
	ana := member("ana", domain.StaffRolePhotographer)
	ana.LeaveDates = []domain.LeaveDate{{StartDate: monday, EndDate: monday.AddDate(0, 0, 3)}}

	entry, err := CheckMember(ana, Request{Date: monday, StartTime: "09:00", EndTime: "11:00"})
	require.NoError(t, err)
	assert.False(t, entry.FullyAvailable)
	require.Len(t, entry.Conflicts, 1)
	assert.Equal(t, "On leave", entry.Conflicts[0].Reason)
	assert.Empty(t, entry.Conflicts[0].StartTime)
}

func TestCheckMemberOutsideLeaveRange(t *testing.T) {
	ana := member("ana", domain.StaffRolePhotographer)
	ana.LeaveDates = []domain.LeaveDate{{
		StartDate: monday.AddDate(0, 0, -7),
		EndDate:   monday.AddDate(0, 0, -1),
	}}

	entry, err := CheckMember(ana, Request{Date: monday, StartTime: "09:00", EndTime: "11:00"})
	require.NoError(t, err)
	assert.True(t, entry.FullyAvailable)
}

func TestOverlaps(t *testing.T) {
	assert.False(t, overlaps(540, 600, 600, 660)) // touching endpoints
	assert.False(t, overlaps(600, 660, 540, 600))
	assert.True(t, overlaps(540, 600, 570, 585)) // contained
	assert.True(t, overlaps(540, 600, 590, 650)) // partial
	assert.True(t, overlaps(570, 585, 540, 600)) // container
}
