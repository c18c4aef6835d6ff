package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/observability"
)

type sweeperFixture struct {
	svc    *SweeperService
	repo   *fakeAssignmentRepo
	leaves *fakeLeaveRepo
	mail   *fakeMailer
	clock  *fixedClock
}

func newSweeperFixture(t *testing.T) *sweeperFixture {
	t.Helper()
	clock := newFixedClock(testNow)
	repo := newFakeAssignmentRepo()
	leaves := &fakeLeaveRepo{}
	mail := &fakeMailer{}
	svc := NewSweeperService(SweeperDependencies{
		AssignmentRepo: repo,
		LeaveRepo:      leaves,
		Mailer:         mail,
		Logger:         zap.NewNop(),
		Metrics:        observability.NewMetrics(),
		Timeout:        6 * time.Hour,
		Now:            clock.Now,
	})
	return &sweeperFixture{svc: svc, repo: repo, leaves: leaves, mail: mail, clock: clock}
}

func (fx *sweeperFixture) seedAssignment(eventID, staffID string, invitedAgo time.Duration, event domain.Event) {
	a := pendingAssignment(eventID, staffID)
	invitedAt := testNow.Add(-invitedAgo)
	a.LastInvitationSentAt = &invitedAt
	fx.repo.put(a)
	event.ID = eventID
	fx.repo.eventsByID[eventID] = event
	fx.repo.staffByID[staffID] = domain.StaffMember{
		ID:    staffID,
		Name:  "Ana Reyes",
		Email: "ana@example.edu",
	}
}

func upcomingEvent() domain.Event {
	return domain.Event{
		Name:      "University Fair",
		Date:      testNow.AddDate(0, 0, 7),
		StartTime: "14:00",
		EndTime:   "17:00",
	}
}

func TestSweepRemovesStalePendingAssignment(t *testing.T) {
	fx := newSweeperFixture(t)
	fx.seedAssignment("e1", "s1", 7*time.Hour, upcomingEvent())

	summary, err := fx.svc.SweepUnconfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Candidates)
	assert.Equal(t, 1, summary.Removed)
	assert.Equal(t, 1, summary.EmailsSent)

	_, err = fx.repo.Get(context.Background(), "e1", "s1")
	require.Error(t, err)

	require.Equal(t, 1, fx.mail.sentCount())
	assert.Equal(t, "ana@example.edu", fx.mail.sent[0].To)
	assert.Contains(t, fx.mail.sent[0].Subject, "released")
}

func TestSweepIgnoresRecentInvitations(t *testing.T) {
	fx := newSweeperFixture(t)
	fx.seedAssignment("e1", "s1", time.Hour, upcomingEvent())

	summary, err := fx.svc.SweepUnconfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Candidates)
	assert.Equal(t, 0, summary.Removed)

	_, err = fx.repo.Get(context.Background(), "e1", "s1")
	assert.NoError(t, err)
}

func TestSweepSkipsNonUpcomingEvents(t *testing.T) {
	fx := newSweeperFixture(t)

	cancelled := upcomingEvent()
	cancelled.Cancelled = true
	fx.seedAssignment("e1", "s1", 7*time.Hour, cancelled)

	elapsed := upcomingEvent()
	elapsed.Date = testNow.AddDate(0, 0, -1)
	fx.seedAssignment("e2", "s1", 7*time.Hour, elapsed)

	summary, err := fx.svc.SweepUnconfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Candidates)
	assert.Equal(t, 0, summary.Removed)
	assert.Equal(t, 0, fx.mail.sentCount())

	_, err = fx.repo.Get(context.Background(), "e1", "s1")
	assert.NoError(t, err)
	_, err = fx.repo.Get(context.Background(), "e2", "s1")
	assert.NoError(t, err)
}

func TestSweepRemovalSurvivesEmailFailure(t *testing.T) {
	fx := newSweeperFixture(t)
	fx.seedAssignment("e1", "s1", 7*time.Hour, upcomingEvent())
	fx.mail.sendErr = errors.New("smtp refused")

	summary, err := fx.svc.SweepUnconfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Removed)
	assert.Equal(t, 0, summary.EmailsSent)

	_, err = fx.repo.Get(context.Background(), "e1", "s1")
	require.Error(t, err)
}

func TestSweepNeverInvitedAssignmentsUntouched(t *testing.T) {
	fx := newSweeperFixture(t)
	a := pendingAssignment("e1", "s1")
	fx.repo.put(a)
	fx.repo.eventsByID["e1"] = upcomingEvent()

	summary, err := fx.svc.SweepUnconfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Candidates)
}

func TestSweepExpiredLeaves(t *testing.T) {
	fx := newSweeperFixture(t)
	today := domain.DateOnly(testNow)
	fx.leaves.leaves = []domain.LeaveDate{
		{ID: "past", StaffID: "s1", StartDate: today.AddDate(0, 0, -5), EndDate: today.AddDate(0, 0, -1)},
		{ID: "today", StaffID: "s1", StartDate: today.AddDate(0, 0, -2), EndDate: today},
		{ID: "future", StaffID: "s2", StartDate: today.AddDate(0, 0, 3), EndDate: today.AddDate(0, 0, 5)},
	}

	removed, err := fx.svc.SweepExpiredLeaves(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	require.Len(t, fx.leaves.leaves, 2)
	assert.Equal(t, "today", fx.leaves.leaves[0].ID)
	assert.Equal(t, "future", fx.leaves.leaves[1].ID)
}

func TestSweepIsIdempotent(t *testing.T) {
	fx := newSweeperFixture(t)
	fx.seedAssignment("e1", "s1", 7*time.Hour, upcomingEvent())

	first, err := fx.svc.SweepUnconfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Removed)

	second, err := fx.svc.SweepUnconfirmed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Candidates)
	assert.Equal(t, 0, second.Removed)
}
