package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

func newConfirmationFixture(t *testing.T) (*ConfirmationService, *fakeAssignmentRepo, *fixedClock) {
	t.Helper()
	repo := newFakeAssignmentRepo()
	clock := newFixedClock(testNow)
	svc := NewConfirmationService(ConfirmationDependencies{
		AssignmentRepo: repo,
		Logger:         zap.NewNop(),
		TokenTTL:       7 * 24 * time.Hour,
		Now:            clock.Now,
	})
	return svc, repo, clock
}

func pendingAssignment(eventID, staffID string) domain.StaffAssignment {
	return domain.StaffAssignment{
		EventID:            eventID,
		StaffID:            staffID,
		Role:               domain.StaffRolePhotographer,
		ConfirmationStatus: domain.ConfirmationPending,
		Version:            1,
	}
}

func TestIssueTokenMintsWithSevenDayExpiry(t *testing.T) {
	svc, repo, _ := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))
	assignment, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)

	token, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, assignment.TokenExpiresAt)
	assert.Equal(t, testNow.Add(7*24*time.Hour), *assignment.TokenExpiresAt)

	stored, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)
	require.NotNil(t, stored.ConfirmationToken)
	assert.Equal(t, token, *stored.ConfirmationToken)
}

func TestIssueTokenReusesLiveToken(t *testing.T) {
	svc, repo, clock := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))
	assignment, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)

	first, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	second, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)
	assert.Equal(t, first, second, "a live token is reused, not rotated")
}

func TestIssueTokenReissuesAfterExpiry(t *testing.T) {
	svc, repo, clock := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))
	assignment, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)

	first, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Minute)
	second, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, domain.ConfirmationPending, assignment.ConfirmationStatus)
	assert.Nil(t, assignment.ConfirmedAt)
	assert.Nil(t, assignment.DeclinedAt)
}

func TestIssueTokenReissuesAfterResolution(t *testing.T) {
	svc, repo, _ := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))
	assignment, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)

	first, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), first, domain.ActionDecline)
	require.NoError(t, err)

	fresh, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)
	second, err := svc.IssueOrReuseToken(context.Background(), fresh)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, domain.ConfirmationPending, fresh.ConfirmationStatus)
	assert.Nil(t, fresh.DeclinedAt)
}

func TestIssueTokenLoserAdoptsWinnersToken(t *testing.T) {
	svc, repo, _ := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))

	first, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)
	stale, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)

	winner, err := svc.IssueOrReuseToken(context.Background(), first)
	require.NoError(t, err)

	// stale still carries the pre-issue version; its write loses and it
	// must come back with the winner's token
	loser, err := svc.IssueOrReuseToken(context.Background(), stale)
	require.NoError(t, err)
	assert.Equal(t, winner, loser)
}

func TestResolveUnknownAction(t *testing.T) {
	svc, _, _ := newConfirmationFixture(t)

	_, err := svc.Resolve(context.Background(), "whatever", domain.ConfirmationAction("accept"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestResolveUnknownToken(t *testing.T) {
	svc, _, _ := newConfirmationFixture(t)

	_, err := svc.Resolve(context.Background(), "nope", domain.ActionConfirm)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestResolveExpiredTokenKeepsRow(t *testing.T) {
	svc, repo, clock := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))
	assignment, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)
	token, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)

	clock.Advance(8 * 24 * time.Hour)
	_, err = svc.Resolve(context.Background(), token, domain.ActionConfirm)
	require.Error(t, err)
	assert.Equal(t, "EXPIRED", apperrors.ToDomainError(err).Code)

	// expiry rejects the action but never removes data
	stored, err := repo.GetByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationPending, stored.ConfirmationStatus)
}

func TestResolveCheckDoesNotMutate(t *testing.T) {
	svc, repo, _ := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))
	assignment, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)
	token, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)

	got, err := svc.Resolve(context.Background(), token, domain.ActionCheck)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationPending, got.ConfirmationStatus)

	stored, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationPending, stored.ConfirmationStatus)
	assert.Nil(t, stored.ConfirmedAt)
}

func TestResolveConfirmThenReplay(t *testing.T) {
	svc, repo, _ := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))
	assignment, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)
	token, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)

	got, err := svc.Resolve(context.Background(), token, domain.ActionConfirm)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationConfirmed, got.ConfirmationStatus)
	require.NotNil(t, got.ConfirmedAt)
	assert.Equal(t, testNow, *got.ConfirmedAt)

	_, err = svc.Resolve(context.Background(), token, domain.ActionConfirm)
	require.Error(t, err)
	assert.Equal(t, "ALREADY_PROCESSED", apperrors.ToDomainError(err).Code)

	_, err = svc.Resolve(context.Background(), token, domain.ActionDecline)
	require.Error(t, err)
	assert.Equal(t, "ALREADY_PROCESSED", apperrors.ToDomainError(err).Code)
}

func TestResolveDecline(t *testing.T) {
	svc, repo, _ := newConfirmationFixture(t)
	repo.put(pendingAssignment("e1", "s1"))
	assignment, err := repo.Get(context.Background(), "e1", "s1")
	require.NoError(t, err)
	token, err := svc.IssueOrReuseToken(context.Background(), assignment)
	require.NoError(t, err)

	got, err := svc.Resolve(context.Background(), token, domain.ActionDecline)
	require.NoError(t, err)
	assert.Equal(t, domain.ConfirmationDeclined, got.ConfirmationStatus)
	require.NotNil(t, got.DeclinedAt)
	assert.Nil(t, got.ConfirmedAt)
}
