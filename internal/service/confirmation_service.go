package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/events"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

// ConfirmationService owns the token lifecycle of staff assignments: one
// live token per assignment, 7-day expiry, confirm/decline/check
// resolution.
type ConfirmationService struct {
	assignments repository.AssignmentRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	tokenTTL    time.Duration
	now         func() time.Time
}

// ConfirmationDependencies bundles collaborators.
type ConfirmationDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	TokenTTL       time.Duration
	Now            func() time.Time
}

// NewConfirmationService creates the service.
func NewConfirmationService(deps ConfirmationDependencies) *ConfirmationService {
	ttl := deps.TokenTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ConfirmationService{
		assignments: deps.AssignmentRepo,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		tokenTTL:    ttl,
		now:         now,
	}
}

// IssueOrReuseToken returns the assignment's live token, minting a fresh
// one only when the current token is absent, expired, or already resolved.
// Minting resets the assignment to pending and clears the resolution
// stamps. The conditional update means two concurrent issuers cannot both
// mint: the loser re-reads and adopts the winner's token.
func (s *ConfirmationService) IssueOrReuseToken(ctx context.Context, assignment *domain.StaffAssignment) (string, error) {
	for attempt := 0; attempt < 3; attempt++ {
		now := s.now()
		if assignment.HasLiveToken(now) {
			return *assignment.ConfirmationToken, nil
		}

		token := uuid.NewString()
		expiresAt := now.Add(s.tokenTTL)
		assignment.ConfirmationToken = &token
		assignment.TokenExpiresAt = &expiresAt
		assignment.ConfirmationStatus = domain.ConfirmationPending
		assignment.ConfirmedAt = nil
		assignment.DeclinedAt = nil

		err := s.assignments.UpdateConfirmation(ctx, assignment)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return "", apperrors.MapError(err)
		}

		fresh, err := s.assignments.Get(ctx, assignment.EventID, assignment.StaffID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", apperrors.NewNotFound("assignment", map[string]any{
					"event_id": assignment.EventID,
					"staff_id": assignment.StaffID,
				})
			}
			return "", apperrors.MapError(err)
		}
		*assignment = *fresh
	}
	return "", apperrors.NewConflict("could not issue confirmation token", map[string]any{
		"event_id": assignment.EventID,
		"staff_id": assignment.StaffID,
	})
}

// Resolve looks up the assignment holding token and applies the action.
// check never mutates; confirm/decline transition a pending assignment to
// its terminal state and stamp the processing time. Expired tokens are
// rejected but never deleted here; only the sweeper removes data.
func (s *ConfirmationService) Resolve(ctx context.Context, token string, action domain.ConfirmationAction) (*domain.StaffAssignment, error) {
	if !domain.ValidConfirmationAction(action) {
		return nil, apperrors.NewValidationError("unknown action", map[string]any{"action": action})
	}

	assignment, err := s.assignments.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("confirmation token", nil)
		}
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	if assignment.TokenExpired(now) {
		return nil, apperrors.NewExpired("confirmation token expired", map[string]any{
			"expired_at": assignment.TokenExpiresAt,
		})
	}

	if action == domain.ActionCheck {
		return assignment, nil
	}

	if assignment.ConfirmationStatus != domain.ConfirmationPending {
		return nil, apperrors.NewAlreadyProcessed("assignment already resolved", map[string]any{
			"status": assignment.ConfirmationStatus,
		})
	}

	switch action {
	case domain.ActionConfirm:
		assignment.ConfirmationStatus = domain.ConfirmationConfirmed
		assignment.ConfirmedAt = &now
	case domain.ActionDecline:
		assignment.ConfirmationStatus = domain.ConfirmationDeclined
		assignment.DeclinedAt = &now
	}

	if err := s.assignments.UpdateConfirmation(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			// someone else resolved it between our read and write
			return nil, apperrors.NewAlreadyProcessed("assignment already resolved", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.publishResolved(ctx, assignment)
	return assignment, nil
}

func (s *ConfirmationService) publishResolved(ctx context.Context, assignment *domain.StaffAssignment) {
	if s.dispatcher == nil {
		return
	}
	eventType := events.EventAssignmentConfirmed
	resolvedAt := assignment.ConfirmedAt
	if assignment.ConfirmationStatus == domain.ConfirmationDeclined {
		eventType = events.EventAssignmentDeclined
		resolvedAt = assignment.DeclinedAt
	}
	stamp := s.now()
	if resolvedAt != nil {
		stamp = *resolvedAt
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EventID:   assignment.EventID,
		StaffID:   assignment.StaffID,
		Timestamp: s.now(),
		Payload: events.AssignmentResolvedPayload{
			Status:     assignment.ConfirmationStatus,
			ResolvedAt: stamp,
		},
	})
}
