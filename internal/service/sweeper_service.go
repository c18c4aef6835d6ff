package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/events"
	"github.com/spec-kit/event-staffing-service/internal/mailer"
	"github.com/spec-kit/event-staffing-service/internal/observability"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

// SweepSummary reports one unconfirmed-assignment sweep run.
type SweepSummary struct {
	Candidates int `json:"candidates"`
	Removed    int `json:"removed"`
	EmailsSent int `json:"emails_sent"`
}

// SweeperService runs the two periodic lifecycle jobs: removing pending
// assignments whose confirmation window lapsed, and purging leave ranges
// that ended. Both are idempotent; overlapping runs simply find nothing
// left to delete.
type SweeperService struct {
	assignments repository.AssignmentRepository
	leaves      repository.LeaveRepository
	mail        mailer.Mailer
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	metrics     *observability.Metrics
	timeout     time.Duration
	now         func() time.Time
}

// SweeperDependencies bundles collaborators.
type SweeperDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	LeaveRepo      repository.LeaveRepository
	Mailer         mailer.Mailer
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	Timeout        time.Duration
	Now            func() time.Time
}

// NewSweeperService creates the service.
func NewSweeperService(deps SweeperDependencies) *SweeperService {
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 6 * time.Hour
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &SweeperService{
		assignments: deps.AssignmentRepo,
		leaves:      deps.LeaveRepo,
		mail:        deps.Mailer,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		metrics:     deps.Metrics,
		timeout:     timeout,
		now:         now,
	}
}

// SweepUnconfirmed removes assignments still pending past the confirmation
// timeout, provided their event has not started and is not cancelled.
// Deletion is the authoritative side effect; the notification email is
// best-effort and a failure never rolls the removal back. Only a failed
// candidate query fails the run.
func (s *SweeperService) SweepUnconfirmed(ctx context.Context) (SweepSummary, error) {
	now := s.now()
	cutoff := now.Add(-s.timeout)

	candidates, err := s.assignments.ListPendingInvitedBefore(ctx, cutoff)
	if err != nil {
		return SweepSummary{}, apperrors.MapError(err)
	}

	summary := SweepSummary{Candidates: len(candidates)}
	for _, candidate := range candidates {
		// an event that started, elapsed, or was cancelled owns its own
		// lifecycle; the reminder is moot
		if candidate.Event.StatusAt(now) != domain.EventStatusUpcoming {
			continue
		}

		err := s.assignments.Delete(ctx, candidate.Assignment.EventID, candidate.Assignment.StaffID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// already removed by a concurrent run
				continue
			}
			s.logger.Error("failed to remove unconfirmed assignment",
				zap.String("event_id", candidate.Assignment.EventID),
				zap.String("staff_id", candidate.Assignment.StaffID),
				zap.Error(err))
			continue
		}
		summary.Removed++

		if s.notifyRemoved(ctx, candidate) {
			summary.EmailsSent++
		}
		s.publishSwept(ctx, candidate)
	}

	s.metrics.RecordSweep("unconfirmed_assignments", int64(summary.Removed))
	s.logger.Info("unconfirmed assignment sweep finished",
		zap.Int("candidates", summary.Candidates),
		zap.Int("removed", summary.Removed),
		zap.Int("emails_sent", summary.EmailsSent))
	return summary, nil
}

// SweepExpiredLeaves deletes leave ranges that ended before today and
// reports how many were removed. A leave ending today is still active.
func (s *SweeperService) SweepExpiredLeaves(ctx context.Context) (int64, error) {
	removed, err := s.leaves.DeleteEndedBefore(ctx, s.now())
	if err != nil {
		return 0, apperrors.MapError(err)
	}

	s.metrics.RecordSweep("expired_leaves", removed)
	if removed > 0 && s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventLeaveDatesPurged,
			Timestamp: s.now(),
			Payload:   events.LeaveDatesPurgedPayload{Removed: removed},
		})
	}
	s.logger.Info("expired leave sweep finished", zap.Int64("removed", removed))
	return removed, nil
}

func (s *SweeperService) notifyRemoved(ctx context.Context, candidate repository.PendingAssignment) bool {
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your pending %s assignment for <b>%s</b> on %s was released because it was not confirmed in time.</p>
<p>No action is needed. If you still want to cover this event, ask the organizer to re-assign you.</p>`,
		candidate.StaffName,
		candidate.Assignment.Role,
		candidate.Event.Name,
		candidate.Event.Date.Format("January 2, 2006"),
	)

	_, err := s.mail.Send(ctx, mailer.Message{
		To:       candidate.StaffEmail,
		Subject:  fmt.Sprintf("Assignment released: %s", candidate.Event.Name),
		HTMLBody: body,
	})
	if err != nil {
		s.logger.Warn("sweep notification email failed",
			zap.String("event_id", candidate.Assignment.EventID),
			zap.String("staff_id", candidate.Assignment.StaffID),
			zap.Error(err))
		return false
	}
	return true
}

func (s *SweeperService) publishSwept(ctx context.Context, candidate repository.PendingAssignment) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAssignmentSwept,
		EventID:   candidate.Assignment.EventID,
		StaffID:   candidate.Assignment.StaffID,
		Timestamp: s.now(),
		Payload: events.AssignmentSweptPayload{
			Role:             candidate.Assignment.Role,
			LastInvitationAt: candidate.Assignment.LastInvitationSentAt,
		},
	})
}
