package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/events"
	"github.com/spec-kit/event-staffing-service/internal/mailer"
	"github.com/spec-kit/event-staffing-service/internal/persistence"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

// InvitationService sends confirmation invitations with a resend cooldown.
// Timestamps are only stamped after the transport accepted the message, so
// a failed send never consumes the cooldown.
type InvitationService struct {
	assignments  repository.AssignmentRepository
	staff        repository.StaffRepository
	eventsRepo   repository.EventRepository
	confirmation *ConfirmationService
	mail         mailer.Mailer
	redis        *persistence.Redis
	dispatcher   events.Dispatcher
	logger       *zap.Logger
	cooldown     time.Duration
	baseURL      string
	now          func() time.Time
}

// InvitationDependencies bundles collaborators.
type InvitationDependencies struct {
	AssignmentRepo repository.AssignmentRepository
	StaffRepo      repository.StaffRepository
	EventRepo      repository.EventRepository
	Confirmation   *ConfirmationService
	Mailer         mailer.Mailer
	Redis          *persistence.Redis
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
	Cooldown       time.Duration
	BaseURL        string
	Now            func() time.Time
}

// NewInvitationService creates the service.
func NewInvitationService(deps InvitationDependencies) *InvitationService {
	cooldown := deps.Cooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &InvitationService{
		assignments:  deps.AssignmentRepo,
		staff:        deps.StaffRepo,
		eventsRepo:   deps.EventRepo,
		confirmation: deps.Confirmation,
		mail:         deps.Mailer,
		redis:        deps.Redis,
		dispatcher:   deps.Dispatcher,
		logger:       deps.Logger,
		cooldown:     cooldown,
		baseURL:      deps.BaseURL,
		now:          now,
	}
}

// Send issues (or reuses) the assignment's confirmation token and emails
// the invitation. A send inside the cooldown window fails with RATE_LIMITED
// carrying the remaining wait.
func (s *InvitationService) Send(ctx context.Context, eventID, staffID string) (*domain.StaffAssignment, error) {
	assignment, err := s.assignments.Get(ctx, eventID, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{
				"event_id": eventID,
				"staff_id": staffID,
			})
		}
		return nil, apperrors.MapError(err)
	}

	now := s.now()
	// authoritative cooldown check against the stored timestamp
	if assignment.LastInvitationSentAt != nil {
		elapsed := now.Sub(*assignment.LastInvitationSentAt)
		if elapsed <= s.cooldown {
			return nil, apperrors.NewRateLimited("invitation recently sent", remainingSeconds(s.cooldown-elapsed))
		}
	}

	cooldownKey := fmt.Sprintf("invite:cooldown:%s:%s", eventID, staffID)
	reserved, remaining, err := s.redis.ReserveCooldown(ctx, cooldownKey, s.cooldown)
	if err != nil {
		s.logger.Warn("cooldown fast path unavailable", zap.Error(err))
	} else if !reserved {
		return nil, apperrors.NewRateLimited("invitation recently sent", remainingSeconds(remaining))
	}

	member, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		s.redis.ReleaseCooldown(ctx, cooldownKey)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	event, err := s.eventsRepo.GetByID(ctx, eventID)
	if err != nil {
		s.redis.ReleaseCooldown(ctx, cooldownKey)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
		}
		return nil, apperrors.MapError(err)
	}

	token, err := s.confirmation.IssueOrReuseToken(ctx, assignment)
	if err != nil {
		s.redis.ReleaseCooldown(ctx, cooldownKey)
		return nil, err
	}

	msg := s.composeInvitation(member, event, assignment, token)
	if _, err := s.mail.Send(ctx, msg); err != nil {
		// timestamps untouched; the user may retry once the cooldown permits
		s.redis.ReleaseCooldown(ctx, cooldownKey)
		return nil, apperrors.NewTransportFailure(err)
	}

	assignment.LastInvitationSentAt = &now
	assignment.ManualInvitationSentAt = &now
	if err := s.assignments.UpdateInvitationTimestamps(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishInvited(ctx, assignment)
	return assignment, nil
}

func (s *InvitationService) composeInvitation(member *domain.StaffMember, event *domain.Event, assignment *domain.StaffAssignment, token string) mailer.Message {
	confirmURL := fmt.Sprintf("%s/assignments/confirmation?token=%s&action=confirm", s.baseURL, token)
	declineURL := fmt.Sprintf("%s/assignments/confirmation?token=%s&action=decline", s.baseURL, token)

	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>You have been assigned as <b>%s</b> for <b>%s</b> on %s, %s-%s at %s.</p>
<p><a href="%s">Accept</a> &nbsp; <a href="%s">Decline</a></p>
<p>This link expires on %s. If you do not respond, the assignment will be released.</p>`,
		member.Name,
		assignment.Role,
		event.Name,
		event.Date.Format("January 2, 2006"),
		event.StartTime,
		event.EndTime,
		event.Location,
		confirmURL,
		declineURL,
		assignment.TokenExpiresAt.Format("January 2, 2006 15:04"),
	)

	return mailer.Message{
		To:         member.Email,
		Subject:    fmt.Sprintf("Coverage assignment: %s", event.Name),
		HTMLBody:   body,
		Attachment: mailer.EventCalendarAttachment(event),
	}
}

func (s *InvitationService) publishInvited(ctx context.Context, assignment *domain.StaffAssignment) {
	if s.dispatcher == nil {
		return
	}
	payload := events.AssignmentInvitedPayload{Role: assignment.Role}
	if assignment.TokenExpiresAt != nil {
		payload.TokenExpiresAt = *assignment.TokenExpiresAt
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAssignmentInvited,
		EventID:   assignment.EventID,
		StaffID:   assignment.StaffID,
		Timestamp: s.now(),
		Payload:   payload,
	})
}

func remainingSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}
