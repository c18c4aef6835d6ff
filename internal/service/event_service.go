package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

// EventService manages events and the staff assignments attached to them.
type EventService struct {
	events      repository.EventRepository
	staff       repository.StaffRepository
	assignments repository.AssignmentRepository
	now         func() time.Time
}

// EventDependencies encapsulates repositories for event management.
type EventDependencies struct {
	EventRepo      repository.EventRepository
	StaffRepo      repository.StaffRepository
	AssignmentRepo repository.AssignmentRepository
	Now            func() time.Time
}

// NewEventService constructs the service.
func NewEventService(deps EventDependencies) *EventService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &EventService{
		events:      deps.EventRepo,
		staff:       deps.StaffRepo,
		assignments: deps.AssignmentRepo,
		now:         now,
	}
}

// CreateEvent validates the window and stores the event.
func (s *EventService) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if strings.TrimSpace(event.Name) == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if event.Date.IsZero() {
		return nil, apperrors.NewValidationError("date required", nil)
	}
	if _, _, err := domain.ValidateWindow(event.StartTime, event.EndTime); err != nil {
		return nil, apperrors.NewValidationError("invalid event window", map[string]any{
			"start_time": event.StartTime,
			"end_time":   event.EndTime,
		})
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// GetEvent fetches an event.
func (s *EventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// ListEvents lists events.
func (s *EventService) ListEvents(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	list, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// UpdateEvent updates event fields. Cancelling is done here and is sticky.
func (s *EventService) UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	if _, _, err := domain.ValidateWindow(event.StartTime, event.EndTime); err != nil {
		return nil, apperrors.NewValidationError("invalid event window", map[string]any{
			"start_time": event.StartTime,
			"end_time":   event.EndTime,
		})
	}
	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": event.ID})
		}
		return nil, apperrors.MapError(err)
	}
	return event, nil
}

// DeleteEvent removes the event and, through the schema, its assignments.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("event", map[string]any{"event_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// AssignStaff pairs a member with an event in one of the member's roles.
// The assignment starts pending with no token; the invitation flow issues
// one.
func (s *EventService) AssignStaff(ctx context.Context, eventID, staffID string, role domain.StaffRole) (*domain.StaffAssignment, error) {
	if !domain.ValidStaffRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	member, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}
	if !member.HasRole(role) {
		return nil, apperrors.NewConflict("member does not hold role", map[string]any{
			"staff_id": staffID,
			"role":     role,
		})
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
		}
		return nil, apperrors.MapError(err)
	}
	if event.StatusAt(s.now()) != domain.EventStatusUpcoming {
		return nil, apperrors.NewConflict("event is not upcoming", map[string]any{"event_id": eventID})
	}
	if existing, err := s.assignments.Get(ctx, eventID, staffID); err == nil && existing != nil {
		return nil, apperrors.NewConflict("staff already assigned", map[string]any{
			"event_id": eventID,
			"staff_id": staffID,
		})
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	assignment := &domain.StaffAssignment{
		EventID:            eventID,
		StaffID:            staffID,
		Role:               role,
		ConfirmationStatus: domain.ConfirmationPending,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignment, nil
}

// ListAssignments lists an event's assignments.
func (s *EventService) ListAssignments(ctx context.Context, eventID string) ([]domain.StaffAssignment, error) {
	list, err := s.assignments.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// RemoveAssignment explicitly removes a staff assignment.
func (s *EventService) RemoveAssignment(ctx context.Context, eventID, staffID string) error {
	if err := s.assignments.Delete(ctx, eventID, staffID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignment", map[string]any{
				"event_id": eventID,
				"staff_id": staffID,
			})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func parseISODate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
