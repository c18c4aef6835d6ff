package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-staffing-service/internal/availability"
	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

// AvailabilityService loads the roster with its schedules and leave ranges
// and hands the pure resolver the full picture.
type AvailabilityService struct {
	staff     repository.StaffRepository
	events    repository.EventRepository
	schedules repository.ScheduleRepository
	leaves    repository.LeaveRepository
}

// AvailabilityDependencies bundles repositories.
type AvailabilityDependencies struct {
	StaffRepo    repository.StaffRepository
	EventRepo    repository.EventRepository
	ScheduleRepo repository.ScheduleRepository
	LeaveRepo    repository.LeaveRepository
}

// NewAvailabilityService creates the service.
func NewAvailabilityService(deps AvailabilityDependencies) *AvailabilityService {
	return &AvailabilityService{
		staff:     deps.StaffRepo,
		events:    deps.EventRepo,
		schedules: deps.ScheduleRepo,
		leaves:    deps.LeaveRepo,
	}
}

// ResolveForEvent computes roster availability for an event's window. The
// override flags may be forced by the caller; nil keeps the event's own
// stored flags.
func (s *AvailabilityService) ResolveForEvent(ctx context.Context, eventID string, ignoreConflicts, ccsOnly *bool) (availability.RosterResult, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return availability.RosterResult{}, apperrors.NewNotFound("event", map[string]any{"event_id": eventID})
		}
		return availability.RosterResult{}, apperrors.MapError(err)
	}

	req := availability.Request{
		Date:            event.Date,
		StartTime:       event.StartTime,
		EndTime:         event.EndTime,
		IgnoreConflicts: event.IgnoreConflicts,
		CCSOnly:         event.CCSOnly,
	}
	if ignoreConflicts != nil {
		req.IgnoreConflicts = *ignoreConflicts
	}
	if ccsOnly != nil {
		req.CCSOnly = *ccsOnly
	}

	roster, err := s.loadRoster(ctx)
	if err != nil {
		return availability.RosterResult{}, err
	}
	return availability.ResolveRoster(roster, req)
}

// CheckStaff computes availability for a single member and window. Leave
// is reported here as an "On leave" conflict rather than by exclusion.
func (s *AvailabilityService) CheckStaff(ctx context.Context, staffID string, req availability.Request) (availability.Availability, error) {
	member, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return availability.Availability{}, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return availability.Availability{}, apperrors.MapError(err)
	}
	if err := s.attachDetails(ctx, member); err != nil {
		return availability.Availability{}, err
	}
	return availability.CheckMember(*member, req)
}

func (s *AvailabilityService) loadRoster(ctx context.Context) ([]domain.StaffMember, error) {
	active := true
	members, err := s.staff.List(ctx, repository.StaffFilter{Active: &active})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	ids := make([]string, 0, len(members))
	for i := range members {
		ids = append(ids, members[i].ID)
	}
	schedules, err := s.schedules.ListByStaffIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	leaves, err := s.leaves.ListByStaffIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range members {
		members[i].Schedules = schedules[members[i].ID]
		members[i].LeaveDates = leaves[members[i].ID]
	}
	return members, nil
}

func (s *AvailabilityService) attachDetails(ctx context.Context, member *domain.StaffMember) error {
	schedules, err := s.schedules.ListByStaff(ctx, member.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	leaves, err := s.leaves.ListByStaff(ctx, member.ID)
	if err != nil {
		return apperrors.MapError(err)
	}
	member.Schedules = schedules
	member.LeaveDates = leaves
	return nil
}
