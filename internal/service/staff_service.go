package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	"github.com/spec-kit/event-staffing-service/internal/repository"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

// StaffService manages the roster: members, their weekly schedules, and
// their leave ranges.
type StaffService struct {
	staff     repository.StaffRepository
	schedules repository.ScheduleRepository
	leaves    repository.LeaveRepository
}

// RosterDependencies encapsulates repositories for roster management.
type RosterDependencies struct {
	StaffRepo    repository.StaffRepository
	ScheduleRepo repository.ScheduleRepository
	LeaveRepo    repository.LeaveRepository
}

// NewStaffService constructs the service.
func NewStaffService(deps RosterDependencies) *StaffService {
	return &StaffService{
		staff:     deps.StaffRepo,
		schedules: deps.ScheduleRepo,
		leaves:    deps.LeaveRepo,
	}
}

// CreateStaffMember adds a roster member. At least one coverage role is
// required.
func (s *StaffService) CreateStaffMember(ctx context.Context, name, email string, roles []domain.StaffRole) (*domain.StaffMember, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}
	if len(roles) == 0 {
		return nil, apperrors.NewValidationError("at least one role required", nil)
	}
	for _, role := range roles {
		if !domain.ValidStaffRole(role) {
			return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
		}
	}

	member := &domain.StaffMember{
		Name:   strings.TrimSpace(name),
		Email:  strings.TrimSpace(email),
		Roles:  roles,
		Active: true,
	}
	if err := s.staff.Create(ctx, member); err != nil {
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// GetStaffMember returns a member with schedules and leave ranges attached.
func (s *StaffService) GetStaffMember(ctx context.Context, id string) (*domain.StaffMember, error) {
	member, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	schedules, err := s.schedules.ListByStaff(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	leaves, err := s.leaves.ListByStaff(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	member.Schedules = schedules
	member.LeaveDates = leaves
	return member, nil
}

// ListStaffMembers lists roster members.
func (s *StaffService) ListStaffMembers(ctx context.Context, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	members, err := s.staff.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return members, nil
}

// UpdateStaffMember updates member fields.
func (s *StaffService) UpdateStaffMember(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error) {
	if len(member.Roles) == 0 {
		return nil, apperrors.NewValidationError("at least one role required", nil)
	}
	if err := s.staff.Update(ctx, member); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": member.ID})
		}
		return nil, apperrors.MapError(err)
	}
	return member, nil
}

// DeleteStaffMember removes a member; schedules, leaves, and assignments
// cascade.
func (s *StaffService) DeleteStaffMember(ctx context.Context, id string) error {
	if err := s.staff.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("staff", map[string]any{"staff_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// AddSchedule attaches a weekly class block to a member.
func (s *StaffService) AddSchedule(ctx context.Context, staffID string, dayOfWeek int, startTime, endTime, subject string) (*domain.Schedule, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, apperrors.NewValidationError("day_of_week must be 0-6", map[string]any{"day_of_week": dayOfWeek})
	}
	if _, _, err := domain.ValidateWindow(startTime, endTime); err != nil {
		return nil, apperrors.NewValidationError("invalid schedule window", map[string]any{
			"start_time": startTime,
			"end_time":   endTime,
		})
	}
	if _, err := s.staff.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}

	schedule := &domain.Schedule{
		StaffID:   staffID,
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
		Subject:   strings.TrimSpace(subject),
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, apperrors.MapError(err)
	}
	return schedule, nil
}

// RemoveSchedule deletes a schedule block.
func (s *StaffService) RemoveSchedule(ctx context.Context, id string) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("schedule", map[string]any{"schedule_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// AddLeaveDates records an inclusive leave range for a member.
func (s *StaffService) AddLeaveDates(ctx context.Context, staffID string, start, end string) (*domain.LeaveDate, error) {
	startDate, err := parseISODate(start)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid start_date", map[string]any{"start_date": start})
	}
	endDate, err := parseISODate(end)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid end_date", map[string]any{"end_date": end})
	}
	if endDate.Before(startDate) {
		return nil, apperrors.NewValidationError("end_date before start_date", map[string]any{
			"start_date": start,
			"end_date":   end,
		})
	}
	if _, err := s.staff.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("staff", map[string]any{"staff_id": staffID})
		}
		return nil, apperrors.MapError(err)
	}

	leave := &domain.LeaveDate{
		StaffID:   staffID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		return nil, apperrors.MapError(err)
	}
	return leave, nil
}

// RemoveLeaveDates deletes a leave range.
func (s *StaffService) RemoveLeaveDates(ctx context.Context, id string) error {
	if err := s.leaves.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("leave", map[string]any{"leave_id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}
