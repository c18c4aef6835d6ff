package dto

import (
	"time"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// CreateStaffRequest payload.
type CreateStaffRequest struct {
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Roles []domain.StaffRole `json:"roles"`
}

// UpdateStaffRequest payload.
type UpdateStaffRequest struct {
	Name   string             `json:"name"`
	Email  string             `json:"email"`
	Roles  []domain.StaffRole `json:"roles"`
	Active *bool              `json:"active"`
}

// StaffResponse response.
type StaffResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Roles     []domain.StaffRole `json:"roles"`
	Active    bool               `json:"active"`
	Schedules []ScheduleResponse `json:"schedules,omitempty"`
	Leaves    []LeaveResponse    `json:"leave_dates,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CreateScheduleRequest payload.
type CreateScheduleRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Subject   string `json:"subject"`
}

// ScheduleResponse response.
type ScheduleResponse struct {
	ID        string `json:"id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Subject   string `json:"subject"`
}

// CreateLeaveRequest payload. Dates are inclusive ISO calendar dates.
type CreateLeaveRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// LeaveResponse response.
type LeaveResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// StaffFromDomain maps a member to its response shape.
func StaffFromDomain(member *domain.StaffMember) StaffResponse {
	resp := StaffResponse{
		ID:        member.ID,
		Name:      member.Name,
		Email:     member.Email,
		Roles:     member.Roles,
		Active:    member.Active,
		CreatedAt: member.CreatedAt,
		UpdatedAt: member.UpdatedAt,
	}
	for _, sched := range member.Schedules {
		resp.Schedules = append(resp.Schedules, ScheduleResponse{
			ID:        sched.ID,
			DayOfWeek: sched.DayOfWeek,
			StartTime: sched.StartTime,
			EndTime:   sched.EndTime,
			Subject:   sched.Subject,
		})
	}
	for _, leave := range member.LeaveDates {
		resp.Leaves = append(resp.Leaves, LeaveResponse{
			ID:        leave.ID,
			StartDate: leave.StartDate.Format("2006-01-02"),
			EndDate:   leave.EndDate.Format("2006-01-02"),
		})
	}
	return resp
}
