package dto

import (
	"time"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// CreateEventRequest payload.
type CreateEventRequest struct {
	Name            string `json:"name"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	CCSOnly         bool   `json:"ccs_only"`
	IgnoreConflicts bool   `json:"ignore_conflicts"`
}

// UpdateEventRequest payload. Cancelled is sticky once set.
type UpdateEventRequest struct {
	Name            string `json:"name"`
	Location        string `json:"location"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Cancelled       *bool  `json:"cancelled"`
	CCSOnly         *bool  `json:"ccs_only"`
	IgnoreConflicts *bool  `json:"ignore_conflicts"`
}

// EventResponse response. Status is derived at response time.
type EventResponse struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Location        string             `json:"location"`
	Date            string             `json:"date"`
	StartTime       string             `json:"start_time"`
	EndTime         string             `json:"end_time"`
	Status          domain.EventStatus `json:"status"`
	CCSOnly         bool               `json:"ccs_only"`
	IgnoreConflicts bool               `json:"ignore_conflicts"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// AssignStaffRequest payload.
type AssignStaffRequest struct {
	StaffID string           `json:"staff_id"`
	Role    domain.StaffRole `json:"role"`
}

// AssignmentResponse response.
type AssignmentResponse struct {
	EventID              string                    `json:"event_id"`
	StaffID              string                    `json:"staff_id"`
	Role                 domain.StaffRole          `json:"role"`
	ConfirmationStatus   domain.ConfirmationStatus `json:"confirmation_status"`
	TokenExpiresAt       *time.Time                `json:"token_expires_at,omitempty"`
	ConfirmedAt          *time.Time                `json:"confirmed_at,omitempty"`
	DeclinedAt           *time.Time                `json:"declined_at,omitempty"`
	LastInvitationSentAt *time.Time                `json:"last_invitation_sent_at,omitempty"`
	CreatedAt            time.Time                 `json:"created_at"`
}

// EventFromDomain maps an event to its response shape.
func EventFromDomain(event *domain.Event, now time.Time) EventResponse {
	return EventResponse{
		ID:              event.ID,
		Name:            event.Name,
		Location:        event.Location,
		Date:            event.Date.Format("2006-01-02"),
		StartTime:       event.StartTime,
		EndTime:         event.EndTime,
		Status:          event.StatusAt(now),
		CCSOnly:         event.CCSOnly,
		IgnoreConflicts: event.IgnoreConflicts,
		CreatedAt:       event.CreatedAt,
		UpdatedAt:       event.UpdatedAt,
	}
}

// AssignmentFromDomain maps an assignment to its response shape. The token
// itself is never exposed through listings; it only travels in the email.
func AssignmentFromDomain(a *domain.StaffAssignment) AssignmentResponse {
	return AssignmentResponse{
		EventID:              a.EventID,
		StaffID:              a.StaffID,
		Role:                 a.Role,
		ConfirmationStatus:   a.ConfirmationStatus,
		TokenExpiresAt:       a.TokenExpiresAt,
		ConfirmedAt:          a.ConfirmedAt,
		DeclinedAt:           a.DeclinedAt,
		LastInvitationSentAt: a.LastInvitationSentAt,
		CreatedAt:            a.CreatedAt,
	}
}
