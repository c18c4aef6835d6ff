package events

import (
	"time"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAssignmentInvited   EventType = "assignment_invited"
	EventAssignmentConfirmed EventType = "assignment_confirmed"
	EventAssignmentDeclined  EventType = "assignment_declined"
	EventAssignmentSwept     EventType = "assignment_swept"
	EventLeaveDatesPurged    EventType = "leave_dates_purged"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EventID   string      `json:"event_id,omitempty"`
	StaffID   string      `json:"staff_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AssignmentInvitedPayload payload.
type AssignmentInvitedPayload struct {
	Role           domain.StaffRole `json:"role"`
	TokenExpiresAt time.Time        `json:"token_expires_at"`
}

// AssignmentResolvedPayload payload for confirm/decline.
type AssignmentResolvedPayload struct {
	Status     domain.ConfirmationStatus `json:"status"`
	ResolvedAt time.Time                 `json:"resolved_at"`
}

// AssignmentSweptPayload payload.
type AssignmentSweptPayload struct {
	Role             domain.StaffRole `json:"role"`
	LastInvitationAt *time.Time       `json:"last_invitation_at,omitempty"`
}

// LeaveDatesPurgedPayload payload.
type LeaveDatesPurgedPayload struct {
	Removed int64 `json:"removed"`
}
