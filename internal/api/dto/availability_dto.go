package dto

import (
	"github.com/spec-kit/event-staffing-service/internal/availability"
	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// AvailabilityEntry is one member's verdict for the requested window.
type AvailabilityEntry struct {
	StaffID        string                  `json:"staff_id"`
	Name           string                  `json:"name"`
	Roles          []domain.StaffRole      `json:"roles"`
	FullyAvailable bool                    `json:"is_fully_available"`
	Conflicts      []availability.TimeSlot `json:"conflicts,omitempty"`
}

// AvailabilityResponse partitions the roster verdicts by coverage role.
type AvailabilityResponse struct {
	Videographers []AvailabilityEntry `json:"videographers"`
	Photographers []AvailabilityEntry `json:"photographers"`
}

// ConfirmationRequest is the token action entrypoint payload.
type ConfirmationRequest struct {
	Token  string                    `json:"token"`
	Action domain.ConfirmationAction `json:"action"`
}

// ConfirmationResponse reports the assignment state after the action.
type ConfirmationResponse struct {
	EventID            string                    `json:"event_id"`
	StaffID            string                    `json:"staff_id"`
	Role               domain.StaffRole          `json:"role"`
	ConfirmationStatus domain.ConfirmationStatus `json:"confirmation_status"`
}

// AvailabilityFromResult maps the resolver output.
func AvailabilityFromResult(result availability.RosterResult) AvailabilityResponse {
	return AvailabilityResponse{
		Videographers: availabilityEntries(result.Videographers),
		Photographers: availabilityEntries(result.Photographers),
	}
}

// AvailabilityEntryFromDomain maps a single-member check.
func AvailabilityEntryFromDomain(entry availability.Availability) AvailabilityEntry {
	return AvailabilityEntry{
		StaffID:        entry.Staff.ID,
		Name:           entry.Staff.Name,
		Roles:          entry.Staff.Roles,
		FullyAvailable: entry.FullyAvailable,
		Conflicts:      entry.Conflicts,
	}
}

func availabilityEntries(entries []availability.Availability) []AvailabilityEntry {
	out := make([]AvailabilityEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, AvailabilityEntryFromDomain(entry))
	}
	return out
}
