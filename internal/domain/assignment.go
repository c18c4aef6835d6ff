package domain

import "time"

// ConfirmationStatus enumerates the confirmation lifecycle of an
// assignment.
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "PENDING"
	ConfirmationConfirmed ConfirmationStatus = "CONFIRMED"
	ConfirmationDeclined  ConfirmationStatus = "DECLINED"
)

// ConfirmationAction is a staff response carried by a confirmation token.
type ConfirmationAction string

const (
	ActionConfirm ConfirmationAction = "confirm"
	ActionDecline ConfirmationAction = "decline"
	ActionCheck   ConfirmationAction = "check"
)

// ValidConfirmationAction reports whether the action is known.
func ValidConfirmationAction(action ConfirmationAction) bool {
	switch action {
	case ActionConfirm, ActionDecline, ActionCheck:
		return true
	}
	return false
}

// StaffAssignment pairs one staff member with one event in one role. The
// (EventID, StaffID) pair is the identity. Version backs the optimistic
// conditional update guarding token issuance.
type StaffAssignment struct {
	EventID                string
	StaffID                string
	Role                   StaffRole
	ConfirmationStatus     ConfirmationStatus
	ConfirmationToken      *string
	TokenExpiresAt         *time.Time
	ConfirmedAt            *time.Time
	DeclinedAt             *time.Time
	LastInvitationSentAt   *time.Time
	ManualInvitationSentAt *time.Time
	Version                int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HasLiveToken reports whether the assignment still carries a reusable
// token: present, still pending, and not yet expired.
func (a *StaffAssignment) HasLiveToken(now time.Time) bool {
	return a.ConfirmationToken != nil &&
		a.ConfirmationStatus == ConfirmationPending &&
		a.TokenExpiresAt != nil &&
		now.Before(*a.TokenExpiresAt)
}

// TokenExpired reports whether the assignment's token window has closed.
func (a *StaffAssignment) TokenExpired(now time.Time) bool {
	return a.TokenExpiresAt == nil || !now.Before(*a.TokenExpiresAt)
}
