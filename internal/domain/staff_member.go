package domain

import "time"

// StaffRole enumerates coverage roles a member can hold.
type StaffRole string

const (
	StaffRolePhotographer StaffRole = "PHOTOGRAPHER"
	StaffRoleVideographer StaffRole = "VIDEOGRAPHER"
	StaffRoleWorkingCom   StaffRole = "WORKING_COM"
)

// ValidStaffRole reports whether the role is a known coverage role.
func ValidStaffRole(role StaffRole) bool {
	switch role {
	case StaffRolePhotographer, StaffRoleVideographer, StaffRoleWorkingCom:
		return true
	}
	return false
}

// StaffMember models one member of the organization roster. Schedules and
// LeaveDates are loaded alongside the member when availability is resolved.
type StaffMember struct {
	ID         string
	Name       string
	Email      string
	Roles      []StaffRole
	Schedules  []Schedule
	LeaveDates []LeaveDate
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasRole reports whether the member holds the given role.
func (m *StaffMember) HasRole(role StaffRole) bool {
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// OnLeave reports whether date falls inside any of the member's leave
// ranges. Ranges are inclusive on both ends and compared by calendar date.
func (m *StaffMember) OnLeave(date time.Time) bool {
	for _, leave := range m.LeaveDates {
		if leave.Contains(date) {
			return true
		}
	}
	return false
}
