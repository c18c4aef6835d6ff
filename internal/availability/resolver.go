// Package availability computes which staff members are free for a
// requested event window. It is purely functional over its inputs and has
// no side effects.
package availability

import (
	"time"

	"github.com/spec-kit/event-staffing-service/internal/domain"
	apperrors "github.com/spec-kit/event-staffing-service/pkg/util/errorutil"
)

const (
	reasonScheduleConflict = "Schedule conflict"
	reasonOnLeave          = "On leave"
)

// Request describes the event window being staffed.
type Request struct {
	Date            time.Time
	StartTime       string
	EndTime         string
	IgnoreConflicts bool
	CCSOnly         bool
}

// Empty reports whether the request is missing its window. An empty
// request resolves to an empty result rather than an error.
func (r Request) Empty() bool {
	return r.Date.IsZero() || r.StartTime == "" || r.EndTime == ""
}

// TimeSlot is one conflicting block in a member's week.
type TimeSlot struct {
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Reason    string `json:"reason"`
}

// Availability is the per-member verdict.
type Availability struct {
	Staff          domain.StaffMember
	FullyAvailable bool
	Conflicts      []TimeSlot
}

// RosterResult partitions available members by coverage role. A member
// holding both roles appears in both lists.
type RosterResult struct {
	Videographers []Availability
	Photographers []Availability
}

// ResolveRoster computes availability for a whole roster. Members on leave
// for the date are excluded from both role lists entirely; they do not
// surface as conflicts in roster mode.
func ResolveRoster(staff []domain.StaffMember, req Request) (RosterResult, error) {
	result := RosterResult{
		Videographers: []Availability{},
		Photographers: []Availability{},
	}
	if req.Empty() {
		return result, nil
	}
	startMin, endMin, err := domain.ValidateWindow(req.StartTime, req.EndTime)
	if err != nil {
		return result, apperrors.NewValidationError("invalid event window", map[string]any{
			"start_time": req.StartTime,
			"end_time":   req.EndTime,
		})
	}

	eventDay := int(req.Date.Weekday())
	for i := range staff {
		member := staff[i]
		if member.OnLeave(req.Date) {
			continue
		}
		entry := memberAvailability(member, eventDay, startMin, endMin, req)
		if member.HasRole(domain.StaffRoleVideographer) {
			result.Videographers = append(result.Videographers, entry)
		}
		if member.HasRole(domain.StaffRolePhotographer) {
			result.Photographers = append(result.Photographers, entry)
		}
	}
	return result, nil
}

// CheckMember computes availability for a single member. Unlike roster
// mode, a leave range covering the date is reported as a single "On leave"
// conflict instead of removing the member from the result.
func CheckMember(member domain.StaffMember, req Request) (Availability, error) {
	if req.Empty() {
		return Availability{Staff: member, FullyAvailable: true}, nil
	}
	startMin, endMin, err := domain.ValidateWindow(req.StartTime, req.EndTime)
	if err != nil {
		return Availability{}, apperrors.NewValidationError("invalid event window", map[string]any{
			"start_time": req.StartTime,
			"end_time":   req.EndTime,
		})
	}
	if member.OnLeave(req.Date) {
		return Availability{
			Staff:          member,
			FullyAvailable: false,
			Conflicts:      []TimeSlot{{Reason: reasonOnLeave}},
		}, nil
	}
	return memberAvailability(member, int(req.Date.Weekday()), startMin, endMin, req), nil
}

func memberAvailability(member domain.StaffMember, eventDay, startMin, endMin int, req Request) Availability {
	if req.IgnoreConflicts {
		return Availability{Staff: member, FullyAvailable: true}
	}

	var conflicts []TimeSlot
	for _, sched := range member.Schedules {
		if sched.DayOfWeek != eventDay {
			continue
		}
		if req.CCSOnly && domain.IsCCSSubject(sched.Subject) {
			// classes for these subjects are suspended campus-wide
			continue
		}
		schedStart, err := domain.MinuteOfDay(sched.StartTime)
		if err != nil {
			continue
		}
		schedEnd, err := domain.MinuteOfDay(sched.EndTime)
		if err != nil {
			continue
		}
		if overlaps(startMin, endMin, schedStart, schedEnd) {
			conflicts = append(conflicts, TimeSlot{
				StartTime: sched.StartTime,
				EndTime:   sched.EndTime,
				Subject:   sched.Subject,
				Reason:    reasonScheduleConflict,
			})
		}
	}
	return Availability{
		Staff:          member,
		FullyAvailable: len(conflicts) == 0,
		Conflicts:      conflicts,
	}
}

// overlaps applies half-open interval overlap: ranges that merely touch at
// an endpoint do not overlap.
func overlaps(startA, endA, startB, endB int) bool {
	return startA < endB && endA > startB
}
