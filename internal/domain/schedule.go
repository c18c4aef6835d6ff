package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Schedule is a weekly recurring class block for a staff member. It carries
// a weekday only, never a date, and recurs every week.
type Schedule struct {
	ID        string
	StaffID   string
	DayOfWeek int // 0=Sunday .. 6=Saturday
	StartTime string
	EndTime   string
	Subject   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ccsSubjects is the fixed set of department subject codes suspended
// campus-wide during CCS-only events. Schedules for these subjects are not
// conflicts when the event carries the ccsOnly flag.
var ccsSubjects = map[string]struct{}{
	"CCPROG1": {},
	"CCPROG2": {},
	"CCPROG3": {},
	"CCICOMP": {},
	"CCDSTRU": {},
	"CCAPDEV": {},
	"CCINFOM": {},
	"CCDSALG": {},
}

// IsCCSSubject reports whether the subject code belongs to the fixed CCS
// set.
func IsCCSSubject(subject string) bool {
	_, ok := ccsSubjects[strings.ToUpper(strings.TrimSpace(subject))]
	return ok
}

// MinuteOfDay parses an "HH:MM" clock string into minutes since midnight.
// Comparing minute-of-day integers avoids the pitfalls of comparing clock
// strings directly.
func MinuteOfDay(clock string) (int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}
	return hour*60 + minute, nil
}

// ValidateWindow checks that start and end are well-formed clocks with
// end strictly after start, returning their minute-of-day values.
func ValidateWindow(start, end string) (int, int, error) {
	startMin, err := MinuteOfDay(start)
	if err != nil {
		return 0, 0, err
	}
	endMin, err := MinuteOfDay(end)
	if err != nil {
		return 0, 0, err
	}
	if endMin <= startMin {
		return 0, 0, fmt.Errorf("end %q must be after start %q", end, start)
	}
	return startMin, endMin, nil
}
