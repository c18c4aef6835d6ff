package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/event-staffing-service/internal/domain"
)

// EventCalendarAttachment renders a minimal ICS invite from event fields.
func EventCalendarAttachment(event *domain.Event) *Attachment {
	start := clockOnDate(event.Date, event.StartTime)
	end := clockOnDate(event.Date, event.EndTime)

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//event-staffing-service//EN\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s@event-staffing-service\r\n", event.ID)
	fmt.Fprintf(&b, "DTSTART:%s\r\n", start.Format("20060102T150405Z"))
	fmt.Fprintf(&b, "DTEND:%s\r\n", end.Format("20060102T150405Z"))
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", icsEscape(event.Name))
	if event.Location != "" {
		fmt.Fprintf(&b, "LOCATION:%s\r\n", icsEscape(event.Location))
	}
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")

	return &Attachment{
		FileName: "event.ics",
		MimeType: "text/calendar; method=REQUEST",
		Content:  []byte(b.String()),
	}
}

func clockOnDate(date time.Time, clock string) time.Time {
	minutes, err := domain.MinuteOfDay(clock)
	if err != nil {
		minutes = 0
	}
	return domain.DateOnly(date).Add(time.Duration(minutes) * time.Minute)
}

func icsEscape(s string) string {
	replacer := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return replacer.Replace(s)
}
