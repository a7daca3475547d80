package util

import (
	"time"

	"google.golang.org/api/calendar/v3"
)

const dateOnlyLayout = "2006-01-02"

// EventTime extracts the displayable time of a calendar event boundary.
// Timed events carry an RFC 3339 DateTime; all-day events only carry a
// date. The second return value reports the all-day case.
func EventTime(edt *calendar.EventDateTime) (string, bool) {
	if edt == nil {
		return "", false
	}
	if edt.DateTime != "" {
		return edt.DateTime, false
	}
	return edt.Date, true
}

// FormatEventTime renders an event boundary for terminal output.
// RFC 3339 values are shortened to a local "Mon 02 Jan 15:04"; date-only
// values pass through unchanged. Unparseable values also pass through,
// the report should not drop an event over a malformed timestamp.
func FormatEventTime(value string, allDay bool) string {
	if allDay || value == "" {
		return value
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return t.Local().Format("Mon 02 Jan 15:04")
}

// FormatDue shortens a task due timestamp to its date part.
// Google Tasks reports due dates as RFC 3339 with a zero time component,
// so the clock carries no information.
func FormatDue(due string) string {
	if due == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, due)
	if err != nil {
		return due
	}
	return t.Format(dateOnlyLayout)
}
