package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/calendar/v3"
)

func TestEventTime(t *testing.T) {
	tests := []struct {
		name       string
		edt        *calendar.EventDateTime
		want       string
		wantAllDay bool
	}{
		{
			name: "timed event prefers DateTime",
			edt:  &calendar.EventDateTime{DateTime: "2023-05-01T09:00:00Z", Date: "2023-05-01"},
			want: "2023-05-01T09:00:00Z",
		},
		{
			name:       "all-day event falls back to Date",
			edt:        &calendar.EventDateTime{Date: "2023-05-01"},
			want:       "2023-05-01",
			wantAllDay: true,
		},
		{
			name: "nil boundary",
			edt:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, allDay := EventTime(tt.edt)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantAllDay, allDay)
		})
	}
}

func TestFormatDue(t *testing.T) {
	assert.Equal(t, "2023-01-15", FormatDue("2023-01-15T00:00:00Z"))
	assert.Equal(t, "", FormatDue(""))
	// Malformed input passes through instead of disappearing.
	assert.Equal(t, "not-a-date", FormatDue("not-a-date"))
}

func TestFormatEventTime(t *testing.T) {
	// All-day values are already date-only.
	assert.Equal(t, "2023-05-01", FormatEventTime("2023-05-01", true))
	// Unparseable timed values pass through.
	assert.Equal(t, "garbage", FormatEventTime("garbage", false))
	// Parseable values are shortened; exact text depends on the local
	// zone, so only check it is non-empty and differs from RFC 3339.
	got := FormatEventTime("2023-05-01T09:00:00Z", false)
	assert.NotEmpty(t, got)
	assert.NotContains(t, got, "T09:00:00Z")
}
