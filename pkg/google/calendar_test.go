package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

func newCalendarClient(t *testing.T, now time.Time, handler http.HandlerFunc) *CalendarClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := calendar.NewService(context.Background(),
		option.WithoutAuthentication(), option.WithEndpoint(server.URL))
	require.NoError(t, err)

	client := NewCalendarClient(svc)
	client.now = func() time.Time { return now }
	return client
}

func timedEvent(summary string, start time.Time) *calendar.Event {
	return &calendar.Event{
		Summary: summary,
		Start:   &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:     &calendar.EventDateTime{DateTime: start.Add(time.Hour).Format(time.RFC3339)},
	}
}

func TestFetchUpcomingWindowsEvents(t *testing.T) {
	now := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	// The provider applies timeMin/timeMax; the fake does the same so the
	// windowing contract is exercised end to end.
	all := []*calendar.Event{
		timedEvent("yesterday's standup", now.Add(-time.Hour)),
		timedEvent("dentist", now.Add(time.Hour)),
		timedEvent("next sprint review", now.AddDate(0, 0, 8)),
	}

	client := newCalendarClient(t, now, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/calendars/primary/events") {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
		assert.Equal(t, "startTime", r.URL.Query().Get("orderBy"))

		timeMin, err := time.Parse(time.RFC3339, r.URL.Query().Get("timeMin"))
		require.NoError(t, err)
		timeMax, err := time.Parse(time.RFC3339, r.URL.Query().Get("timeMax"))
		require.NoError(t, err)

		var items []*calendar.Event
		for _, e := range all {
			start, perr := time.Parse(time.RFC3339, e.Start.DateTime)
			require.NoError(t, perr)
			if !start.Before(timeMin) && start.Before(timeMax) {
				items = append(items, e)
			}
		}
		writeJSON(t, w, &calendar.Events{Items: items})
	})

	got, err := client.FetchUpcoming(context.Background(), 7, 15)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "dentist", got[0].Summary)
	assert.False(t, got[0].AllDay)
}

func TestFetchUpcomingAllDayAndUntitled(t *testing.T) {
	now := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	client := newCalendarClient(t, now, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &calendar.Events{Items: []*calendar.Event{
			{
				Start: &calendar.EventDateTime{Date: "2023-05-03"},
				End:   &calendar.EventDateTime{Date: "2023-05-04"},
			},
		}})
	})

	got, err := client.FetchUpcoming(context.Background(), 7, 15)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.Event{
		Summary: "(no title)",
		Start:   "2023-05-03",
		End:     "2023-05-04",
		AllDay:  true,
	}, got[0])
}

func TestFetchUpcomingWrapsAPIError(t *testing.T) {
	now := time.Now()
	client := newCalendarClient(t, now, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":401,"message":"expired"}}`, http.StatusUnauthorized)
	})

	_, err := client.FetchUpcoming(context.Background(), 7, 15)
	var serr *SourceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, model.SourceCalendar, serr.Source)
	assert.Equal(t, "unauthorized", Reason(err))
}
