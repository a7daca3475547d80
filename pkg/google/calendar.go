package google

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/daybrief/pkg/model"
	"github.com/harrisonrobin/daybrief/pkg/util"
)

const primaryCalendar = "primary"

// CalendarClient reads upcoming events on the primary calendar.
type CalendarClient struct {
	svc *calendar.Service
	now func() time.Time
}

// NewCalendarClient wraps an authenticated Calendar service.
func NewCalendarClient(svc *calendar.Service) *CalendarClient {
	return &CalendarClient{svc: svc, now: time.Now}
}

// FetchUpcoming lists events in [now, now+days), recurring events
// expanded to single occurrences, ordered by start time and bounded by
// maxResults.
func (c *CalendarClient) FetchUpcoming(ctx context.Context, days int, maxResults int64) ([]model.Event, error) {
	now := c.now().UTC()
	end := now.AddDate(0, 0, days)

	result, err := c.svc.Events.List(primaryCalendar).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(maxResults).
		Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(model.SourceCalendar, err)
	}

	events := make([]model.Event, 0, len(result.Items))
	for _, item := range result.Items {
		events = append(events, eventFromAPI(item))
	}
	return events, nil
}

func eventFromAPI(item *calendar.Event) model.Event {
	start, allDay := util.EventTime(item.Start)
	end, _ := util.EventTime(item.End)

	e := model.Event{
		Summary: item.Summary,
		Start:   start,
		End:     end,
		AllDay:  allDay,
	}
	if e.Summary == "" {
		e.Summary = "(no title)"
	}
	return e
}
