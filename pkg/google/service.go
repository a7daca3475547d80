package google

import (
	"context"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"
)

// Service constructors for the three APIs the report reads. Each takes
// the token source produced by the auth manager; extra options are for
// tests (endpoint overrides).

func NewGmailService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*gmail.Service, error) {
	return gmail.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}

func NewTasksService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*tasks.Service, error) {
	return tasks.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}

func NewCalendarService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*calendar.Service, error) {
	return calendar.NewService(ctx, append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)...)
}
