package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

// SourceError ties a transport or API failure to the source it came
// from, so the report can show which section is unavailable and why.
type SourceError struct {
	Source model.Source
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// wrapErr attaches the source to an underlying failure.
func wrapErr(source model.Source, err error) error {
	return &SourceError{Source: source, Err: err}
}

// Reason maps a fetch failure to a short cause category for display.
// Raw error chains stay out of the report body.
func Reason(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return "unauthorized"
		case http.StatusForbidden:
			return "insufficient permissions"
		case http.StatusNotFound:
			return "not found"
		case http.StatusTooManyRequests:
			return "rate limited"
		}
		if gerr.Code >= 500 {
			return "service error"
		}
		return fmt.Sprintf("request failed (HTTP %d)", gerr.Code)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	return "network error"
}
