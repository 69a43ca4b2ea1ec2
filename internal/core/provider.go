package core

import (
	"context"
	"errors"
)

// DefaultMaxResults matches the page size the digest has always asked for.
const DefaultMaxResults = 10

// Query describes one request against a calendar feed.
type Query struct {
	// Calendar ID (e.g., "abc123@group.calendar.google.com")
	CalendarID string
	Window     Window
	MaxResults int
	// Static credential sent as the "key" parameter
	APIKey string
}

// Validate checks the query before any request is made. Every field comes
// from configuration, so failures are reported as KindConfig.
func (q Query) Validate() error {
	switch {
	case q.APIKey == "":
		return invalidQuery("api key is not set")
	case q.CalendarID == "":
		return invalidQuery("calendar id is empty")
	case q.MaxResults <= 0:
		return invalidQuery("max results must be positive")
	case q.Window.Start.IsZero() || !q.Window.Start.Before(q.Window.End):
		return invalidQuery("window start must be before window end")
	case q.Window.Zone == "":
		return invalidQuery("window zone is empty")
	}
	return nil
}

func invalidQuery(msg string) error {
	return &Error{Kind: KindConfig, Op: "validate query", Err: errors.New(msg)}
}

// Provider represents a calendar source.
type Provider interface {
	// ID returns the unique identifier (e.g. "google")
	ID() string
	// Name returns a human-readable label (e.g. "Google Calendar")
	Name() string
	// FetchEvents runs a single query. It blocks until done or ctx is done,
	// and any error it returns is a *Error.
	FetchEvents(ctx context.Context, q Query) ([]Event, error)
}
