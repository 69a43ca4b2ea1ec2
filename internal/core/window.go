package core

import (
	"net/url"
	"time"
)

// TimeLayout is the boundary encoding the provider expects: ISO-8601 with
// an explicit numeric offset. time.RFC3339 would print "Z" for UTC.
const TimeLayout = "2006-01-02T15:04:05-07:00"

// Window is a half-open [Start, End) interval in a civil timezone.
// Start and End carry the zone's offset at their own instants.
type Window struct {
	Start time.Time
	End   time.Time
	// IANA timezone id (e.g., "Europe/Copenhagen")
	Zone string
}

// Span returns the absolute length of the window.
func (w Window) Span() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// TimeMin renders the start boundary.
func (w Window) TimeMin() string { return w.Start.Format(TimeLayout) }

// TimeMax renders the end boundary.
func (w Window) TimeMax() string { return w.End.Format(TimeLayout) }

// Values returns the window as provider query parameters.
func (w Window) Values() url.Values {
	return url.Values{
		"timeMin":  {w.TimeMin()},
		"timeMax":  {w.TimeMax()},
		"timeZone": {w.Zone},
	}
}

// Encode renders the window as a percent-encoded query component,
// e.g. "timeMax=2025-04-03T13%3A00%3A00%2B02%3A00&...".
func (w Window) Encode() string {
	return w.Values().Encode()
}
