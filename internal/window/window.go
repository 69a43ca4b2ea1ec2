// Package window computes the query interval for "the next period" in a
// civil timezone.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/theakshaypant/doven/internal/core"
)

// DefaultSpan is one week.
const DefaultSpan = 7 * 24 * time.Hour

// ZoneLoader resolves an IANA timezone id against a timezone database.
type ZoneLoader func(name string) (*time.Location, error)

// Calculator builds windows. The zero value uses the system timezone
// database and the wall clock.
type Calculator struct {
	// Defaults to time.LoadLocation
	LoadZone ZoneLoader
	// Defaults to time.Now
	Clock func() time.Time
}

// Compute returns the window starting at now and lasting span, expressed in
// zone. See Calculator.Compute.
func Compute(now time.Time, zone string, span time.Duration) (core.Window, error) {
	return Calculator{}.Compute(now, zone, span)
}

// Compute returns [now, now+span) in zone. The start is truncated to whole
// seconds so that the rendered boundary is the exact instant. The end is an
// absolute duration after the start, so a DST transition inside the window
// shows up as a different offset on End rather than a shorter window.
func (c Calculator) Compute(now time.Time, zone string, span time.Duration) (core.Window, error) {
	if zone == "" {
		return core.Window{}, configError(errors.New("timezone is empty"))
	}
	if span <= 0 {
		return core.Window{}, configError(fmt.Errorf("span must be positive, got %s", span))
	}

	load := c.LoadZone
	if load == nil {
		load = time.LoadLocation
	}
	loc, err := load(zone)
	if err != nil {
		return core.Window{}, configError(fmt.Errorf("load timezone %q: %w", zone, err))
	}

	start := now.Truncate(time.Second).In(loc)
	return core.Window{
		Start: start,
		End:   start.Add(span).In(loc),
		Zone:  zone,
	}, nil
}

// Next computes the window starting at the calculator's clock.
func (c Calculator) Next(zone string, span time.Duration) (core.Window, error) {
	clock := c.Clock
	if clock == nil {
		clock = time.Now
	}
	return c.Compute(clock(), zone, span)
}

func configError(err error) error {
	return &core.Error{Kind: core.KindConfig, Op: "compute window", Err: err}
}
