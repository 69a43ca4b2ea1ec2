package google

import (
	"errors"
	"fmt"
	"time"

	"github.com/theakshaypant/doven/internal/core"

	"google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

// parseEvent converts a Google Calendar event to our Event type.
// Summary and description are optional; id, status and both ends are not.
func parseEvent(item *calendar.Event, loc *time.Location) (core.Event, error) {
	if item == nil {
		return core.Event{}, errors.New("item is null")
	}

	status, err := core.ParseEventStatus(item.Status)
	if err != nil {
		return core.Event{}, err
	}

	start, allDay, err := parseEventTime(item.Start, loc)
	if err != nil {
		return core.Event{}, fmt.Errorf("start: %w", err)
	}
	end, _, err := parseEventTime(item.End, loc)
	if err != nil {
		return core.Event{}, fmt.Errorf("end: %w", err)
	}

	return core.Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		Status:      status,
	}, nil
}

// parseEventTime reads a timed ("dateTime") or all-day ("date") boundary.
// All-day dates are placed at midnight in loc, the zone of the query.
func parseEventTime(dt *calendar.EventDateTime, loc *time.Location) (time.Time, bool, error) {
	if dt == nil {
		return time.Time{}, false, errors.New("missing")
	}

	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("parse dateTime %q: %w", dt.DateTime, err)
		}
		return t, false, nil
	}

	if dt.Date != "" {
		if loc == nil {
			loc = time.UTC
		}
		t, err := time.ParseInLocation(dateLayout, dt.Date, loc)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("parse date %q: %w", dt.Date, err)
		}
		return t, true, nil
	}

	return time.Time{}, false, errors.New("has neither dateTime nor date")
}
