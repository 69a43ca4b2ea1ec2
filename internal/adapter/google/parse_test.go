package google

import (
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"
)

func TestParseEventRoundTrip(t *testing.T) {
	boundaries := []string{
		"2025-06-19T19:00:00+02:00",
		"2025-03-30T01:59:59+01:00",
		"2025-03-30T03:00:00+02:00",
		"2025-11-02T01:30:00-05:00",
		"2025-06-19T17:00:00Z",
		"2025-06-19T17:00:00.25+05:30",
	}

	for _, b := range boundaries {
		t.Run(b, func(t *testing.T) {
			item := &calendar.Event{
				Id:     "evt",
				Status: "confirmed",
				Start:  &calendar.EventDateTime{DateTime: b},
				End:    &calendar.EventDateTime{DateTime: b},
			}
			got, err := parseEvent(item, time.UTC)
			if err != nil {
				t.Fatalf("parseEvent() error = %v", err)
			}
			if got.ID != item.Id {
				t.Errorf("ID = %q, want %q", got.ID, item.Id)
			}
			if got.Status.String() != item.Status {
				t.Errorf("Status = %v, want %q", got.Status, item.Status)
			}
			if s := got.Start.Format(time.RFC3339Nano); s != b {
				t.Errorf("Start renders as %q, want %q", s, b)
			}
			if s := got.End.Format(time.RFC3339Nano); s != b {
				t.Errorf("End renders as %q, want %q", s, b)
			}
		})
	}
}

func TestParseEventTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	tests := []struct {
		name       string
		dt         *calendar.EventDateTime
		want       string
		wantAllDay bool
		wantErr    bool
	}{
		{name: "timed", dt: &calendar.EventDateTime{DateTime: "2025-06-19T19:00:00+02:00"}, want: "2025-06-19T19:00:00+02:00"},
		{name: "all day", dt: &calendar.EventDateTime{Date: "2025-12-24"}, want: "2025-12-24T00:00:00+01:00", wantAllDay: true},
		{name: "dateTime wins over date", dt: &calendar.EventDateTime{DateTime: "2025-06-19T19:00:00+02:00", Date: "2025-06-19"}, want: "2025-06-19T19:00:00+02:00"},
		{name: "nil", dt: nil, wantErr: true},
		{name: "empty", dt: &calendar.EventDateTime{}, wantErr: true},
		{name: "no offset", dt: &calendar.EventDateTime{DateTime: "2025-06-19T19:00:00"}, wantErr: true},
		{name: "bad date", dt: &calendar.EventDateTime{Date: "24/12/2025"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, allDay, err := parseEventTime(tt.dt, loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseEventTime() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if s := got.Format(time.RFC3339); s != tt.want {
				t.Errorf("parseEventTime() = %s, want %s", s, tt.want)
			}
			if allDay != tt.wantAllDay {
				t.Errorf("allDay = %v, want %v", allDay, tt.wantAllDay)
			}
		})
	}
}

func TestParseEventNil(t *testing.T) {
	if _, err := parseEvent(nil, time.UTC); err == nil {
		t.Error("parseEvent(nil) error = nil, want error")
	}
}
