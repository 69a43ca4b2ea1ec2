package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseEventStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    EventStatus
		wantErr bool
	}{
		{"confirmed", StatusConfirmed, false},
		{"tentative", StatusTentative, false},
		{"cancelled", StatusCancelled, false},
		{"", 0, true},
		{"Confirmed", 0, true},
		{"declined", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEventStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseEventStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseEventStatus(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEventJSON(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	e := Event{
		ID:      "24qogpvq8p0euh5pugaau41jgg",
		Summary: "Sommerafslutning",
		Start:   time.Date(2025, 6, 19, 19, 0, 0, 0, loc),
		End:     time.Date(2025, 6, 19, 21, 0, 0, 0, loc),
		Status:  StatusTentative,
	}

	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	s := string(b)
	for _, want := range []string{`"status":"tentative"`, `"start":"2025-06-19T19:00:00+02:00"`} {
		if !strings.Contains(s, want) {
			t.Errorf("json = %s, missing %s", s, want)
		}
	}
	if strings.Contains(s, "description") {
		t.Errorf("json = %s, empty description should be omitted", s)
	}

	var back Event
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if back.Status != StatusTentative || !back.Start.Equal(e.Start) {
		t.Errorf("decoded = %+v, want %+v", back, e)
	}
}

func TestEventTiming(t *testing.T) {
	start := time.Date(2025, 6, 19, 19, 0, 0, 0, time.UTC)
	e := Event{Start: start, End: start.Add(2 * time.Hour)}

	if got := e.Duration(); got != 2*time.Hour {
		t.Errorf("Duration() = %v, want 2h", got)
	}
	if !e.InProgress(start.Add(time.Hour)) {
		t.Error("InProgress(mid) = false, want true")
	}
	if e.InProgress(start.Add(3 * time.Hour)) {
		t.Error("InProgress(after) = true, want false")
	}
}

func TestQueryValidate(t *testing.T) {
	start := time.Date(2025, 6, 19, 19, 0, 0, 0, time.UTC)
	valid := Query{
		CalendarID: "cal",
		Window:     Window{Start: start, End: start.Add(time.Hour), Zone: "UTC"},
		MaxResults: 10,
		APIKey:     "key",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	noKey := valid
	noKey.APIKey = ""
	if err := noKey.Validate(); KindOf(err) != KindConfig {
		t.Errorf("Validate() without key = %v, want config error", err)
	}

	tests := []struct {
		name   string
		mutate func(*Query)
	}{
		{"empty calendar", func(q *Query) { q.CalendarID = "" }},
		{"zero max results", func(q *Query) { q.MaxResults = 0 }},
		{"empty window", func(q *Query) { q.Window = Window{} }},
		{"inverted window", func(q *Query) { q.Window.Start, q.Window.End = q.Window.End, q.Window.Start }},
		{"empty zone", func(q *Query) { q.Window.Zone = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			tt.mutate(&q)
			if err := q.Validate(); !errors.Is(err, ErrConfig) {
				t.Errorf("Validate() error = %v, want config error", err)
			}
		})
	}
}
