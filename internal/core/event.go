package core

import (
	"fmt"
	"time"
)

// EventStatus is the provider-side status of an event.
type EventStatus int

const (
	StatusConfirmed EventStatus = iota
	StatusTentative
	StatusCancelled
)

var statusNames = map[EventStatus]string{
	StatusConfirmed: "confirmed",
	StatusTentative: "tentative",
	StatusCancelled: "cancelled",
}

func (s EventStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("EventStatus(%d)", int(s))
}

// ParseEventStatus maps the provider's status string to an EventStatus.
func ParseEventStatus(s string) (EventStatus, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown event status %q", s)
}

// MarshalText lets encoders write the status by name.
func (s EventStatus) MarshalText() ([]byte, error) {
	if _, ok := statusNames[s]; !ok {
		return nil, fmt.Errorf("unknown event status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *EventStatus) UnmarshalText(b []byte) error {
	status, err := ParseEventStatus(string(b))
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Event is the normalized projection of a single provider item.
// Adapters build one per item; downstream code treats it as read-only.
type Event struct {
	// Unique ID (provided by the source)
	ID string `json:"id" yaml:"id"`
	// May be empty
	Summary string `json:"summary" yaml:"summary"`
	// Empty when the provider sent none
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Timing, with the offset the provider reported
	Start  time.Time   `json:"start" yaml:"start"`
	End    time.Time   `json:"end" yaml:"end"`
	AllDay bool        `json:"all_day,omitempty" yaml:"all_day,omitempty"`
	Status EventStatus `json:"status" yaml:"status"`
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// InProgress checks if the event is happening right now.
func (e Event) InProgress(now time.Time) bool {
	return now.After(e.Start) && now.Before(e.End)
}
