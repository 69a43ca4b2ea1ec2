// Package export writes fetched events in machine-readable formats.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"gopkg.in/yaml.v3"

	"github.com/theakshaypant/doven/internal/core"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

const productID = "-//doven//Doven Kalender//DA"

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatICS:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "ical":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("unknown format %q (supported: text, json, yaml, ics)", s)
	}
}

// Document is the envelope for JSON and YAML output.
type Document struct {
	CalendarID string       `json:"calendar_id" yaml:"calendar_id"`
	TimeZone   string       `json:"time_zone" yaml:"time_zone"`
	TimeMin    string       `json:"time_min" yaml:"time_min"`
	TimeMax    string       `json:"time_max" yaml:"time_max"`
	Events     []core.Event `json:"events" yaml:"events"`
}

// NewDocument pairs events with the query that produced them.
func NewDocument(q core.Query, events []core.Event) Document {
	if events == nil {
		events = []core.Event{}
	}
	return Document{
		CalendarID: q.CalendarID,
		TimeZone:   q.Window.Zone,
		TimeMin:    q.Window.TimeMin(),
		TimeMax:    q.Window.TimeMax(),
		Events:     events,
	}
}

// Write encodes doc in format f. generated stamps ICS output (DTSTAMP).
func Write(w io.Writer, f Format, doc Document, generated time.Time) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatICS:
		return ical.NewEncoder(w).Encode(Calendar(doc.Events, generated))
	default:
		return fmt.Errorf("format %q is not a structured export", f)
	}
}

// Calendar converts events into a VCALENDAR with one VEVENT each.
func Calendar(events []core.Event, generated time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, e := range events {
		vevent := ical.NewComponent(ical.CompEvent)
		vevent.Props.SetText(ical.PropUID, e.ID)
		vevent.Props.SetDateTime(ical.PropDateTimeStamp, generated.UTC())
		vevent.Props.SetText(ical.PropStatus, strings.ToUpper(e.Status.String()))

		if e.Summary != "" {
			vevent.Props.SetText(ical.PropSummary, e.Summary)
		}
		if e.Description != "" {
			vevent.Props.SetText(ical.PropDescription, e.Description)
		}

		if e.AllDay {
			dtstart := ical.NewProp(ical.PropDateTimeStart)
			dtstart.SetDate(e.Start)
			vevent.Props.Set(dtstart)
			dtend := ical.NewProp(ical.PropDateTimeEnd)
			dtend.SetDate(e.End)
			vevent.Props.Set(dtend)
		} else {
			// UTC keeps the instant without needing a VTIMEZONE.
			vevent.Props.SetDateTime(ical.PropDateTimeStart, e.Start.UTC())
			vevent.Props.SetDateTime(ical.PropDateTimeEnd, e.End.UTC())
		}

		cal.Children = append(cal.Children, vevent)
	}
	return cal
}
