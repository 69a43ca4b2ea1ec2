// Package digest renders fetched events as a Danish weekly digest.
package digest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/theakshaypant/doven/internal/core"
	"github.com/theakshaypant/doven/internal/util"
)

const Title = "Doven Kalender"

// Describer produces the text shown under an event. The real generator
// lives outside this repo; PlainDescriber is the stand-in.
type Describer interface {
	Describe(e core.Event) string
}

// DescriberFunc adapts a function to Describer.
type DescriberFunc func(e core.Event) string

func (f DescriberFunc) Describe(e core.Event) string { return f(e) }

// PlainDescriber shows the event's own description as plain text.
var PlainDescriber = DescriberFunc(func(e core.Event) string {
	return util.HTMLToText(e.Description)
})

// Options controls rendering.
type Options struct {
	// Wrap descriptions at this many cells; 0 disables wrapping
	Width int
	// Defaults to PlainDescriber
	Describer Describer
	// Defaults to a renderer for the output writer
	Renderer *lipgloss.Renderer
}

// Day is one civil date and the events starting on it, in input order.
type Day struct {
	Date   time.Time
	Events []core.Event
}

// GroupByDay buckets events by the civil date of their start in loc.
// Days appear in order of first occurrence, which for provider output is
// chronological.
func GroupByDay(events []core.Event, loc *time.Location) []Day {
	var days []Day
	index := make(map[string]int)

	for _, e := range events {
		start := e.Start.In(loc)
		key := start.Format("2006-01-02")
		if i, ok := index[key]; ok {
			days[i].Events = append(days[i].Events, e)
			continue
		}
		y, m, d := start.Date()
		index[key] = len(days)
		days = append(days, Day{
			Date:   time.Date(y, m, d, 0, 0, 0, 0, loc),
			Events: []core.Event{e},
		})
	}
	return days
}

// EmptyMessage is printed when the window has no events.
func EmptyMessage(win core.Window) string {
	return fmt.Sprintf("Der er ingen begivenheder i %s.", periodPhrase(win.Span()))
}

type styles struct {
	title lipgloss.Style
	day   lipgloss.Style
	clock lipgloss.Style
	note  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		day:   r.NewStyle().Bold(true).Underline(true),
		clock: r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		note:  r.NewStyle().Faint(true),
	}
}

// Render writes the digest for events fetched over win.
func Render(w io.Writer, win core.Window, events []core.Event, opts Options) error {
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.NewRenderer(w)
	}
	_, err := io.WriteString(w, RenderString(win, events, opts))
	return err
}

// RenderString is Render into a string.
func RenderString(win core.Window, events []core.Event, opts Options) string {
	r := opts.Renderer
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	describer := opts.Describer
	if describer == nil {
		describer = PlainDescriber
	}
	st := newStyles(r)
	loc := win.Start.Location()

	var b strings.Builder
	b.WriteString(st.title.Render(Title) + "\n")
	fmt.Fprintf(&b, "%s – %s\n", FormatDate(win.Start), FormatDate(win.End.In(loc)))

	if len(events) == 0 {
		b.WriteString("\n" + EmptyMessage(win) + "\n")
		return b.String()
	}

	for _, day := range GroupByDay(events, loc) {
		b.WriteString("\n" + st.day.Render(FormatDate(day.Date)) + "\n")
		for _, e := range day.Events {
			fmt.Fprintf(&b, "  %s  %s%s\n", st.clock.Render(timeRange(e, loc)), title(e), statusNote(e.Status))

			desc := strings.TrimSpace(describer.Describe(e))
			if desc == "" {
				continue
			}
			if opts.Width > 0 {
				desc = ansi.Wordwrap(desc, opts.Width, "")
			}
			for _, line := range strings.Split(desc, "\n") {
				if line == "" {
					b.WriteString("\n")
					continue
				}
				b.WriteString("      " + st.note.Render(line) + "\n")
			}
		}
	}
	return b.String()
}

func title(e core.Event) string {
	if s := strings.TrimSpace(e.Summary); s != "" {
		return s
	}
	return "(uden titel)"
}

func timeRange(e core.Event, loc *time.Location) string {
	if e.AllDay {
		return "hele dagen"
	}
	start, end := e.Start.In(loc), e.End.In(loc)
	if sameDate(start, end) {
		return FormatClock(start) + "–" + FormatClock(end)
	}
	return FormatClock(start) + "–" + FormatDate(end) + " " + FormatClock(end)
}

func statusNote(s core.EventStatus) string {
	switch s {
	case core.StatusTentative:
		return " (foreløbig)"
	case core.StatusCancelled:
		return " (aflyst)"
	default:
		return ""
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
