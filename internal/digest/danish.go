package digest

import (
	"fmt"
	"time"
)

var weekdayNames = [...]string{
	time.Monday:    "mandag",
	time.Tuesday:   "tirsdag",
	time.Wednesday: "onsdag",
	time.Thursday:  "torsdag",
	time.Friday:    "fredag",
	time.Saturday:  "lørdag",
	time.Sunday:    "søndag",
}

var monthNames = [...]string{
	time.January:   "januar",
	time.February:  "februar",
	time.March:     "marts",
	time.April:     "april",
	time.May:       "maj",
	time.June:      "juni",
	time.July:      "juli",
	time.August:    "august",
	time.September: "september",
	time.October:   "oktober",
	time.November:  "november",
	time.December:  "december",
}

// WeekdayName returns the lower-case Danish name of wd.
func WeekdayName(wd time.Weekday) string {
	return weekdayNames[wd]
}

// MonthName returns the lower-case Danish name of m.
func MonthName(m time.Month) string {
	return monthNames[m]
}

// FormatDate renders t as e.g. "torsdag 19. juni".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s %d. %s", WeekdayName(t.Weekday()), t.Day(), MonthName(t.Month()))
}

// FormatClock renders the wall-clock time, 24-hour style.
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// periodPhrase names the look-ahead period, "uge" for exactly one week.
func periodPhrase(span time.Duration) string {
	days := int(span.Round(time.Hour).Hours() / 24)
	switch {
	case days == 7:
		return "den kommende uge"
	case days == 1:
		return "det kommende døgn"
	case days > 1:
		return fmt.Sprintf("de kommende %d dage", days)
	default:
		return "den kommende periode"
	}
}
