// Package timefmt renders stored timestamps for display. In-conversation
// timestamps are always clock times; chat-list timestamps collapse to
// "Yesterday", a weekday name, or a date as they age. Day comparisons use
// local calendar days, not 24-hour windows.
package timefmt

import "time"

// Context selects the display rules.
type Context int

const (
	// InConversation renders HH:mm regardless of age.
	InConversation Context = iota
	// InList renders HH:mm today, "Yesterday", the weekday name within the
	// last seven days, then DD/MM/YYYY.
	InList
)

// Format renders ts for the given context relative to the current time.
// A zero timestamp renders as the empty string.
func Format(ts time.Time, ctx Context) string {
	return formatAt(ts, ctx, time.Now())
}

func formatAt(ts time.Time, ctx Context, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	ts = ts.Local()
	if ctx == InConversation {
		return ts.Format("15:04")
	}

	switch days := calendarDaysBetween(ts, now.Local()); {
	case days == 0:
		return ts.Format("15:04")
	case days == 1:
		return "Yesterday"
	case days < 7:
		return ts.Weekday().String()
	default:
		return ts.Format("02/01/2006")
	}
}

// calendarDaysBetween counts local calendar-day boundaries from ts to now.
func calendarDaysBetween(ts, now time.Time) int {
	ty, tm, td := ts.Date()
	ny, nm, nd := now.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
