package timefmt

import (
	"testing"
	"time"
)

var now = time.Date(2026, time.March, 18, 14, 0, 0, 0, time.Local) // a Wednesday

func TestFormatZeroTime(t *testing.T) {
	if got := formatAt(time.Time{}, InList, now); got != "" {
		t.Errorf("zero ts (list) = %q, want empty", got)
	}
	if got := formatAt(time.Time{}, InConversation, now); got != "" {
		t.Errorf("zero ts (conversation) = %q, want empty", got)
	}
}

func TestFormatInConversation(t *testing.T) {
	// Always clock time, even for old timestamps.
	old := now.AddDate(0, -2, 0).Add(-3 * time.Hour)
	if got := formatAt(old, InConversation, now); got != "11:00" {
		t.Errorf("got %q, want 11:00", got)
	}
}

func TestFormatInList(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"same day", time.Date(2026, time.March, 18, 9, 30, 0, 0, time.Local), "09:30"},
		{"yesterday", now.AddDate(0, 0, -1), "Yesterday"},
		{"two days ago", now.AddDate(0, 0, -2), "Monday"},
		{"six days ago", now.AddDate(0, 0, -6), "Thursday"},
		{"seven days ago", now.AddDate(0, 0, -7), "11/03/2026"},
		{"ten days ago", now.AddDate(0, 0, -10), "08/03/2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAt(tt.ts, InList, now); got != tt.want {
				t.Errorf("formatAt(%v) = %q, want %q", tt.ts, got, tt.want)
			}
		})
	}
}

// Calendar days, not 24-hour windows: 23:30 yesterday is "Yesterday" even
// though it is less than an hour before a 00:10 now.
func TestFormatInListCalendarDayBoundary(t *testing.T) {
	midnightish := time.Date(2026, time.March, 18, 0, 10, 0, 0, time.Local)
	lateYesterday := time.Date(2026, time.March, 17, 23, 30, 0, 0, time.Local)
	if got := formatAt(lateYesterday, InList, midnightish); got != "Yesterday" {
		t.Errorf("got %q, want Yesterday", got)
	}
}
