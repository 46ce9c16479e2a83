// Package timeutil provides the calendar arithmetic shared by attendance
// classification and performance aggregation: inclusive week/month/quarter
// windows and minute-of-day wall clocks. Everything is computed in a fixed
// organizational location; there is no DST special-casing because deadlines
// compare as minute-of-day integers.
package timeutil

import (
	"fmt"
	"time"
)

// Window is an inclusive [Start, End] date range used to filter records.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window, inclusive on both ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Label formats the window as a compact range for diagnostics.
func (w Window) Label() string {
	return fmt.Sprintf("%s..%s", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"))
}

// WeekBounds returns the week containing t, starting on weekStartsOn.
// Start is midnight of the first day, End is the last nanosecond of the
// seventh day, so both boundary days are included.
func WeekBounds(t time.Time, weekStartsOn time.Weekday) Window {
	daysBack := (int(t.Weekday()) - int(weekStartsOn) + 7) % 7
	year, month, day := t.AddDate(0, 0, -daysBack).Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// MonthBounds returns the calendar month containing t, inclusive.
func MonthBounds(t time.Time) Window {
	year, month, _ := t.Date()
	start := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// QuarterBounds returns the calendar quarter containing t, inclusive.
func QuarterBounds(t time.Time) Window {
	year, month, _ := t.Date()
	quarterStart := time.Month((int(month)-1)/3*3 + 1)
	start := time.Date(year, quarterStart, 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 3, 0).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}

// DayBounds returns the calendar day containing t, inclusive.
func DayBounds(t time.Time) Window {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return Window{Start: start, End: end}
}
