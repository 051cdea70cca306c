// Package period provides support for inclusive date windows and
// period-over-period comparison math.
package period

import (
	"fmt"
	"math"
	"time"
)

// Window represents an inclusive [start, end] range of calendar days. The
// zero value is not usable; construct windows with NewWindow.
type Window struct {
	start time.Time
	end   time.Time
}

// NewWindow constructs a window from the two dates, normalized to UTC
// midnight. A start after the end is rejected here so every computation
// downstream can assume a well ordered range.
func NewWindow(start time.Time, end time.Time) (Window, error) {
	start = Day(start)
	end = Day(end)

	if start.After(end) {
		return Window{}, fmt.Errorf("start date %s after end date %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	return Window{start: start, end: end}, nil
}

// MustNewWindow constructs a window and panics on a malformed range. Use in
// tests and startup defaults only.
func MustNewWindow(start time.Time, end time.Time) Window {
	w, err := NewWindow(start, end)
	if err != nil {
		panic(err)
	}

	return w
}

// Start returns the first day of the window.
func (w Window) Start() time.Time {
	return w.start
}

// End returns the last day of the window.
func (w Window) End() time.Time {
	return w.end
}

// Days returns the inclusive day count of the window. A single-day window
// reports 1.
func (w Window) Days() int {
	return int(w.end.Sub(w.start).Hours()/24) + 1
}

// Contains reports whether the given date falls inside the window, start and
// end included.
func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(w.start) && !d.After(w.end)
}

// Previous returns the immediately preceding window of identical length. The
// two windows share no days: the previous window ends the day before this
// one starts.
func (w Window) Previous() Window {
	dayDiff := int(w.end.Sub(w.start).Hours() / 24)
	compEnd := w.start.AddDate(0, 0, -1)
	compStart := compEnd.AddDate(0, 0, -dayDiff)

	return Window{start: compStart, end: compEnd}
}

// String returns the window in string form for cache keys and logging.
func (w Window) String() string {
	return w.start.Format(time.DateOnly) + ".." + w.end.Format(time.DateOnly)
}

// =============================================================================

// Day normalizes a time to UTC midnight so date comparisons never depend on
// the clock portion of a parsed value.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Change computes the percentage change from previous to current at full
// precision. When the previous value is zero the change is defined as zero
// regardless of the current value; that keeps empty comparison windows from
// producing division errors or misleading spikes.
func Change(current float64, previous float64) float64 {
	if previous <= 0 {
		return 0
	}

	return (current - previous) / previous * 100
}

// Round1 rounds a value to one decimal place for display. Chained
// calculations keep the full-precision value and round at the edge only.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
