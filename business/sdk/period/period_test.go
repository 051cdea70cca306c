package period_test

import (
	"testing"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewWindow(t *testing.T) {
	if _, err := period.NewWindow(date(2024, 3, 20), date(2024, 3, 11)); err == nil {
		t.Fatal("expected error for start after end")
	}

	w, err := period.NewWindow(date(2024, 3, 11), date(2024, 3, 20))
	if err != nil {
		t.Fatalf("new window: %s", err)
	}

	if got := w.Days(); got != 10 {
		t.Errorf("days: got %d, want 10", got)
	}
}

func TestWindowNormalizesToMidnight(t *testing.T) {
	start := time.Date(2024, 3, 11, 13, 45, 12, 0, time.UTC)
	end := time.Date(2024, 3, 11, 23, 59, 59, 0, time.UTC)

	w := period.MustNewWindow(start, end)

	if !w.Start().Equal(date(2024, 3, 11)) || !w.End().Equal(date(2024, 3, 11)) {
		t.Errorf("window not normalized: %s", w)
	}
}

func TestPrevious(t *testing.T) {
	tests := []struct {
		name      string
		window    period.Window
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "ten days",
			window:    period.MustNewWindow(date(2024, 3, 11), date(2024, 3, 20)),
			wantStart: date(2024, 3, 1),
			wantEnd:   date(2024, 3, 10),
		},
		{
			name:      "single day",
			window:    period.MustNewWindow(date(2024, 3, 11), date(2024, 3, 11)),
			wantStart: date(2024, 3, 10),
			wantEnd:   date(2024, 3, 10),
		},
		{
			name:      "across month boundary",
			window:    period.MustNewWindow(date(2024, 3, 1), date(2024, 3, 5)),
			wantStart: date(2024, 2, 25),
			wantEnd:   date(2024, 2, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tt.window.Previous()

			if !prev.Start().Equal(tt.wantStart) || !prev.End().Equal(tt.wantEnd) {
				t.Fatalf("got %s, want %s..%s", prev, tt.wantStart.Format(time.DateOnly), tt.wantEnd.Format(time.DateOnly))
			}

			if prev.Days() != tt.window.Days() {
				t.Errorf("length mismatch: prev %d days, window %d days", prev.Days(), tt.window.Days())
			}

			if !prev.End().AddDate(0, 0, 1).Equal(tt.window.Start()) {
				t.Error("windows are not adjacent")
			}

			if prev.Contains(tt.window.Start()) || tt.window.Contains(prev.End()) {
				t.Error("windows share days")
			}
		})
	}
}

func TestChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 75, 100, -25},
		{"zero previous zero current", 0, 0, 0},
		{"zero previous nonzero current", 42, 0, 0},
		{"unchanged", 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := period.Change(tt.current, tt.previous); got != tt.want {
				t.Errorf("change(%v, %v): got %v, want %v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	if got := period.Round1(75.04); got != 75.0 {
		t.Errorf("got %v, want 75.0", got)
	}
	if got := period.Round1(75.06); got != 75.1 {
		t.Errorf("got %v, want 75.1", got)
	}
	if got := period.Round1(-12.34); got != -12.3 {
		t.Errorf("got %v, want -12.3", got)
	}
}
