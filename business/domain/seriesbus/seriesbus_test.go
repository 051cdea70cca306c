package seriesbus_test

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/seriesbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
)

var testLog = logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func point(d time.Time, active int, logins int, newUsers int) recordbus.SeriesPoint {
	return recordbus.SeriesPoint{
		Date:         d,
		ActiveUsers:  active,
		Logins:       logins,
		NewUsers:     newUsers,
		SessionHours: float64(active) * recordbus.SessionHoursPerActive,
	}
}

func TestResampleWeekly(t *testing.T) {
	// 2024-01-01 is a Monday. Two full weeks of data.
	var points []recordbus.SeriesPoint
	for i := 0; i < 14; i++ {
		points = append(points, point(date(2024, 1, 1).AddDate(0, 0, i), 100+i, 10, 1))
	}

	core := seriesbus.NewCore(testLog, points)
	w := period.MustNewWindow(date(2024, 1, 1), date(2024, 1, 14))

	weeks := core.ResampleWeekly(context.Background(), w)

	if len(weeks) != 2 {
		t.Fatalf("got %d weeks, want 2", len(weeks))
	}

	if !weeks[0].WeekStart.Equal(date(2024, 1, 1)) || !weeks[1].WeekStart.Equal(date(2024, 1, 8)) {
		t.Errorf("week starts %s and %s, want Mondays 2024-01-01 and 2024-01-08",
			weeks[0].WeekStart.Format(time.DateOnly), weeks[1].WeekStart.Format(time.DateOnly))
	}

	// First week actives run 100..106, mean 103. Session hours sum.
	if weeks[0].ActiveUsers != 103 {
		t.Errorf("week 1 mean active users: got %v, want 103", weeks[0].ActiveUsers)
	}

	wantHours := 0.0
	for i := 0; i < 7; i++ {
		wantHours += float64(100+i) * recordbus.SessionHoursPerActive
	}
	if math.Abs(weeks[0].SessionHours-wantHours) > 1e-9 {
		t.Errorf("week 1 session hours: got %v, want %v", weeks[0].SessionHours, wantHours)
	}

	if weeks[0].Logins != 70 || weeks[0].NewUsers != 7 {
		t.Errorf("week 1 event sums: got logins %d, new %d, want 70, 7", weeks[0].Logins, weeks[0].NewUsers)
	}
}

func TestResampleWeeklyMidweekStart(t *testing.T) {
	// 2024-01-03 is a Wednesday; its bucket anchors back to Monday the 1st.
	core := seriesbus.NewCore(testLog, []recordbus.SeriesPoint{
		point(date(2024, 1, 3), 100, 10, 1),
		point(date(2024, 1, 4), 200, 10, 1),
	})

	w := period.MustNewWindow(date(2024, 1, 3), date(2024, 1, 4))

	weeks := core.ResampleWeekly(context.Background(), w)

	if len(weeks) != 1 {
		t.Fatalf("got %d weeks, want 1", len(weeks))
	}

	if !weeks[0].WeekStart.Equal(date(2024, 1, 1)) {
		t.Errorf("week start %s, want 2024-01-01", weeks[0].WeekStart.Format(time.DateOnly))
	}

	if weeks[0].ActiveUsers != 150 {
		t.Errorf("mean active users: got %v, want 150", weeks[0].ActiveUsers)
	}
}

func TestLatest(t *testing.T) {
	core := seriesbus.NewCore(testLog, []recordbus.SeriesPoint{
		point(date(2024, 1, 1), 100, 10, 1),
		point(date(2024, 1, 5), 200, 10, 1),
		point(date(2024, 1, 9), 300, 10, 1),
	})

	w := period.MustNewWindow(date(2024, 1, 1), date(2024, 1, 6))

	latest, ok := core.Latest(context.Background(), w)
	if !ok {
		t.Fatal("expected a latest point")
	}
	if !latest.Date.Equal(date(2024, 1, 5)) {
		t.Errorf("latest %s, want 2024-01-05", latest.Date.Format(time.DateOnly))
	}

	empty := period.MustNewWindow(date(2023, 1, 1), date(2023, 1, 31))
	if _, ok := core.Latest(context.Background(), empty); ok {
		t.Error("expected no point for an empty window")
	}
}

func TestMeanActiveUsersEmptyWindow(t *testing.T) {
	core := seriesbus.NewCore(testLog, nil)

	w := period.MustNewWindow(date(2024, 1, 1), date(2024, 1, 31))
	if got := core.MeanActiveUsers(context.Background(), w); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestDistribution(t *testing.T) {
	core := seriesbus.NewCore(testLog, nil)

	pt := recordbus.SeriesPoint{
		PowerUsers:   250,
		RegularUsers: 250,
		LightUsers:   250,
		DormantUsers: 250,
	}

	segments := core.Distribution(context.Background(), pt)

	if len(segments) != 4 {
		t.Fatalf("got %d segments, want 4", len(segments))
	}

	var totalCount int
	var totalPercent float64
	for _, seg := range segments {
		totalCount += seg.Count
		totalPercent += seg.Percent

		if seg.Percent != 25.0 {
			t.Errorf("%s: got %v%%, want 25.0%%", seg.Tier, seg.Percent)
		}
	}

	if totalCount != 1000 {
		t.Errorf("counts sum to %d, want 1000", totalCount)
	}
	if totalPercent != 100.0 {
		t.Errorf("percents sum to %v, want 100.0", totalPercent)
	}
}

func TestDistributionZeroPopulation(t *testing.T) {
	core := seriesbus.NewCore(testLog, nil)

	segments := core.Distribution(context.Background(), recordbus.SeriesPoint{})

	for _, seg := range segments {
		if seg.Percent != 0 || seg.Count != 0 {
			t.Errorf("%s: got count %d percent %v, want zeros", seg.Tier, seg.Count, seg.Percent)
		}
	}
}
