// Package seriesbus answers windowed queries and rollups over the daily
// platform time series.
package seriesbus

import (
	"context"
	"sort"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/tier"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/jcpaschoal/platform-analytics/foundation/otel"
)

// Core manages the set of APIs for time series access.
type Core struct {
	log    *logger.Logger
	points []recordbus.SeriesPoint
}

// NewCore constructs a core for time series access. Points are expected in
// date order, the way the record store hands them out.
func NewCore(log *logger.Logger, points []recordbus.SeriesPoint) *Core {
	return &Core{
		log:    log,
		points: points,
	}
}

// Window returns the points whose date falls inside the window, both ends
// inclusive. An empty result is valid output.
func (c *Core) Window(ctx context.Context, w period.Window) []recordbus.SeriesPoint {
	ctx, span := otel.AddSpan(ctx, "business.seriesbus.window")
	defer span.End()

	points := make([]recordbus.SeriesPoint, 0, len(c.points))
	for _, pt := range c.points {
		if w.Contains(pt.Date) {
			points = append(points, pt)
		}
	}

	return points
}

// Latest returns the newest point inside the window, when one exists.
func (c *Core) Latest(ctx context.Context, w period.Window) (recordbus.SeriesPoint, bool) {
	ctx, span := otel.AddSpan(ctx, "business.seriesbus.latest")
	defer span.End()

	var latest recordbus.SeriesPoint
	var found bool

	for _, pt := range c.points {
		if w.Contains(pt.Date) && (!found || pt.Date.After(latest.Date)) {
			latest = pt
			found = true
		}
	}

	return latest, found
}

// TotalSessionHours sums the session hours across the window.
func (c *Core) TotalSessionHours(ctx context.Context, w period.Window) float64 {
	ctx, span := otel.AddSpan(ctx, "business.seriesbus.totalsessionhours")
	defer span.End()

	var total float64
	for _, pt := range c.points {
		if w.Contains(pt.Date) {
			total += pt.SessionHours
		}
	}

	return total
}

// MeanActiveUsers averages the daily active user counts across the window.
// An empty window reports zero.
func (c *Core) MeanActiveUsers(ctx context.Context, w period.Window) float64 {
	ctx, span := otel.AddSpan(ctx, "business.seriesbus.meanactiveusers")
	defer span.End()

	var total float64
	var days int
	for _, pt := range c.points {
		if w.Contains(pt.Date) {
			total += float64(pt.ActiveUsers)
			days++
		}
	}

	if days == 0 {
		return 0
	}

	return total / float64(days)
}

// ResampleWeekly groups the window's days into Monday-anchored calendar
// weeks, taking the mean of the instantaneous metrics and the sum of the
// event metrics. Weeks come back in date order.
func (c *Core) ResampleWeekly(ctx context.Context, w period.Window) []Week {
	ctx, span := otel.AddSpan(ctx, "business.seriesbus.resampleweekly")
	defer span.End()

	type bucket struct {
		activeTotal  float64
		sessionHours float64
		logins       int
		newUsers     int
		days         int
	}

	buckets := make(map[time.Time]*bucket)
	for _, pt := range c.points {
		if !w.Contains(pt.Date) {
			continue
		}

		ws := weekStart(pt.Date)
		b, found := buckets[ws]
		if !found {
			b = &bucket{}
			buckets[ws] = b
		}

		b.activeTotal += float64(pt.ActiveUsers)
		b.sessionHours += pt.SessionHours
		b.logins += pt.Logins
		b.newUsers += pt.NewUsers
		b.days++
	}

	weeks := make([]Week, 0, len(buckets))
	for ws, b := range buckets {
		weeks = append(weeks, Week{
			WeekStart:    ws,
			ActiveUsers:  b.activeTotal / float64(b.days),
			SessionHours: b.sessionHours,
			Logins:       b.logins,
			NewUsers:     b.newUsers,
		})
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.Before(weeks[j].WeekStart)
	})

	return weeks
}

// Distribution slices a day's population into the four engagement tiers
// with their share of the total. A zero population yields zero percentages,
// never a division error.
func (c *Core) Distribution(ctx context.Context, pt recordbus.SeriesPoint) []Segment {
	ctx, span := otel.AddSpan(ctx, "business.seriesbus.distribution")
	defer span.End()

	segments := []Segment{
		{Tier: tier.Power, Count: pt.PowerUsers},
		{Tier: tier.Regular, Count: pt.RegularUsers},
		{Tier: tier.Light, Count: pt.LightUsers},
		{Tier: tier.Dormant, Count: pt.DormantUsers},
	}

	var total int
	for _, seg := range segments {
		total += seg.Count
	}

	if total > 0 {
		for i := range segments {
			segments[i].Percent = period.Round1(float64(segments[i].Count) / float64(total) * 100)
		}
	}

	return segments
}

// weekStart returns the Monday beginning the calendar week of the given day.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}
