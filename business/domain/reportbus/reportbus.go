// Package reportbus computes the four dashboard views. Every view is a pure
// function of the loaded snapshot and a filter; the busses it composes hold
// only immutable data, so views are reproducible and safe to memoize.
package reportbus

import (
	"context"
	"fmt"

	"github.com/jcpaschoal/platform-analytics/business/domain/licencebus"
	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/seriesbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/tenancybus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/order"
	"github.com/jcpaschoal/platform-analytics/business/sdk/page"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/jcpaschoal/platform-analytics/foundation/otel"
)

// The users table shows at most this many rows, cut after sorting.
const userTableLimit = 100

// How many tenancies the overview ranking surfaces.
const topTenancies = 5

// Viewer defines the behavior the presentation layer depends on. The cache
// store decorates this same interface.
type Viewer interface {
	Overview(ctx context.Context, flt Filter) (Overview, error)
	Licences(ctx context.Context, flt Filter, orderBy order.By, pg page.Page) (Licences, error)
	Users(ctx context.Context, flt Filter, orderBy order.By) (Users, error)
	Tenancies(ctx context.Context, flt Filter, orderBy order.By, pg page.Page) (Tenancies, error)
}

// Core manages the set of APIs for report computation.
type Core struct {
	log        *logger.Logger
	snap       *recordbus.Snapshot
	userBus    *userbus.Core
	tenancyBus *tenancybus.Core
	licenceBus *licencebus.Core
	seriesBus  *seriesbus.Core
}

// NewCore constructs a core for report access over an immutable snapshot.
func NewCore(log *logger.Logger, snap *recordbus.Snapshot, userBus *userbus.Core, tenancyBus *tenancybus.Core, licenceBus *licencebus.Core, seriesBus *seriesbus.Core) *Core {
	return &Core{
		log:        log,
		snap:       snap,
		userBus:    userBus,
		tenancyBus: tenancyBus,
		licenceBus: licenceBus,
		seriesBus:  seriesBus,
	}
}

// Version returns the snapshot version the reports are computed over.
func (c *Core) Version() string {
	return c.snap.Version()
}

// DefaultWindow returns the filter range applied before any user
// interaction.
func (c *Core) DefaultWindow() period.Window {
	return c.snap.DefaultWindow()
}

// Overview computes the landing view for the filter.
func (c *Core) Overview(ctx context.Context, flt Filter) (Overview, error) {
	ctx, span := otel.AddSpan(ctx, "business.reportbus.overview")
	defer span.End()

	consts := c.snap.Constants()
	prev := flt.Window.Previous()

	active := float64(c.userBus.Count(ctx, flt.query()))
	activePrev := float64(c.userBus.Count(ctx, flt.queryFor(prev)))

	newUsers := float64(c.userBus.CountNew(ctx, flt.base(), flt.Window))
	newUsersPrev := float64(c.userBus.CountNew(ctx, flt.base(), prev))

	hours := c.seriesBus.TotalSessionHours(ctx, flt.Window)
	hoursPrev := c.seriesBus.TotalSessionHours(ctx, prev)

	view := Overview{
		TotalUsers:     consts.TotalUsers,
		ActiveUsers:    stat(active, activePrev),
		NewUsers:       stat(newUsers, newUsersPrev),
		StaticNewUsers: consts.StaticNewUsers,
		SessionHours:   stat(hours, hoursPrev),
		WeeklySeries:   c.seriesBus.ResampleWeekly(ctx, flt.Window),
		TopTenancies:   c.tenancyBus.Top(ctx, topTenancies),
	}

	return view, nil
}

// Licences computes the licence view for the filter.
func (c *Core) Licences(ctx context.Context, flt Filter, orderBy order.By, pg page.Page) (Licences, error) {
	ctx, span := otel.AddSpan(ctx, "business.reportbus.licences")
	defer span.End()

	working := c.userBus.List(ctx, flt.query())
	prevWorking := c.userBus.List(ctx, flt.queryFor(flt.Window.Previous()))

	licences := flt.licences(c.snap.Licences())

	usages := c.licenceBus.Usage(ctx, licences, working)
	prevUsages := c.licenceBus.Usage(ctx, licences, prevWorking)

	view := Licences{}
	for i, u := range usages {
		cl := ComponentLicences{
			Assigned:     u.Assigned,
			Active:       u.Active,
			ActiveChange: period.Round1(period.Change(float64(u.Active), float64(prevUsages[i].Active))),
			Capacity:     u.Capacity,
			Utilization:  u.Utilization,
		}

		switch {
		case u.Component.Equal(component.Connect):
			view.Connect = cl
		case u.Component.Equal(component.Workbench):
			view.Workbench = cl
		}
	}

	rows, err := c.licenceBus.Table(ctx, licences, working, orderBy)
	if err != nil {
		return Licences{}, fmt.Errorf("licence table: %w", err)
	}

	view.Total = len(rows)
	view.Table = page.Slice(pg, rows)

	return view, nil
}

// Users computes the user engagement view for the filter. The table is
// truncated to the first hundred rows after sorting, not paged.
func (c *Core) Users(ctx context.Context, flt Filter, orderBy order.By) (Users, error) {
	ctx, span := otel.AddSpan(ctx, "business.reportbus.users")
	defer span.End()

	consts := c.snap.Constants()
	prev := flt.Window.Previous()

	working := c.userBus.List(ctx, flt.query())
	prevWorking := c.userBus.List(ctx, flt.queryFor(prev))

	active := float64(len(working))
	activePrev := float64(len(prevWorking))

	dormant := float64(consts.TotalUsers) - active
	dormantPrev := float64(consts.TotalUsers) - activePrev

	hours := c.seriesBus.TotalSessionHours(ctx, flt.Window)
	hoursPrev := c.seriesBus.TotalSessionHours(ctx, prev)

	avgLen := safeDiv(hours, active)
	avgLenPrev := safeDiv(hoursPrev, activePrev)

	perUser := c.seriesBus.MeanActiveUsers(ctx, flt.Window)
	perUserPrev := c.seriesBus.MeanActiveUsers(ctx, prev)

	view := Users{
		ActiveCount:     stat(active, activePrev),
		DormantCount:    stat(dormant, dormantPrev),
		AvgSessionLen:   stat(avgLen, avgLenPrev),
		SessionsPerUser: stat(perUser, perUserPrev),
		Frequency:       c.userBus.CountByFrequency(ctx, flt.query(), flt.Window.Days()),
	}

	if latest, ok := c.seriesBus.Latest(ctx, flt.Window); ok {
		view.DailyCount = latest.PowerUsers
		view.WeeklyCount = latest.RegularUsers
		view.Distribution = c.seriesBus.Distribution(ctx, latest)
	}

	sorted, err := c.userBus.Query(ctx, flt.query(), orderBy, page.MustParse("1", "100"))
	if err != nil {
		return Users{}, fmt.Errorf("user table: %w", err)
	}

	view.Total = len(working)
	view.Table = sorted
	if len(view.Table) > userTableLimit {
		view.Table = view.Table[:userTableLimit]
	}

	return view, nil
}

// Tenancies computes the tenancy view for the filter.
func (c *Core) Tenancies(ctx context.Context, flt Filter, orderBy order.By, pg page.Page) (Tenancies, error) {
	ctx, span := otel.AddSpan(ctx, "business.reportbus.tenancies")
	defer span.End()

	resolved := c.userBus.List(ctx, flt.base())
	working := c.userBus.List(ctx, flt.query())

	rows, err := c.tenancyBus.Table(ctx, resolved, working, flt.licences(c.snap.Licences()), orderBy)
	if err != nil {
		return Tenancies{}, fmt.Errorf("tenancy table: %w", err)
	}

	view := Tenancies{
		Table: page.Slice(pg, rows),
		Total: len(rows),
	}

	return view, nil
}

// stat pairs a current value with its rounded change against the previous
// one.
func stat(current float64, previous float64) Stat {
	return Stat{
		Value:  current,
		Change: period.Round1(period.Change(current, previous)),
	}
}

func safeDiv(num float64, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
