// Package tenancybus aggregates the resolved user set, the working set and
// the licence records into per-tenancy figures and rankings.
package tenancybus

import (
	"context"
	"fmt"
	"sort"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/order"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/jcpaschoal/platform-analytics/foundation/otel"
)

// Core manages the set of APIs for tenancy aggregation.
type Core struct {
	log     *logger.Logger
	metrics []recordbus.TenancyMetric
}

// NewCore constructs a core for tenancy access.
func NewCore(log *logger.Logger, metrics []recordbus.TenancyMetric) *Core {
	return &Core{
		log:     log,
		metrics: metrics,
	}
}

// Top returns the n tenancies with the most active users from the
// pre-aggregated summary, most engaged first. Ties keep dataset order. The
// session hours figure is derived from the active user count at the platform
// rate.
func (c *Core) Top(ctx context.Context, n int) []Summary {
	ctx, span := otel.AddSpan(ctx, "business.tenancybus.top")
	defer span.End()

	ranked := make([]Summary, len(c.metrics))
	for i, m := range c.metrics {
		ranked[i] = Summary{
			Tenancy:      m.Tenancy,
			ActiveUsers:  m.ActiveUsers,
			TotalLogins:  m.TotalLogins,
			SessionHours: float64(m.ActiveUsers) * recordbus.SessionHoursPerActive,
			Growth:       m.Growth,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ActiveUsers > ranked[j].ActiveUsers
	})

	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}

	return ranked
}

// Table builds one row per tenancy: user totals from the resolved set,
// activity from the working set and assignment from the licence records. A
// tenancy appears if any of the three mention it. Rows come back fully
// sorted; paging is the caller's concern.
func (c *Core) Table(ctx context.Context, resolved []userbus.User, working []userbus.User, licences []recordbus.LicenceRecord, orderBy order.By) ([]Row, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenancybus.table")
	defer span.End()

	index := make(map[string]int)
	rows := make([]Row, 0)

	at := func(tenancy string) *Row {
		i, ok := index[tenancy]
		if !ok {
			i = len(rows)
			index[tenancy] = i
			rows = append(rows, Row{Tenancy: tenancy})
		}
		return &rows[i]
	}

	for _, usr := range resolved {
		at(usr.Tenancy).TotalUsers++
	}

	for _, usr := range working {
		row := at(usr.Tenancy)
		row.ActiveUsers++

		switch usr.Component {
		case component.Connect:
			row.ActiveConnect++
		case component.Workbench:
			row.ActiveWorkbench++
		}
	}

	for _, lic := range licences {
		row := at(lic.Tenancy)

		switch lic.Component {
		case component.Connect:
			row.AssignedConnect += lic.LicencesUsed
		case component.Workbench:
			row.AssignedWorkbench += lic.LicencesUsed
		}
	}

	if err := sortRows(rows, orderBy); err != nil {
		return nil, fmt.Errorf("sort: %w", err)
	}

	return rows, nil
}

// sortRows orders the slice by the requested column. The sort is stable so
// tied values keep their first-seen order.
func sortRows(rows []Row, orderBy order.By) error {
	var lessFn func(a, b Row) bool

	switch orderBy.Field {
	case OrderByTenancy:
		lessFn = func(a, b Row) bool { return a.Tenancy < b.Tenancy }
	case OrderByTotalUsers:
		lessFn = func(a, b Row) bool { return a.TotalUsers < b.TotalUsers }
	case OrderByActiveUsers:
		lessFn = func(a, b Row) bool { return a.ActiveUsers < b.ActiveUsers }
	case OrderByAssignedConnect:
		lessFn = func(a, b Row) bool { return a.AssignedConnect < b.AssignedConnect }
	case OrderByActiveConnect:
		lessFn = func(a, b Row) bool { return a.ActiveConnect < b.ActiveConnect }
	case OrderByAssignedWorkbench:
		lessFn = func(a, b Row) bool { return a.AssignedWorkbench < b.AssignedWorkbench }
	case OrderByActiveWorkbench:
		lessFn = func(a, b Row) bool { return a.ActiveWorkbench < b.ActiveWorkbench }
	default:
		return fmt.Errorf("unknown order field: %s", orderBy.Field)
	}

	if orderBy.Direction == order.DESC {
		asc := lessFn
		lessFn = func(a, b Row) bool { return asc(b, a) }
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return lessFn(rows[i], rows[j])
	})

	return nil
}
