// Package licencebus computes licence assignment and utilization figures
// from the licence records and the working user set.
package licencebus

import (
	"context"
	"fmt"
	"sort"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/order"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/jcpaschoal/platform-analytics/foundation/otel"
)

// Core manages the set of APIs for licence aggregation. The licence records
// arrive per call so the caller's filter applies to assignment sums the same
// way it applies to the working set.
type Core struct {
	log    *logger.Logger
	consts recordbus.Constants
}

// NewCore constructs a core for licence access.
func NewCore(log *logger.Logger, consts recordbus.Constants) *Core {
	return &Core{
		log:    log,
		consts: consts,
	}
}

// Usage returns the licence position per component. Assignment sums the
// given licence records, activity counts the working set, and utilization is
// assignment against procured capacity as a one-decimal percentage. A zero
// capacity yields zero utilization rather than a division error.
func (c *Core) Usage(ctx context.Context, licences []recordbus.LicenceRecord, working []userbus.User) []Usage {
	ctx, span := otel.AddSpan(ctx, "business.licencebus.usage")
	defer span.End()

	usages := []Usage{
		{Component: component.Connect, Capacity: c.consts.TotalConnectLicences},
		{Component: component.Workbench, Capacity: c.consts.TotalWorkbenchLicences},
	}

	for _, lic := range licences {
		for i := range usages {
			if usages[i].Component.Equal(lic.Component) {
				usages[i].Assigned += lic.LicencesUsed
			}
		}
	}

	for _, usr := range working {
		for i := range usages {
			if usages[i].Component.Equal(usr.Component) {
				usages[i].Active++
			}
		}
	}

	for i := range usages {
		if usages[i].Capacity > 0 {
			usages[i].Utilization = period.Round1(float64(usages[i].Assigned) / float64(usages[i].Capacity) * 100)
		}
	}

	return usages
}

// Table builds one row per tenancy and component pair mentioned by either
// the licence records or the working set. Rows come back fully sorted;
// paging is the caller's concern.
func (c *Core) Table(ctx context.Context, licences []recordbus.LicenceRecord, working []userbus.User, orderBy order.By) ([]Row, error) {
	ctx, span := otel.AddSpan(ctx, "business.licencebus.table")
	defer span.End()

	type key struct {
		tenancy   string
		component component.Component
	}

	index := make(map[key]int)
	rows := make([]Row, 0, len(licences))

	at := func(k key) *Row {
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, Row{Tenancy: k.tenancy, Component: k.component})
		}
		return &rows[i]
	}

	for _, lic := range licences {
		at(key{lic.Tenancy, lic.Component}).Assigned += lic.LicencesUsed
	}

	for _, usr := range working {
		at(key{usr.Tenancy, usr.Component}).Active++
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
	case OrderByComponent:
		lessFn = func(a, b Row) bool { return a.Component.String() < b.Component.String() }
	case OrderByAssigned:
		lessFn = func(a, b Row) bool { return a.Assigned < b.Assigned }
	case OrderByActive:
		lessFn = func(a, b Row) bool { return a.Active < b.Active }
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
