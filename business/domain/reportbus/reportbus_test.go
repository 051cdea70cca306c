package reportbus_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/licencebus"
	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/reportbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/seriesbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/tenancybus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/page"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
	"github.com/jcpaschoal/platform-analytics/business/types/frequency"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
)

var testLog = logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

type fixtureStore struct {
	records recordbus.Records
}

func (s fixtureStore) Load(ctx context.Context) (recordbus.Records, error) {
	return s.records, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixtureRecords covers two full calendar weeks, Monday 2024-05-20 through
// Sunday 2024-06-02, with a step up in daily active users on the second
// week so period deltas are non-trivial.
func fixtureRecords() recordbus.Records {
	var series []recordbus.SeriesPoint
	for i := 0; i < 14; i++ {
		active := 100
		if i >= 7 {
			active = 110
		}
		series = append(series, recordbus.SeriesPoint{
			Date:         day(2024, 5, 20+i),
			ActiveUsers:  active,
			Logins:       200,
			NewUsers:     2,
			PowerUsers:   10,
			RegularUsers: 20,
			LightUsers:   30,
			DormantUsers: 40,
		})
	}

	users := []recordbus.UserRecord{
		{UserID: "u1", Tenancy: "Nebula", Component: component.Connect, Environment: environment.Production, LastLogin: day(2024, 6, 1), LoginCount: 30},
		{UserID: "u1", Tenancy: "Phoenix", Component: component.Workbench, Environment: environment.Production, LastLogin: day(2024, 5, 25), LoginCount: 3},
		{UserID: "u2", Tenancy: "Phoenix", Component: component.Connect, Environment: environment.Production, LastLogin: day(2024, 5, 28), LoginCount: 5},
		{UserID: "u3", Tenancy: "Nebula", Component: component.Workbench, Environment: environment.Staging, LastLogin: day(2024, 5, 22), LoginCount: 2},
		{UserID: "u4", Tenancy: "Orion", Component: component.Connect, Environment: environment.Production, LastLogin: day(2024, 4, 1), LoginCount: 1},
	}

	tenancies := []recordbus.TenancyMetric{
		{Tenancy: "Nebula", ActiveUsers: 300, TotalLogins: 900},
		{Tenancy: "Phoenix", ActiveUsers: 500, TotalLogins: 1500},
		{Tenancy: "Orion", ActiveUsers: 100, TotalLogins: 300},
	}

	licences := []recordbus.LicenceRecord{
		{Tenancy: "Nebula", Component: component.Connect, LicencesUsed: 4000},
		{Tenancy: "Phoenix", Component: component.Connect, LicencesUsed: 3500},
		{Tenancy: "Nebula", Component: component.Workbench, LicencesUsed: 1000},
	}

	return recordbus.Records{
		Users:     users,
		Tenancies: tenancies,
		Licences:  licences,
		Series:    series,
	}
}

func newCore(t *testing.T) *reportbus.Core {
	t.Helper()

	store := fixtureStore{records: fixtureRecords()}

	snap, err := recordbus.NewCore(testLog, store).Load(context.Background(), recordbus.DefaultConstants())
	if err != nil {
		t.Fatalf("load: %s", err)
	}

	userBus := userbus.NewCore(testLog, snap.ReferenceDate(), snap.Users())
	tenancyBus := tenancybus.NewCore(testLog, snap.Tenancies())
	licenceBus := licencebus.NewCore(testLog, snap.Constants())
	seriesBus := seriesbus.NewCore(testLog, snap.Series())

	return reportbus.NewCore(testLog, snap, userBus, tenancyBus, licenceBus, seriesBus)
}

// lastWeek is the second calendar week of the fixture. Its comparison
// window is exactly the first week. Working set: u1 and u2; previous
// working set: u3 only.
func lastWeek() reportbus.Filter {
	return reportbus.Filter{
		Window: period.MustNewWindow(day(2024, 5, 27), day(2024, 6, 2)),
	}
}

func TestOverview(t *testing.T) {
	core := newCore(t)

	view, err := core.Overview(context.Background(), lastWeek())
	if err != nil {
		t.Fatalf("overview: %s", err)
	}

	if view.TotalUsers != 10500 {
		t.Errorf("total users: got %d, want 10500", view.TotalUsers)
	}
	if view.StaticNewUsers != 50 {
		t.Errorf("static new users: got %d, want 50", view.StaticNewUsers)
	}

	if view.ActiveUsers.Value != 2 {
		t.Errorf("active users: got %v, want 2", view.ActiveUsers.Value)
	}
	if view.ActiveUsers.Change != 100.0 {
		t.Errorf("active users change: got %v, want 100.0", view.ActiveUsers.Change)
	}

	// 7 days at 110 active and 8.5 hours each, against 7 days at 100.
	if view.SessionHours.Value != 6545.0 {
		t.Errorf("session hours: got %v, want 6545.0", view.SessionHours.Value)
	}
	if view.SessionHours.Change != 10.0 {
		t.Errorf("session hours change: got %v, want 10.0", view.SessionHours.Change)
	}

	if len(view.WeeklySeries) != 1 {
		t.Fatalf("got %d weeks, want 1", len(view.WeeklySeries))
	}
	if view.WeeklySeries[0].ActiveUsers != 110.0 {
		t.Errorf("weekly mean: got %v, want 110.0", view.WeeklySeries[0].ActiveUsers)
	}

	if len(view.TopTenancies) != 3 {
		t.Fatalf("got %d top tenancies, want 3", len(view.TopTenancies))
	}
	if view.TopTenancies[0].Tenancy != "Phoenix" {
		t.Errorf("top tenancy: got %s, want Phoenix", view.TopTenancies[0].Tenancy)
	}
}

func TestOverviewZeroPrevious(t *testing.T) {
	core := newCore(t)

	// Only u3 is active here and nobody is active in the comparison
	// window, so the delta reports 0 rather than a blow-up.
	flt := reportbus.Filter{
		Window: period.MustNewWindow(day(2024, 5, 21), day(2024, 5, 25)),
	}

	view, err := core.Overview(context.Background(), flt)
	if err != nil {
		t.Fatalf("overview: %s", err)
	}

	if view.ActiveUsers.Value != 1 {
		t.Errorf("active users: got %v, want 1", view.ActiveUsers.Value)
	}
	if view.ActiveUsers.Change != 0 {
		t.Errorf("active users change: got %v, want 0 with empty previous window", view.ActiveUsers.Change)
	}
}

func TestLicencesView(t *testing.T) {
	core := newCore(t)

	view, err := core.Licences(context.Background(), lastWeek(), licencebus.DefaultOrderBy, page.MustParse("1", "10"))
	if err != nil {
		t.Fatalf("licences: %s", err)
	}

	connect := view.Connect
	if connect.Assigned != 7500 || connect.Capacity != 10000 {
		t.Errorf("connect: got assigned %d capacity %d, want 7500, 10000", connect.Assigned, connect.Capacity)
	}
	if connect.Utilization != 75.0 {
		t.Errorf("connect utilization: got %v, want 75.0", connect.Utilization)
	}
	if connect.Active != 2 {
		t.Errorf("connect active: got %d, want 2", connect.Active)
	}

	// No connect users in the comparison window.
	if connect.ActiveChange != 0 {
		t.Errorf("connect active change: got %v, want 0", connect.ActiveChange)
	}

	workbench := view.Workbench
	if workbench.Active != 0 {
		t.Errorf("workbench active: got %d, want 0", workbench.Active)
	}
	if workbench.ActiveChange != -100.0 {
		t.Errorf("workbench active change: got %v, want -100.0", workbench.ActiveChange)
	}

	if view.Total != 3 {
		t.Errorf("table total: got %d, want 3", view.Total)
	}
}

func TestUsersView(t *testing.T) {
	core := newCore(t)

	view, err := core.Users(context.Background(), lastWeek(), userbus.DefaultOrderBy)
	if err != nil {
		t.Fatalf("users: %s", err)
	}

	if view.ActiveCount.Value != 2 || view.ActiveCount.Change != 100.0 {
		t.Errorf("active: got %v (%v%%), want 2 (100%%)", view.ActiveCount.Value, view.ActiveCount.Change)
	}
	if view.DormantCount.Value != 10498 {
		t.Errorf("dormant: got %v, want 10498", view.DormantCount.Value)
	}

	// Latest in-window day carries the tier counts.
	if view.DailyCount != 10 || view.WeeklyCount != 20 {
		t.Errorf("tier proxies: got daily %d weekly %d, want 10, 20", view.DailyCount, view.WeeklyCount)
	}
	if len(view.Distribution) != 4 {
		t.Errorf("got %d distribution segments, want 4", len(view.Distribution))
	}

	if view.AvgSessionLen.Value != 3272.5 {
		t.Errorf("avg session length: got %v, want 3272.5", view.AvgSessionLen.Value)
	}
	if view.SessionsPerUser.Value != 110.0 {
		t.Errorf("sessions per user: got %v, want 110.0", view.SessionsPerUser.Value)
	}

	// Both working users log in well inside the daily ratio for a
	// seven-day window.
	if got := view.Frequency[frequency.Daily]; got != 2 {
		t.Errorf("daily frequency: got %d, want 2", got)
	}

	if view.Total != 2 || len(view.Table) != 2 {
		t.Errorf("table: got total %d, %d rows, want 2, 2", view.Total, len(view.Table))
	}

	// Default order is last login descending, so u1 leads.
	if view.Table[0].UserID != "u1" {
		t.Errorf("first row: got %s, want u1", view.Table[0].UserID)
	}
}

func TestTenanciesView(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()
	flt := lastWeek()

	view, err := core.Tenancies(ctx, flt, tenancybus.DefaultOrderBy, page.MustParse("1", "10"))
	if err != nil {
		t.Fatalf("tenancies: %s", err)
	}

	if view.Total != 3 {
		t.Fatalf("got %d rows, want 3", view.Total)
	}

	if view.Table[0].Tenancy != "Nebula" || view.Table[0].TotalUsers != 2 {
		t.Errorf("first row: got %s with %d users, want Nebula with 2", view.Table[0].Tenancy, view.Table[0].TotalUsers)
	}

	// Single attribution keeps the views consistent: per-tenancy active
	// users sum to the overview's globally filtered count.
	overview, err := core.Overview(ctx, flt)
	if err != nil {
		t.Fatalf("overview: %s", err)
	}

	var sum int
	for _, row := range view.Table {
		sum += row.ActiveUsers
	}
	if float64(sum) != overview.ActiveUsers.Value {
		t.Errorf("per-tenancy active users sum to %d, overview says %v", sum, overview.ActiveUsers.Value)
	}
}

func TestTenancyScopedFilter(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	tenancy := "Nebula"
	flt := lastWeek()
	flt.Tenancy = &tenancy

	overview, err := core.Overview(ctx, flt)
	if err != nil {
		t.Fatalf("overview: %s", err)
	}
	if overview.ActiveUsers.Value != 1 {
		t.Errorf("active users: got %v, want 1", overview.ActiveUsers.Value)
	}

	licences, err := core.Licences(ctx, flt, licencebus.DefaultOrderBy, page.MustParse("1", "10"))
	if err != nil {
		t.Fatalf("licences: %s", err)
	}
	if licences.Connect.Assigned != 4000 {
		t.Errorf("connect assigned: got %d, want 4000 for the scoped tenancy", licences.Connect.Assigned)
	}
	if licences.Connect.Utilization != 40.0 {
		t.Errorf("connect utilization: got %v, want 40.0", licences.Connect.Utilization)
	}

	tenancies, err := core.Tenancies(ctx, flt, tenancybus.DefaultOrderBy, page.MustParse("1", "10"))
	if err != nil {
		t.Fatalf("tenancies: %s", err)
	}
	for _, row := range tenancies.Table {
		if row.Tenancy != tenancy {
			t.Errorf("row for %s leaked into the scoped table", row.Tenancy)
		}
	}
}

func TestEmptyWorkingSet(t *testing.T) {
	core := newCore(t)

	// A window before any recorded activity.
	flt := reportbus.Filter{
		Window: period.MustNewWindow(day(2024, 4, 5), day(2024, 4, 6)),
	}

	view, err := core.Users(context.Background(), flt, userbus.DefaultOrderBy)
	if err != nil {
		t.Fatalf("users: %s", err)
	}

	if view.ActiveCount.Value != 0 || view.ActiveCount.Change != 0 {
		t.Errorf("active: got %v (%v%%), want 0 (0%%)", view.ActiveCount.Value, view.ActiveCount.Change)
	}
	if view.AvgSessionLen.Value != 0 {
		t.Errorf("avg session length: got %v, want 0 with nobody active", view.AvgSessionLen.Value)
	}
	if view.DailyCount != 0 || len(view.Distribution) != 0 {
		t.Errorf("no series day should be selected for an empty window")
	}
	if len(view.Table) != 0 {
		t.Errorf("got %d table rows, want 0", len(view.Table))
	}
}

func TestFilterKey(t *testing.T) {
	flt := lastWeek()
	if got, want := flt.Key(), flt.Key(); got != want {
		t.Fatalf("key not stable: %s vs %s", got, want)
	}

	tenancy := "Nebula"
	scoped := flt
	scoped.Tenancy = &tenancy

	if flt.Key() == scoped.Key() {
		t.Error("scoped and unscoped filters share a key")
	}
}
