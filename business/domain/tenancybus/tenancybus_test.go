package tenancybus_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/tenancybus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/order"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
)

var testLog = logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

func metric(tenancy string, active int) recordbus.TenancyMetric {
	return recordbus.TenancyMetric{Tenancy: tenancy, ActiveUsers: active, TotalLogins: active * 3}
}

func user(id string, tenancy string, comp component.Component) userbus.User {
	return userbus.User{
		UserID:    id,
		Tenancy:   tenancy,
		Component: comp,
		LastLogin: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTop(t *testing.T) {
	core := tenancybus.NewCore(testLog, []recordbus.TenancyMetric{
		metric("Nebula", 100),
		metric("Phoenix", 300),
		metric("Orion", 200),
		metric("Vega", 300),
	})

	top := core.Top(context.Background(), 3)

	if len(top) != 3 {
		t.Fatalf("got %d tenancies, want 3", len(top))
	}

	// Phoenix and Vega tie at 300; Phoenix keeps dataset order.
	if top[0].Tenancy != "Phoenix" || top[1].Tenancy != "Vega" || top[2].Tenancy != "Orion" {
		t.Errorf("ranking: got %s, %s, %s", top[0].Tenancy, top[1].Tenancy, top[2].Tenancy)
	}

	wantHours := 300 * recordbus.SessionHoursPerActive
	if top[0].SessionHours != wantHours {
		t.Errorf("session hours: got %v, want %v", top[0].SessionHours, wantHours)
	}
}

func TestTopLargerThanSet(t *testing.T) {
	core := tenancybus.NewCore(testLog, []recordbus.TenancyMetric{metric("Nebula", 100)})

	if got := core.Top(context.Background(), 5); len(got) != 1 {
		t.Errorf("got %d tenancies, want 1", len(got))
	}
}

func TestTable(t *testing.T) {
	ctx := context.Background()
	core := tenancybus.NewCore(testLog, nil)

	resolved := []userbus.User{
		user("u1", "Nebula", component.Connect),
		user("u2", "Nebula", component.Workbench),
		user("u3", "Phoenix", component.Connect),
	}

	working := []userbus.User{
		user("u1", "Nebula", component.Connect),
		user("u3", "Phoenix", component.Connect),
	}

	licences := []recordbus.LicenceRecord{
		{Tenancy: "Nebula", Component: component.Connect, LicencesUsed: 40},
		{Tenancy: "Nebula", Component: component.Workbench, LicencesUsed: 20},
		{Tenancy: "Orion", Component: component.Connect, LicencesUsed: 10},
	}

	rows, err := core.Table(ctx, resolved, working, licences, tenancybus.DefaultOrderBy)
	if err != nil {
		t.Fatalf("table: %s", err)
	}

	// Orion appears through licences alone.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	// Default order is tenancy ascending.
	if rows[0].Tenancy != "Nebula" || rows[1].Tenancy != "Orion" || rows[2].Tenancy != "Phoenix" {
		t.Fatalf("order: got %s, %s, %s", rows[0].Tenancy, rows[1].Tenancy, rows[2].Tenancy)
	}

	nebula := rows[0]
	if nebula.TotalUsers != 2 || nebula.ActiveUsers != 1 {
		t.Errorf("nebula users: got total %d active %d, want 2, 1", nebula.TotalUsers, nebula.ActiveUsers)
	}
	if nebula.AssignedConnect != 40 || nebula.AssignedWorkbench != 20 {
		t.Errorf("nebula assigned: got %d/%d, want 40/20", nebula.AssignedConnect, nebula.AssignedWorkbench)
	}
	if nebula.ActiveConnect != 1 || nebula.ActiveWorkbench != 0 {
		t.Errorf("nebula active: got %d/%d, want 1/0", nebula.ActiveConnect, nebula.ActiveWorkbench)
	}

	// Single attribution: per-tenancy active users sum to the working set.
	var sum int
	for _, row := range rows {
		sum += row.ActiveUsers
	}
	if sum != len(working) {
		t.Errorf("per-tenancy active users sum to %d, want %d", sum, len(working))
	}
}

func TestTableOrderByActiveUsersDesc(t *testing.T) {
	ctx := context.Background()
	core := tenancybus.NewCore(testLog, nil)

	working := []userbus.User{
		user("u1", "Nebula", component.Connect),
		user("u2", "Phoenix", component.Connect),
		user("u3", "Phoenix", component.Workbench),
	}

	rows, err := core.Table(ctx, working, working, nil, order.NewBy(tenancybus.OrderByActiveUsers, order.DESC))
	if err != nil {
		t.Fatalf("table: %s", err)
	}

	if rows[0].Tenancy != "Phoenix" {
		t.Errorf("got %s first, want Phoenix", rows[0].Tenancy)
	}
}

func TestTableUnknownOrderField(t *testing.T) {
	core := tenancybus.NewCore(testLog, nil)

	if _, err := core.Table(context.Background(), nil, nil, nil, order.NewBy("zz", order.ASC)); err == nil {
		t.Fatal("expected error for unknown order field")
	}
}
