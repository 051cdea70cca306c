package userbus_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/order"
	"github.com/jcpaschoal/platform-analytics/business/sdk/page"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
	"github.com/jcpaschoal/platform-analytics/business/types/frequency"
	"github.com/jcpaschoal/platform-analytics/business/types/status"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
)

var testLog = logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(userID string, tenancy string, comp component.Component, lastLogin time.Time, logins int) recordbus.UserRecord {
	return recordbus.UserRecord{
		UserID:      userID,
		Tenancy:     tenancy,
		Component:   comp,
		Environment: environment.Production,
		LastLogin:   lastLogin,
		LoginCount:  logins,
	}
}

func TestResolveLatestLoginWins(t *testing.T) {
	raw := []recordbus.UserRecord{
		record("u1", "Nebula", component.Connect, date(2024, 1, 10), 5),
		record("u2", "Orion", component.Connect, date(2024, 1, 5), 3),
		record("u1", "Phoenix", component.Workbench, date(2024, 1, 12), 8),
	}

	resolved := userbus.Resolve(raw)

	if len(resolved) != 2 {
		t.Fatalf("got %d records, want 2", len(resolved))
	}

	// u1 keeps its first-occurrence position but carries the Phoenix record.
	if resolved[0].Tenancy != "Phoenix" || !resolved[0].Component.Equal(component.Workbench) {
		t.Errorf("u1 resolved to %s/%s, want Phoenix/Workbench", resolved[0].Tenancy, resolved[0].Component)
	}

	// The raw input is untouched.
	if raw[0].Tenancy != "Nebula" {
		t.Error("input slice was mutated")
	}
}

func TestResolveTieKeepsFirstSeen(t *testing.T) {
	raw := []recordbus.UserRecord{
		record("u1", "Nebula", component.Connect, date(2024, 1, 10), 5),
		record("u1", "Phoenix", component.Workbench, date(2024, 1, 10), 8),
	}

	resolved := userbus.Resolve(raw)

	if len(resolved) != 1 {
		t.Fatalf("got %d records, want 1", len(resolved))
	}

	if resolved[0].Tenancy != "Nebula" {
		t.Errorf("tie resolved to %s, want first-seen Nebula", resolved[0].Tenancy)
	}
}

func TestResolveEmpty(t *testing.T) {
	if got := userbus.Resolve(nil); len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestQueryFilterIdempotent(t *testing.T) {
	ctx := context.Background()
	refDate := date(2024, 1, 31)

	core := userbus.NewCore(testLog, refDate, []recordbus.UserRecord{
		record("u1", "Nebula", component.Connect, date(2024, 1, 30), 5),
		record("u2", "Nebula", component.Workbench, date(2024, 1, 20), 3),
		record("u3", "Phoenix", component.Connect, date(2024, 1, 10), 7),
	})

	tenancy := "Nebula"
	filter := userbus.QueryFilter{Tenancy: &tenancy}
	orderBy := order.NewBy(userbus.OrderByUserID, order.ASC)
	pg := page.MustParse("1", "50")

	first, err := core.Query(ctx, filter, orderBy, pg)
	if err != nil {
		t.Fatalf("query: %s", err)
	}

	second, err := core.Query(ctx, filter, orderBy, pg)
	if err != nil {
		t.Fatalf("query: %s", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated query differs (-first +second):\n%s", diff)
	}

	if len(first) != 2 {
		t.Errorf("got %d users, want 2", len(first))
	}
}

func TestStatusPartition(t *testing.T) {
	ctx := context.Background()
	refDate := date(2024, 6, 30)

	core := userbus.NewCore(testLog, refDate, []recordbus.UserRecord{
		record("u1", "Nebula", component.Connect, date(2024, 6, 29), 5),
		record("u2", "Nebula", component.Connect, date(2024, 6, 1), 3),
		record("u3", "Orion", component.Workbench, date(2024, 1, 1), 7),
		record("u4", "Vega", component.Connect, date(2024, 6, 30), 1),
	})

	counts := core.CountByStatus(ctx, userbus.QueryFilter{})

	total := counts[status.Active] + counts[status.Inactive] + counts[status.Dormant]
	if total != core.ResolvedCount() {
		t.Errorf("partition sums to %d, want %d", total, core.ResolvedCount())
	}

	if counts[status.Active] != 2 || counts[status.Inactive] != 1 || counts[status.Dormant] != 1 {
		t.Errorf("got %v, want 2 active, 1 inactive, 1 dormant", counts)
	}
}

func TestCountNewSingleDay(t *testing.T) {
	ctx := context.Background()
	day := date(2024, 6, 15)

	core := userbus.NewCore(testLog, day, []recordbus.UserRecord{
		record("first-timer", "Nebula", component.Connect, day, 1),
		record("veteran", "Nebula", component.Connect, day, 40),
		record("elsewhere", "Orion", component.Connect, date(2024, 6, 1), 1),
	})

	w := period.MustNewWindow(day, day)

	if got := core.CountNew(ctx, userbus.QueryFilter{}, w); got != 1 {
		t.Errorf("got %d new users, want 1", got)
	}

	// Active on that single day means a last login exactly on it.
	if got := core.Count(ctx, userbus.QueryFilter{Window: &w}); got != 2 {
		t.Errorf("got %d active users, want 2", got)
	}
}

func TestCountByFrequencyZeroLogins(t *testing.T) {
	ctx := context.Background()
	refDate := date(2024, 6, 30)

	core := userbus.NewCore(testLog, refDate, []recordbus.UserRecord{
		record("silent", "Nebula", component.Connect, date(2024, 6, 29), 0),
		record("daily", "Nebula", component.Connect, date(2024, 6, 29), 30),
	})

	counts := core.CountByFrequency(ctx, userbus.QueryFilter{}, 30)

	if counts[frequency.Dormant] != 1 {
		t.Errorf("got %d dormant, want 1", counts[frequency.Dormant])
	}
	if counts[frequency.Daily] != 1 {
		t.Errorf("got %d daily, want 1", counts[frequency.Daily])
	}
}

func TestSortStable(t *testing.T) {
	ctx := context.Background()
	refDate := date(2024, 1, 31)

	// All three share a last login so sorting by it leaves ties.
	core := userbus.NewCore(testLog, refDate, []recordbus.UserRecord{
		record("u1", "Nebula", component.Connect, date(2024, 1, 15), 5),
		record("u2", "Orion", component.Connect, date(2024, 1, 15), 3),
		record("u3", "Vega", component.Connect, date(2024, 1, 15), 7),
	})

	orderBy := order.NewBy(userbus.OrderByLastLogin, order.DESC)
	pg := page.MustParse("1", "50")

	first, err := core.Query(ctx, userbus.QueryFilter{}, orderBy, pg)
	if err != nil {
		t.Fatalf("query: %s", err)
	}

	for i := 0; i < 5; i++ {
		again, err := core.Query(ctx, userbus.QueryFilter{}, orderBy, pg)
		if err != nil {
			t.Fatalf("query: %s", err)
		}

		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("sort not stable on pass %d (-first +again):\n%s", i, diff)
		}
	}

	// Ties preserve resolution order.
	if first[0].UserID != "u1" || first[1].UserID != "u2" || first[2].UserID != "u3" {
		t.Errorf("tied rows reordered: %s, %s, %s", first[0].UserID, first[1].UserID, first[2].UserID)
	}
}

func TestQueryUnknownOrderField(t *testing.T) {
	ctx := context.Background()

	core := userbus.NewCore(testLog, date(2024, 1, 31), nil)

	if _, err := core.Query(ctx, userbus.QueryFilter{}, order.NewBy("zz", order.ASC), page.MustParse("1", "10")); err == nil {
		t.Fatal("expected error for unknown order field")
	}
}
