package reportbus

import (
	"github.com/jcpaschoal/platform-analytics/business/domain/licencebus"
	"github.com/jcpaschoal/platform-analytics/business/domain/seriesbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/tenancybus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/types/frequency"
)

// Stat pairs a metric's value for the filter window with its one-decimal
// percentage change against the immediately preceding window of equal
// length. The change is exactly 0 whenever the previous value is 0.
type Stat struct {
	Value  float64
	Change float64
}

// Overview is the landing view: headline figures, the weekly activity
// series and the most engaged tenancies.
type Overview struct {
	TotalUsers     int
	ActiveUsers    Stat
	NewUsers       Stat
	StaticNewUsers int
	SessionHours   Stat
	WeeklySeries   []seriesbus.Week
	TopTenancies   []tenancybus.Summary
}

// ComponentLicences is one component's licence position within the licence
// view: assignment and capacity from the records, activity and its delta
// from the working sets.
type ComponentLicences struct {
	Assigned     int
	Active       int
	ActiveChange float64
	Capacity     int
	Utilization  float64
}

// Licences is the licence view: per-component positions plus the sortable
// per-tenancy assignment table.
type Licences struct {
	Connect   ComponentLicences
	Workbench ComponentLicences
	Table     []licencebus.Row
	Total     int
}

// Users is the user engagement view. DailyCount and WeeklyCount proxy the
// latest day's power and regular tiers; the table holds at most the first
// hundred rows after sorting.
type Users struct {
	DailyCount      int
	WeeklyCount     int
	ActiveCount     Stat
	DormantCount    Stat
	AvgSessionLen   Stat
	SessionsPerUser Stat
	Frequency       map[frequency.Frequency]int
	Distribution    []seriesbus.Segment
	Table           []userbus.User
	Total           int
}

// Tenancies is the tenancy view: the sortable per-tenancy table with user
// totals and licence figures.
type Tenancies struct {
	Table []tenancybus.Row
	Total int
}
