package reportapp

import (
	"encoding/json"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/licencebus"
	"github.com/jcpaschoal/platform-analytics/business/domain/reportbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/seriesbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/tenancybus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
)

// Stat pairs a displayed value with its period-over-period change.
type Stat struct {
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

func toAppStat(s reportbus.Stat) Stat {
	return Stat{Value: s.Value, Change: s.Change}
}

// Week represents one point of the weekly activity chart.
type Week struct {
	WeekStart    string  `json:"weekStart"`
	ActiveUsers  float64 `json:"activeUsers"`
	SessionHours float64 `json:"sessionHours"`
	Logins       int     `json:"logins"`
	NewUsers     int     `json:"newUsers"`
}

func toAppWeeks(weeks []seriesbus.Week) []Week {
	app := make([]Week, len(weeks))
	for i, w := range weeks {
		app[i] = Week{
			WeekStart:    w.WeekStart.Format(time.DateOnly),
			ActiveUsers:  w.ActiveUsers,
			SessionHours: w.SessionHours,
			Logins:       w.Logins,
			NewUsers:     w.NewUsers,
		}
	}
	return app
}

// TenancySummary represents one bar of the top tenancies ranking.
type TenancySummary struct {
	Tenancy      string  `json:"tenancy"`
	ActiveUsers  int     `json:"activeUsers"`
	TotalLogins  int     `json:"totalLogins"`
	SessionHours float64 `json:"sessionHours"`
	Growth       float64 `json:"growth"`
}

func toAppSummaries(summaries []tenancybus.Summary) []TenancySummary {
	app := make([]TenancySummary, len(summaries))
	for i, s := range summaries {
		app[i] = TenancySummary{
			Tenancy:      s.Tenancy,
			ActiveUsers:  s.ActiveUsers,
			TotalLogins:  s.TotalLogins,
			SessionHours: s.SessionHours,
			Growth:       s.Growth,
		}
	}
	return app
}

// Overview is the landing view response.
type Overview struct {
	TotalUsers     int              `json:"totalUsers"`
	ActiveUsers    Stat             `json:"activeUsers"`
	NewUsers       Stat             `json:"newUsers"`
	StaticNewUsers int              `json:"staticNewUsers"`
	SessionHours   Stat             `json:"sessionHours"`
	WeeklySeries   []Week           `json:"weeklySeries"`
	TopTenancies   []TenancySummary `json:"topTenancies"`
}

// Encode implements the encoder interface.
func (app Overview) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppOverview(view reportbus.Overview) Overview {
	return Overview{
		TotalUsers:     view.TotalUsers,
		ActiveUsers:    toAppStat(view.ActiveUsers),
		NewUsers:       toAppStat(view.NewUsers),
		StaticNewUsers: view.StaticNewUsers,
		SessionHours:   toAppStat(view.SessionHours),
		WeeklySeries:   toAppWeeks(view.WeeklySeries),
		TopTenancies:   toAppSummaries(view.TopTenancies),
	}
}

// ComponentLicences is one component's licence position.
type ComponentLicences struct {
	Assigned     int     `json:"assigned"`
	Active       int     `json:"active"`
	ActiveChange float64 `json:"activeChange"`
	Capacity     int     `json:"capacity"`
	Utilization  float64 `json:"utilization"`
}

// LicenceRow represents one row of the licence table.
type LicenceRow struct {
	Tenancy   string `json:"tenancy"`
	Component string `json:"component"`
	Assigned  int    `json:"assigned"`
	Active    int    `json:"active"`
}

// Licences is the licence view response.
type Licences struct {
	Connect   ComponentLicences `json:"connect"`
	Workbench ComponentLicences `json:"workbench"`
	Table     []LicenceRow      `json:"table"`
	Total     int               `json:"total"`
}

// Encode implements the encoder interface.
func (app Licences) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppLicences(view reportbus.Licences) Licences {
	toApp := func(cl reportbus.ComponentLicences) ComponentLicences {
		return ComponentLicences{
			Assigned:     cl.Assigned,
			Active:       cl.Active,
			ActiveChange: cl.ActiveChange,
			Capacity:     cl.Capacity,
			Utilization:  cl.Utilization,
		}
	}

	rows := make([]LicenceRow, len(view.Table))
	for i, row := range view.Table {
		rows[i] = toAppLicenceRow(row)
	}

	return Licences{
		Connect:   toApp(view.Connect),
		Workbench: toApp(view.Workbench),
		Table:     rows,
		Total:     view.Total,
	}
}

func toAppLicenceRow(row licencebus.Row) LicenceRow {
	return LicenceRow{
		Tenancy:   row.Tenancy,
		Component: row.Component.String(),
		Assigned:  row.Assigned,
		Active:    row.Active,
	}
}

// Segment represents one engagement tier slice.
type Segment struct {
	Tier    string  `json:"tier"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// UserRow represents one row of the users table.
type UserRow struct {
	UserID      string `json:"userID"`
	Tenancy     string `json:"tenancy"`
	Component   string `json:"component"`
	Environment string `json:"environment"`
	LastLogin   string `json:"lastLogin"`
	LoginCount  int    `json:"loginCount"`
	Status      string `json:"status"`
}

func toAppUserRow(usr userbus.User) UserRow {
	return UserRow{
		UserID:      usr.UserID,
		Tenancy:     usr.Tenancy,
		Component:   usr.Component.String(),
		Environment: usr.Environment.String(),
		LastLogin:   usr.LastLogin.Format(time.DateOnly),
		LoginCount:  usr.LoginCount,
		Status:      usr.Status.String(),
	}
}

// Users is the user engagement view response.
type Users struct {
	DailyCount      int            `json:"dailyCount"`
	WeeklyCount     int            `json:"weeklyCount"`
	ActiveCount     Stat           `json:"activeCount"`
	DormantCount    Stat           `json:"dormantCount"`
	AvgSessionLen   Stat           `json:"avgSessionLen"`
	SessionsPerUser Stat           `json:"sessionsPerUser"`
	Frequency       map[string]int `json:"frequency"`
	Distribution    []Segment      `json:"distribution"`
	Table           []UserRow      `json:"table"`
	Total           int            `json:"total"`
}

// Encode implements the encoder interface.
func (app Users) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppUsers(view reportbus.Users) Users {
	freq := make(map[string]int, len(view.Frequency))
	for f, n := range view.Frequency {
		freq[f.String()] = n
	}

	segments := make([]Segment, len(view.Distribution))
	for i, seg := range view.Distribution {
		segments[i] = Segment{
			Tier:    seg.Tier.String(),
			Count:   seg.Count,
			Percent: seg.Percent,
		}
	}

	rows := make([]UserRow, len(view.Table))
	for i, usr := range view.Table {
		rows[i] = toAppUserRow(usr)
	}

	return Users{
		DailyCount:      view.DailyCount,
		WeeklyCount:     view.WeeklyCount,
		ActiveCount:     toAppStat(view.ActiveCount),
		DormantCount:    toAppStat(view.DormantCount),
		AvgSessionLen:   toAppStat(view.AvgSessionLen),
		SessionsPerUser: toAppStat(view.SessionsPerUser),
		Frequency:       freq,
		Distribution:    segments,
		Table:           rows,
		Total:           view.Total,
	}
}

// TenancyRow represents one row of the tenancy table.
type TenancyRow struct {
	Tenancy           string `json:"tenancy"`
	TotalUsers        int    `json:"totalUsers"`
	ActiveUsers       int    `json:"activeUsers"`
	AssignedConnect   int    `json:"assignedConnect"`
	ActiveConnect     int    `json:"activeConnect"`
	AssignedWorkbench int    `json:"assignedWorkbench"`
	ActiveWorkbench   int    `json:"activeWorkbench"`
}

func toAppTenancyRows(rows []tenancybus.Row) []TenancyRow {
	app := make([]TenancyRow, len(rows))
	for i, row := range rows {
		app[i] = TenancyRow{
			Tenancy:           row.Tenancy,
			TotalUsers:        row.TotalUsers,
			ActiveUsers:       row.ActiveUsers,
			AssignedConnect:   row.AssignedConnect,
			ActiveConnect:     row.ActiveConnect,
			AssignedWorkbench: row.AssignedWorkbench,
			ActiveWorkbench:   row.ActiveWorkbench,
		}
	}
	return app
}
