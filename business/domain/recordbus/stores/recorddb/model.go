package recorddb

import (
	"fmt"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
)

type userRow struct {
	UserID      string    `db:"user_id"`
	Tenancy     string    `db:"tenancy"`
	Component   string    `db:"component"`
	Environment string    `db:"environment"`
	LastLogin   time.Time `db:"last_login"`
	LoginCount  int       `db:"login_count"`
}

func toBusUserRecord(db userRow) (recordbus.UserRecord, error) {
	comp, err := component.Parse(db.Component)
	if err != nil {
		return recordbus.UserRecord{}, fmt.Errorf("parse component: %w", err)
	}

	env, err := environment.Parse(db.Environment)
	if err != nil {
		return recordbus.UserRecord{}, fmt.Errorf("parse environment: %w", err)
	}

	if db.LoginCount < 0 {
		return recordbus.UserRecord{}, fmt.Errorf("negative login count %d", db.LoginCount)
	}

	bus := recordbus.UserRecord{
		UserID:      db.UserID,
		Tenancy:     db.Tenancy,
		Component:   comp,
		Environment: env,
		LastLogin:   db.LastLogin,
		LoginCount:  db.LoginCount,
	}

	return bus, nil
}

type tenancyRow struct {
	Tenancy        string  `db:"tenancy"`
	ActiveUsers    int     `db:"active_users"`
	TotalLogins    int     `db:"total_logins"`
	WorkbenchUsers int     `db:"workbench_users"`
	ConnectUsers   int     `db:"connect_users"`
	Growth         float64 `db:"growth"`
}

func toBusTenancyMetric(db tenancyRow) recordbus.TenancyMetric {
	return recordbus.TenancyMetric{
		Tenancy:        db.Tenancy,
		ActiveUsers:    db.ActiveUsers,
		TotalLogins:    db.TotalLogins,
		WorkbenchUsers: db.WorkbenchUsers,
		ConnectUsers:   db.ConnectUsers,
		Growth:         db.Growth,
	}
}

type licenceRow struct {
	Tenancy      string `db:"tenancy"`
	Component    string `db:"component"`
	LicencesUsed int    `db:"licences_used"`
}

func toBusLicenceRecord(db licenceRow) (recordbus.LicenceRecord, error) {
	comp, err := component.Parse(db.Component)
	if err != nil {
		return recordbus.LicenceRecord{}, fmt.Errorf("parse component: %w", err)
	}

	bus := recordbus.LicenceRecord{
		Tenancy:      db.Tenancy,
		Component:    comp,
		LicencesUsed: db.LicencesUsed,
	}

	return bus, nil
}

type seriesRow struct {
	Date         time.Time `db:"date"`
	ActiveUsers  int       `db:"active_users"`
	Logins       int       `db:"logins"`
	NewUsers     int       `db:"new_users"`
	PowerUsers   int       `db:"power_users"`
	RegularUsers int       `db:"regular_users"`
	LightUsers   int       `db:"light_users"`
	DormantUsers int       `db:"dormant_users"`
}

func toBusSeriesPoint(db seriesRow) recordbus.SeriesPoint {
	return recordbus.SeriesPoint{
		Date:         db.Date,
		ActiveUsers:  db.ActiveUsers,
		Logins:       db.Logins,
		NewUsers:     db.NewUsers,
		PowerUsers:   db.PowerUsers,
		RegularUsers: db.RegularUsers,
		LightUsers:   db.LightUsers,
		DormantUsers: db.DormantUsers,
	}
}
