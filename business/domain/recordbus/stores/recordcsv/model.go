package recordcsv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
)

func toBusUserRecord(row map[string]string) (recordbus.UserRecord, error) {
	if row["userId"] == "" {
		return recordbus.UserRecord{}, fmt.Errorf("missing userId")
	}

	comp, err := component.Parse(row["component"])
	if err != nil {
		return recordbus.UserRecord{}, fmt.Errorf("parse component: %w", err)
	}

	env, err := environment.Parse(row["environment"])
	if err != nil {
		return recordbus.UserRecord{}, fmt.Errorf("parse environment: %w", err)
	}

	lastLogin, err := parseDate(row["lastLogin"])
	if err != nil {
		return recordbus.UserRecord{}, fmt.Errorf("parse lastLogin: %w", err)
	}

	loginCount, err := parseCount(row["loginCount"])
	if err != nil {
		return recordbus.UserRecord{}, fmt.Errorf("parse loginCount: %w", err)
	}

	bus := recordbus.UserRecord{
		UserID:      row["userId"],
		Tenancy:     row["tenancy"],
		Component:   comp,
		Environment: env,
		LastLogin:   lastLogin,
		LoginCount:  loginCount,
	}

	return bus, nil
}

func toBusTenancyMetric(row map[string]string) (recordbus.TenancyMetric, error) {
	if row["tenancy"] == "" {
		return recordbus.TenancyMetric{}, fmt.Errorf("missing tenancy")
	}

	activeUsers, err := parseCount(row["activeUsers"])
	if err != nil {
		return recordbus.TenancyMetric{}, fmt.Errorf("parse activeUsers: %w", err)
	}

	totalLogins, err := parseCount(row["totalLogins"])
	if err != nil {
		return recordbus.TenancyMetric{}, fmt.Errorf("parse totalLogins: %w", err)
	}

	workbenchUsers, err := parseCount(row["workbenchUsers"])
	if err != nil {
		return recordbus.TenancyMetric{}, fmt.Errorf("parse workbenchUsers: %w", err)
	}

	connectUsers, err := parseCount(row["connectUsers"])
	if err != nil {
		return recordbus.TenancyMetric{}, fmt.Errorf("parse connectUsers: %w", err)
	}

	var growth float64
	if v := row["growth"]; v != "" {
		growth, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return recordbus.TenancyMetric{}, fmt.Errorf("parse growth: %w", err)
		}
	}

	bus := recordbus.TenancyMetric{
		Tenancy:        row["tenancy"],
		ActiveUsers:    activeUsers,
		TotalLogins:    totalLogins,
		WorkbenchUsers: workbenchUsers,
		ConnectUsers:   connectUsers,
		Growth:         growth,
	}

	return bus, nil
}

func toBusLicenceRecord(row map[string]string) (recordbus.LicenceRecord, error) {
	if row["tenancy"] == "" {
		return recordbus.LicenceRecord{}, fmt.Errorf("missing tenancy")
	}

	comp, err := component.Parse(row["component"])
	if err != nil {
		return recordbus.LicenceRecord{}, fmt.Errorf("parse component: %w", err)
	}

	used, err := parseCount(row["licencesUsed"])
	if err != nil {
		return recordbus.LicenceRecord{}, fmt.Errorf("parse licencesUsed: %w", err)
	}

	bus := recordbus.LicenceRecord{
		Tenancy:      row["tenancy"],
		Component:    comp,
		LicencesUsed: used,
	}

	return bus, nil
}

func toBusSeriesPoint(row map[string]string) (recordbus.SeriesPoint, error) {
	date, err := parseDate(row["date"])
	if err != nil {
		return recordbus.SeriesPoint{}, fmt.Errorf("parse date: %w", err)
	}

	counts := make(map[string]int, 7)
	for _, name := range []string{"activeUsers", "logins", "newUsers", "powerUsers", "regularUsers", "lightUsers", "dormantUsers"} {
		v, err := parseCount(row[name])
		if err != nil {
			return recordbus.SeriesPoint{}, fmt.Errorf("parse %s: %w", name, err)
		}
		counts[name] = v
	}

	bus := recordbus.SeriesPoint{
		Date:         date,
		ActiveUsers:  counts["activeUsers"],
		Logins:       counts["logins"],
		NewUsers:     counts["newUsers"],
		PowerUsers:   counts["powerUsers"],
		RegularUsers: counts["regularUsers"],
		LightUsers:   counts["lightUsers"],
		DormantUsers: counts["dormantUsers"],
	}

	return bus, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}

	return t, nil
}

func parseCount(value string) (int, error) {
	if value == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", value)
	}

	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}

	return n, nil
}
