// Package recorddb loads the record store datasets from the analytics
// warehouse tables.
package recorddb

import (
	"context"
	"fmt"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/sqldb"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for record store database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Load implements the recordbus.Storer interface. Rows that fail type
// conversion are skipped and counted the same way the CSV loader does.
func (s *Store) Load(ctx context.Context) (recordbus.Records, error) {
	var records recordbus.Records

	const qUsers = `
	SELECT
		user_id, tenancy, component, environment, last_login, login_count
	FROM
		"analytics"."users"`

	var dbUsrs []userRow
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qUsers, struct{}{}, &dbUsrs); err != nil {
		return recordbus.Records{}, fmt.Errorf("namedqueryslice: users: %w", err)
	}

	for _, row := range dbUsrs {
		usr, err := toBusUserRecord(row)
		if err != nil {
			records.Skipped.Users++
			s.log.Warn(ctx, "recorddb: skipping user row", "user_id", row.UserID, "err", err)
			continue
		}
		records.Users = append(records.Users, usr)
	}

	const qTenancies = `
	SELECT
		tenancy, active_users, total_logins, workbench_users, connect_users, growth
	FROM
		"analytics"."tenancies"`

	var dbTncs []tenancyRow
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qTenancies, struct{}{}, &dbTncs); err != nil {
		return recordbus.Records{}, fmt.Errorf("namedqueryslice: tenancies: %w", err)
	}

	for _, row := range dbTncs {
		records.Tenancies = append(records.Tenancies, toBusTenancyMetric(row))
	}

	const qLicences = `
	SELECT
		tenancy, component, licences_used
	FROM
		"analytics"."licences"`

	var dbLics []licenceRow
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qLicences, struct{}{}, &dbLics); err != nil {
		return recordbus.Records{}, fmt.Errorf("namedqueryslice: licences: %w", err)
	}

	for _, row := range dbLics {
		lic, err := toBusLicenceRecord(row)
		if err != nil {
			records.Skipped.Licences++
			s.log.Warn(ctx, "recorddb: skipping licence row", "tenancy", row.Tenancy, "err", err)
			continue
		}
		records.Licences = append(records.Licences, lic)
	}

	const qSeries = `
	SELECT
		date, active_users, logins, new_users, power_users, regular_users, light_users, dormant_users
	FROM
		"analytics"."timeseries"
	ORDER BY
		date`

	var dbPts []seriesRow
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, qSeries, struct{}{}, &dbPts); err != nil {
		return recordbus.Records{}, fmt.Errorf("namedqueryslice: timeseries: %w", err)
	}

	for _, row := range dbPts {
		records.Series = append(records.Series, toBusSeriesPoint(row))
	}

	return records, nil
}
