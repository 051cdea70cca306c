// Package recordbus provides the immutable record store the analytics engine
// computes over. The four datasets are loaded once at startup and are
// read-only for the remainder of the session.
package recordbus

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/jcpaschoal/platform-analytics/foundation/otel"
)

// ErrEmptyDataset indicates a load produced no usable rows at all.
var ErrEmptyDataset = errors.New("no usable rows in any dataset")

// SessionHoursPerActive is the number of session hours each active user
// contributes per day. Carried from the platform usage guide until real
// session telemetry lands.
const SessionHoursPerActive = 8.5

// Storer defines the behavior required to load the raw datasets.
type Storer interface {
	Load(ctx context.Context) (Records, error)
}

// Core manages loading and snapshotting of the raw datasets.
type Core struct {
	log    *logger.Logger
	storer Storer
}

// NewCore constructs a core for record store access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		log:    log,
		storer: storer,
	}
}

// Load pulls the four datasets through the configured store and freezes them
// into a Snapshot. A fresh version stamp is minted per load so caches keyed
// on it invalidate wholesale.
func (c *Core) Load(ctx context.Context, consts Constants) (*Snapshot, error) {
	ctx, span := otel.AddSpan(ctx, "business.recordbus.load")
	defer span.End()

	records, err := c.storer.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	if len(records.Users) == 0 && len(records.Series) == 0 {
		return nil, ErrEmptyDataset
	}

	sort.SliceStable(records.Series, func(i, j int) bool {
		return records.Series[i].Date.Before(records.Series[j].Date)
	})

	for i := range records.Series {
		records.Series[i].Date = period.Day(records.Series[i].Date)
		records.Series[i].SessionHours = float64(records.Series[i].ActiveUsers) * SessionHoursPerActive
	}

	for i := range records.Users {
		records.Users[i].LastLogin = period.Day(records.Users[i].LastLogin)
	}

	snap := Snapshot{
		version: uuid.NewString(),
		consts:  consts,
		records: records,
		refDate: referenceDate(records),
	}

	if records.Skipped.Total() > 0 {
		c.log.Warn(ctx, "recordbus: skipped malformed rows",
			"users", records.Skipped.Users,
			"tenancies", records.Skipped.Tenancies,
			"licences", records.Skipped.Licences,
			"series", records.Skipped.Series)
	}

	c.log.Info(ctx, "recordbus: snapshot loaded",
		"version", snap.version,
		"users", len(records.Users),
		"tenancies", len(records.Tenancies),
		"licences", len(records.Licences),
		"series", len(records.Series),
		"reference_date", snap.refDate.Format(time.DateOnly))

	return &snap, nil
}

// referenceDate is the dataset's notion of "now": the newest time-series day,
// falling back to the newest last login when no series rows survived.
func referenceDate(records Records) time.Time {
	if n := len(records.Series); n > 0 {
		return records.Series[n-1].Date
	}

	var max time.Time
	for _, usr := range records.Users {
		if usr.LastLogin.After(max) {
			max = usr.LastLogin
		}
	}

	return period.Day(max)
}

// =============================================================================

// Snapshot is an immutable view over the loaded datasets. Accessors return
// copies so no downstream computation can mutate the store.
type Snapshot struct {
	version string
	consts  Constants
	records Records
	refDate time.Time
}

// Version returns the stamp minted for this load, used as a cache key
// component.
func (s *Snapshot) Version() string {
	return s.version
}

// Constants returns the injected global figures.
func (s *Snapshot) Constants() Constants {
	return s.consts
}

// ReferenceDate returns the dataset's reference date. User status derivation
// measures recency against this date, not against the wall clock.
func (s *Snapshot) ReferenceDate() time.Time {
	return s.refDate
}

// Users returns a copy of the raw user activity rows.
func (s *Snapshot) Users() []UserRecord {
	users := make([]UserRecord, len(s.records.Users))
	copy(users, s.records.Users)
	return users
}

// Tenancies returns a copy of the pre-aggregated tenancy summary rows.
func (s *Snapshot) Tenancies() []TenancyMetric {
	tenancies := make([]TenancyMetric, len(s.records.Tenancies))
	copy(tenancies, s.records.Tenancies)
	return tenancies
}

// Licences returns a copy of the licence usage rows.
func (s *Snapshot) Licences() []LicenceRecord {
	licences := make([]LicenceRecord, len(s.records.Licences))
	copy(licences, s.records.Licences)
	return licences
}

// Series returns a copy of the daily time series, ordered by date ascending.
func (s *Snapshot) Series() []SeriesPoint {
	series := make([]SeriesPoint, len(s.records.Series))
	copy(series, s.records.Series)
	return series
}

// Skipped returns the per-dataset counts of rows excluded at load.
func (s *Snapshot) Skipped() Skipped {
	return s.records.Skipped
}

// DefaultWindow returns the filter range applied before any user
// interaction: the most recent 30 days of the time series.
func (s *Snapshot) DefaultWindow() period.Window {
	end := s.refDate
	start := end.AddDate(0, 0, -29)

	if n := len(s.records.Series); n > 0 {
		if first := s.records.Series[0].Date; start.Before(first) {
			start = first
		}
	}

	if start.After(end) {
		start = end
	}

	return period.MustNewWindow(start, end)
}
