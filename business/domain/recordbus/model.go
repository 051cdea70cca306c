package recordbus

import (
	"time"

	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
)

// UserRecord represents one raw per-user activity row as loaded. The same
// userID may appear under several tenancy/component combinations here;
// deduplication happens downstream, never at load.
type UserRecord struct {
	UserID      string
	Tenancy     string
	Component   component.Component
	Environment environment.Environment
	LastLogin   time.Time
	LoginCount  int
}

// TenancyMetric represents a pre-aggregated summary row, one per tenancy.
type TenancyMetric struct {
	Tenancy        string
	ActiveUsers    int
	TotalLogins    int
	WorkbenchUsers int
	ConnectUsers   int
	Growth         float64
}

// LicenceRecord represents licence usage aggregated per tenancy and
// component.
type LicenceRecord struct {
	Tenancy      string
	Component    component.Component
	LicencesUsed int
}

// SeriesPoint represents one day of platform activity. The four tier counts
// are disjoint and sum to the user population for that day. SessionHours is
// a derived column filled in at load.
type SeriesPoint struct {
	Date         time.Time
	ActiveUsers  int
	Logins       int
	NewUsers     int
	PowerUsers   int
	RegularUsers int
	LightUsers   int
	DormantUsers int
	SessionHours float64
}

// Records is the raw result of a load: the four datasets plus the count of
// rows each loader had to skip.
type Records struct {
	Users     []UserRecord
	Tenancies []TenancyMetric
	Licences  []LicenceRecord
	Series    []SeriesPoint
	Skipped   Skipped
}

// Skipped counts rows excluded at load because they failed schema or type
// expectations. Malformed input is surfaced, never fatal.
type Skipped struct {
	Users     int
	Tenancies int
	Licences  int
	Series    int
}

// Total returns the combined skipped row count across the datasets.
func (s Skipped) Total() int {
	return s.Users + s.Tenancies + s.Licences + s.Series
}

// Constants holds the global figures injected at load rather than derived
// from the datasets.
type Constants struct {
	TotalUsers             int
	TotalConnectLicences   int
	TotalWorkbenchLicences int

	// StaticNewUsers is a placeholder figure carried until the first-seen
	// derivation replaces it everywhere in the presentation layer. It is
	// reported alongside the computed value, never folded into it.
	StaticNewUsers int
}

// DefaultConstants returns the platform-wide figures in use today.
func DefaultConstants() Constants {
	return Constants{
		TotalUsers:             10500,
		TotalConnectLicences:   10000,
		TotalWorkbenchLicences: 5000,
		StaticNewUsers:         50,
	}
}
