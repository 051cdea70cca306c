package seriesbus

import (
	"time"

	"github.com/jcpaschoal/platform-analytics/business/types/tier"
)

// Week represents one calendar week of the resampled series. Instantaneous
// metrics carry the weekly mean, event metrics the weekly sum.
type Week struct {
	WeekStart    time.Time
	ActiveUsers  float64
	SessionHours float64
	Logins       int
	NewUsers     int
}

// Segment represents one engagement tier slice of a day's user population.
type Segment struct {
	Tier    tier.Tier
	Count   int
	Percent float64
}
