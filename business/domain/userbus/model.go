package userbus

import (
	"time"

	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
	"github.com/jcpaschoal/platform-analytics/business/types/status"
)

// User represents a resolved user: exactly one record per userID, the
// occurrence with the most recent last login. Status is derived against the
// dataset reference date at resolution time.
type User struct {
	UserID      string
	Tenancy     string
	Component   component.Component
	Environment environment.Environment
	LastLogin   time.Time
	LoginCount  int
	Status      status.Status
}
