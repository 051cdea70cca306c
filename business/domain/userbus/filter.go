package userbus

import (
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
)

// QueryFilter holds the available fields a query can be filtered on. A nil
// field means "all" for that dimension. Predicates compose with AND; the
// window tests last login inclusively on both ends.
type QueryFilter struct {
	Tenancy     *string
	Environment *environment.Environment
	Component   *component.Component
	Window      *period.Window
}

// matches reports whether the user passes every set predicate.
func (qf QueryFilter) matches(usr User) bool {
	if qf.Tenancy != nil && usr.Tenancy != *qf.Tenancy {
		return false
	}

	if qf.Environment != nil && !usr.Environment.Equal(*qf.Environment) {
		return false
	}

	if qf.Component != nil && !usr.Component.Equal(*qf.Component) {
		return false
	}

	if qf.Window != nil && !qf.Window.Contains(usr.LastLogin) {
		return false
	}

	return true
}
