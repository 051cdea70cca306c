package reportbus

import (
	"fmt"

	"github.com/jcpaschoal/platform-analytics/business/domain/recordbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
)

// Filter is the immutable slice of the dashboard a report is computed for.
// Dimension fields left nil mean "all"; the window is always set and
// validated before the filter reaches the engine. Filters are replaced
// wholesale on every interaction, never mutated field by field.
type Filter struct {
	Tenancy     *string
	Environment *environment.Environment
	Component   *component.Component
	Window      period.Window
}

// Key returns a stable string identity for the filter, used as a cache key
// component. Two filters with the same dimensions and window produce the
// same key.
func (f Filter) Key() string {
	tenancy := "*"
	if f.Tenancy != nil {
		tenancy = *f.Tenancy
	}

	env := "*"
	if f.Environment != nil {
		env = f.Environment.String()
	}

	comp := "*"
	if f.Component != nil {
		comp = f.Component.String()
	}

	return fmt.Sprintf("%s|%s|%s|%s", tenancy, env, comp, f.Window)
}

// base converts the dimension predicates into a user query filter without
// the window. Population totals respect who is being looked at, not when.
func (f Filter) base() userbus.QueryFilter {
	return userbus.QueryFilter{
		Tenancy:     f.Tenancy,
		Environment: f.Environment,
		Component:   f.Component,
	}
}

// query converts the full filter, window included, into a user query filter.
func (f Filter) query() userbus.QueryFilter {
	return f.queryFor(f.Window)
}

// queryFor keeps the dimension predicates but swaps the window, used when
// computing the comparison working set.
func (f Filter) queryFor(w period.Window) userbus.QueryFilter {
	qf := f.base()
	qf.Window = &w
	return qf
}

// licences applies the tenancy and component predicates to the licence
// records. Licence rows carry no environment or date, so those predicates do
// not narrow them.
func (f Filter) licences(all []recordbus.LicenceRecord) []recordbus.LicenceRecord {
	if f.Tenancy == nil && f.Component == nil {
		return all
	}

	kept := make([]recordbus.LicenceRecord, 0, len(all))
	for _, lic := range all {
		if f.Tenancy != nil && lic.Tenancy != *f.Tenancy {
			continue
		}
		if f.Component != nil && !lic.Component.Equal(*f.Component) {
			continue
		}
		kept = append(kept, lic)
	}

	return kept
}
