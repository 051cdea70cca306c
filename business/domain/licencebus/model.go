package licencebus

import "github.com/jcpaschoal/platform-analytics/business/types/component"

// Usage represents the platform-wide licence position for one component:
// assignment against procured capacity and activity from the working set.
type Usage struct {
	Component   component.Component
	Assigned    int
	Active      int
	Capacity    int
	Utilization float64
}

// Row represents licence assignment and activity for one tenancy and
// component pair.
type Row struct {
	Tenancy   string
	Component component.Component
	Assigned  int
	Active    int
}
