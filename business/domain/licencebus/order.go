package licencebus

import "github.com/jcpaschoal/platform-analytics/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByTenancy, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByTenancy   = "a"
	OrderByComponent = "b"
	OrderByAssigned  = "c"
	OrderByActive    = "d"
)
