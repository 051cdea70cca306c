package userbus

import "github.com/jcpaschoal/platform-analytics/business/sdk/order"

var DefaultOrderBy = order.NewBy(OrderByLastLogin, order.DESC)

const (
	OrderByUserID      = "a"
	OrderByTenancy     = "b"
	OrderByComponent   = "c"
	OrderByEnvironment = "d"
	OrderByLastLogin   = "e"
	OrderByLoginCount  = "f"
	OrderByStatus      = "g"
)
