package reportapp

import (
	"github.com/jcpaschoal/platform-analytics/business/domain/licencebus"
	"github.com/jcpaschoal/platform-analytics/business/domain/tenancybus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
)

var userOrderByFields = map[string]string{
	"user_id":     userbus.OrderByUserID,
	"tenancy":     userbus.OrderByTenancy,
	"component":   userbus.OrderByComponent,
	"environment": userbus.OrderByEnvironment,
	"last_login":  userbus.OrderByLastLogin,
	"login_count": userbus.OrderByLoginCount,
	"status":      userbus.OrderByStatus,
}

var licenceOrderByFields = map[string]string{
	"tenancy":   licencebus.OrderByTenancy,
	"component": licencebus.OrderByComponent,
	"assigned":  licencebus.OrderByAssigned,
	"active":    licencebus.OrderByActive,
}

var tenancyOrderByFields = map[string]string{
	"tenancy":            tenancybus.OrderByTenancy,
	"total_users":        tenancybus.OrderByTotalUsers,
	"active_users":       tenancybus.OrderByActiveUsers,
	"assigned_connect":   tenancybus.OrderByAssignedConnect,
	"active_connect":     tenancybus.OrderByActiveConnect,
	"assigned_workbench": tenancybus.OrderByAssignedWorkbench,
	"active_workbench":   tenancybus.OrderByActiveWorkbench,
}
