package reportapp

import (
	"net/http"

	"github.com/jcpaschoal/platform-analytics/app/sdk/auth"
	"github.com/jcpaschoal/platform-analytics/app/sdk/mid"
	"github.com/jcpaschoal/platform-analytics/business/domain/reportbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/sdk/web"
	"github.com/jcpaschoal/platform-analytics/business/types/role"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth          *auth.Auth
	Viewer        reportbus.Viewer
	DefaultWindow period.Window
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	anyRole := mid.Authorize(cfg.Auth, role.Admin, role.Analyst, role.Viewer)

	api := newApp(cfg.Viewer, cfg.DefaultWindow)

	app.HandlerFunc(http.MethodGet, version, "/reports/overview", api.overview, authen, anyRole)
	app.HandlerFunc(http.MethodGet, version, "/reports/licences", api.licences, authen, anyRole)
	app.HandlerFunc(http.MethodGet, version, "/reports/users", api.users, authen, anyRole)
	app.HandlerFunc(http.MethodGet, version, "/reports/tenancies", api.tenancies, authen, anyRole)
}
