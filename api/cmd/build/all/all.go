// Package all binds every route the reporting service exposes into the
// web application.
package all

import (
	"github.com/jcpaschoal/platform-analytics/app/domain/checkapp"
	"github.com/jcpaschoal/platform-analytics/app/domain/reportapp"
	"github.com/jcpaschoal/platform-analytics/app/sdk/auth"
	"github.com/jcpaschoal/platform-analytics/app/sdk/mux"
	"github.com/jcpaschoal/platform-analytics/business/domain/licencebus"
	"github.com/jcpaschoal/platform-analytics/business/domain/reportbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/reportbus/stores/reportcache"
	"github.com/jcpaschoal/platform-analytics/business/domain/seriesbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/tenancybus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	snap := cfg.BusConfig.Snapshot

	userBus := userbus.NewCore(cfg.Log, snap.ReferenceDate(), snap.Users())
	tenancyBus := tenancybus.NewCore(cfg.Log, snap.Tenancies())
	licenceBus := licencebus.NewCore(cfg.Log, snap.Constants())
	seriesBus := seriesbus.NewCore(cfg.Log, snap.Series())

	reportBus := reportbus.NewCore(cfg.Log, snap, userBus, tenancyBus, licenceBus, seriesBus)
	viewer := reportcache.NewStore(cfg.Log, reportBus, cfg.BusConfig.CacheTTL)

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
	})

	reportapp.Routes(app, reportapp.Config{
		Auth:          authClient,
		Viewer:        viewer,
		DefaultWindow: snap.DefaultWindow(),
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})
}
