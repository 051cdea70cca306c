// Package reportapp maintains the app layer api for the report domain.
package reportapp

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/platform-analytics/app/sdk/errs"
	"github.com/jcpaschoal/platform-analytics/app/sdk/mid"
	"github.com/jcpaschoal/platform-analytics/app/sdk/query"
	"github.com/jcpaschoal/platform-analytics/business/domain/licencebus"
	"github.com/jcpaschoal/platform-analytics/business/domain/reportbus"
	"github.com/jcpaschoal/platform-analytics/business/domain/tenancybus"
	"github.com/jcpaschoal/platform-analytics/business/domain/userbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/order"
	"github.com/jcpaschoal/platform-analytics/business/sdk/page"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/sdk/web"
)

// app manages the set of app layer api functions for the report domain.
type app struct {
	viewer        reportbus.Viewer
	defaultWindow period.Window
}

// newApp constructs a report app API for use.
func newApp(viewer reportbus.Viewer, defaultWindow period.Window) *app {
	return &app{
		viewer:        viewer,
		defaultWindow: defaultWindow,
	}
}

// overview returns the landing view for the filter in the query string.
func (a *app) overview(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	flt, err := parseFilter(qp, a.defaultWindow, mid.GetClaims(ctx))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	view, err := a.viewer.Overview(ctx, flt)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "overview: flt[%s]: %s", flt.Key(), err)
	}

	return toAppOverview(view)
}

// licences returns the licence view for the filter in the query string.
func (a *app) licences(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	flt, err := parseFilter(qp, a.defaultWindow, mid.GetClaims(ctx))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	orderBy, err := order.Parse(licenceOrderByFields, qp.OrderBy, licencebus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	view, err := a.viewer.Licences(ctx, flt, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "licences: flt[%s]: %s", flt.Key(), err)
	}

	return toAppLicences(view)
}

// users returns the user engagement view for the filter in the query
// string.
func (a *app) users(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	flt, err := parseFilter(qp, a.defaultWindow, mid.GetClaims(ctx))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	orderBy, err := order.Parse(userOrderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	view, err := a.viewer.Users(ctx, flt, orderBy)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "users: flt[%s]: %s", flt.Key(), err)
	}

	return toAppUsers(view)
}

// tenancies returns the tenancy table for the filter in the query string.
func (a *app) tenancies(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	flt, err := parseFilter(qp, a.defaultWindow, mid.GetClaims(ctx))
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	pg, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	orderBy, err := order.Parse(tenancyOrderByFields, qp.OrderBy, tenancybus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	view, err := a.viewer.Tenancies(ctx, flt, orderBy, pg)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "tenancies: flt[%s]: %s", flt.Key(), err)
	}

	return query.NewResult(toAppTenancyRows(view.Table), view.Total, pg)
}
