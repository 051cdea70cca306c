package reportapp

import (
	"net/http"
	"time"

	"github.com/jcpaschoal/platform-analytics/app/sdk/auth"
	"github.com/jcpaschoal/platform-analytics/app/sdk/errs"
	"github.com/jcpaschoal/platform-analytics/business/domain/reportbus"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
	"github.com/jcpaschoal/platform-analytics/business/types/component"
	"github.com/jcpaschoal/platform-analytics/business/types/environment"
)

// queryParams captures the raw values from the URL.
type queryParams struct {
	Page        string `validate:"omitempty,numeric"`
	Rows        string `validate:"omitempty,numeric"`
	OrderBy     string
	Tenancy     string
	Environment string
	Component   string
	StartDate   string `validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `validate:"omitempty,datetime=2006-01-02"`
}

// parseQueryParams extracts the parameters from the request.
func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:        values.Get("page"),
		Rows:        values.Get("rows"),
		OrderBy:     values.Get("orderBy"),
		Tenancy:     values.Get("tenancy"),
		Environment: values.Get("environment"),
		Component:   values.Get("component"),
		StartDate:   values.Get("start_date"),
		EndDate:     values.Get("end_date"),
	}
}

// parseFilter validates and converts the raw parameters into a report
// filter. A missing date range falls back to the default window; a range
// with start after end is rejected here, before the engine sees it. When
// the caller's claims carry a tenancy, the filter is pinned to it no matter
// what the URL says.
func parseFilter(qp queryParams, defaultWindow period.Window, claims auth.Claims) (reportbus.Filter, error) {
	if err := errs.Check(qp); err != nil {
		return reportbus.Filter{}, err
	}

	var fieldErrors errs.FieldErrors
	var filter reportbus.Filter

	filter.Window = defaultWindow

	if qp.Tenancy != "" {
		tenancy := qp.Tenancy
		filter.Tenancy = &tenancy
	}

	if claims.Tenancy != "" {
		tenancy := claims.Tenancy
		filter.Tenancy = &tenancy
	}

	if qp.Environment != "" {
		env, err := environment.Parse(qp.Environment)
		switch err {
		case nil:
			filter.Environment = &env
		default:
			fieldErrors.Add("environment", err)
		}
	}

	if qp.Component != "" {
		comp, err := component.Parse(qp.Component)
		switch err {
		case nil:
			filter.Component = &comp
		default:
			fieldErrors.Add("component", err)
		}
	}

	start := filter.Window.Start()
	end := filter.Window.End()

	if qp.StartDate != "" {
		t, err := time.Parse(time.DateOnly, qp.StartDate)
		switch err {
		case nil:
			start = t
		default:
			fieldErrors.Add("start_date", err)
		}
	}

	if qp.EndDate != "" {
		t, err := time.Parse(time.DateOnly, qp.EndDate)
		switch err {
		case nil:
			end = t
		default:
			fieldErrors.Add("end_date", err)
		}
	}

	if len(fieldErrors) > 0 {
		return reportbus.Filter{}, fieldErrors.ToError()
	}

	window, err := period.NewWindow(start, end)
	if err != nil {
		fieldErrors.Add("start_date", err)
		return reportbus.Filter{}, fieldErrors.ToError()
	}

	filter.Window = window

	return filter, nil
}
