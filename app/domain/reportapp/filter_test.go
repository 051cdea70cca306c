package reportapp

import (
	"testing"
	"time"

	"github.com/jcpaschoal/platform-analytics/app/sdk/auth"
	"github.com/jcpaschoal/platform-analytics/business/sdk/period"
)

func defaultWindow(t *testing.T) period.Window {
	t.Helper()

	return period.MustNewWindow(
		time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	)
}

func TestParseFilterDefaults(t *testing.T) {
	dw := defaultWindow(t)

	flt, err := parseFilter(queryParams{}, dw, auth.Claims{})
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	if flt.Tenancy != nil || flt.Environment != nil || flt.Component != nil {
		t.Error("empty params should leave every dimension unset")
	}
	if !flt.Window.Start().Equal(dw.Start()) || !flt.Window.End().Equal(dw.End()) {
		t.Errorf("window: got %s, want %s", flt.Window, dw)
	}
}

func TestParseFilterDimensions(t *testing.T) {
	qp := queryParams{
		Tenancy:     "Nebula",
		Environment: "Production",
		Component:   "Connect",
		StartDate:   "2024-05-01",
		EndDate:     "2024-05-15",
	}

	flt, err := parseFilter(qp, defaultWindow(t), auth.Claims{})
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	if flt.Tenancy == nil || *flt.Tenancy != "Nebula" {
		t.Error("tenancy not applied")
	}
	if flt.Environment == nil || flt.Environment.String() != "Production" {
		t.Error("environment not applied")
	}
	if flt.Component == nil || flt.Component.String() != "Connect" {
		t.Error("component not applied")
	}

	if want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC); !flt.Window.Start().Equal(want) {
		t.Errorf("start: got %v, want %v", flt.Window.Start(), want)
	}
	if want := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC); !flt.Window.End().Equal(want) {
		t.Errorf("end: got %v, want %v", flt.Window.End(), want)
	}
}

func TestParseFilterInvalidRange(t *testing.T) {
	qp := queryParams{
		StartDate: "2024-05-15",
		EndDate:   "2024-05-01",
	}

	if _, err := parseFilter(qp, defaultWindow(t), auth.Claims{}); err == nil {
		t.Fatal("expected error when start is after end")
	}
}

func TestParseFilterBadValues(t *testing.T) {
	tests := []struct {
		name string
		qp   queryParams
	}{
		{"environment", queryParams{Environment: "Moonbase"}},
		{"component", queryParams{Component: "Teleporter"}},
		{"start_date", queryParams{StartDate: "yesterday"}},
		{"end_date", queryParams{EndDate: "01/06/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseFilter(tt.qp, defaultWindow(t), auth.Claims{}); err == nil {
				t.Fatalf("expected error for bad %s", tt.name)
			}
		})
	}
}

func TestParseFilterClaimPinsTenancy(t *testing.T) {
	qp := queryParams{Tenancy: "Phoenix"}
	claims := auth.Claims{Tenancy: "Nebula"}

	flt, err := parseFilter(qp, defaultWindow(t), claims)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	if flt.Tenancy == nil || *flt.Tenancy != "Nebula" {
		t.Error("claims tenancy must override the query parameter")
	}
}

func TestParseFilterPartialDates(t *testing.T) {
	dw := defaultWindow(t)

	flt, err := parseFilter(queryParams{StartDate: "2024-05-10"}, dw, auth.Claims{})
	if err != nil {
		t.Fatalf("parse: %s", err)
	}

	if want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC); !flt.Window.Start().Equal(want) {
		t.Errorf("start: got %v, want %v", flt.Window.Start(), want)
	}
	if !flt.Window.End().Equal(dw.End()) {
		t.Errorf("end should stay at the default %v, got %v", dw.End(), flt.Window.End())
	}
}
