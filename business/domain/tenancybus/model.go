package tenancybus

// Summary represents one tenancy in the engagement ranking derived from the
// pre-aggregated tenancy dataset.
type Summary struct {
	Tenancy      string
	ActiveUsers  int
	TotalLogins  int
	SessionHours float64
	Growth       float64
}

// Row represents one tenancy of the per-tenancy table: user totals from the
// resolved set and working set, licence assignment and activity split by
// component.
type Row struct {
	Tenancy           string
	TotalUsers        int
	ActiveUsers       int
	AssignedConnect   int
	ActiveConnect     int
	AssignedWorkbench int
	ActiveWorkbench   int
}
