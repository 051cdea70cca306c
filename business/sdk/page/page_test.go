package page_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/platform-analytics/business/sdk/page"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		rows     string
		wantNum  int
		wantRows int
		wantErr  bool
	}{
		{"defaults", "", "", 1, 50, false},
		{"explicit", "3", "25", 3, 25, false},
		{"zero page", "0", "10", 0, 0, true},
		{"zero rows", "1", "0", 0, 0, true},
		{"too many rows", "1", "101", 0, 0, true},
		{"not a number", "abc", "10", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg, err := page.Parse(tt.page, tt.rows)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}

			if err != nil {
				t.Fatalf("parse: %s", err)
			}

			if pg.Number() != tt.wantNum || pg.RowsPerPage() != tt.wantRows {
				t.Errorf("got %s, want page: %d rows: %d", pg, tt.wantNum, tt.wantRows)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name string
		pg   page.Page
		want []int
	}{
		{"first page", page.MustParse("1", "3"), []int{1, 2, 3}},
		{"middle page", page.MustParse("2", "3"), []int{4, 5, 6}},
		{"short last page", page.MustParse("3", "3"), []int{7}},
		{"past the end", page.MustParse("4", "3"), []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := page.Slice(tt.pg, items)

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
