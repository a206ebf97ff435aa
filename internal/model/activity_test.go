package model

import "testing"

func TestNewPaginatedActivities_TotalPages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"empty", 0, 10, 0},
		{"exact multiple", 20, 10, 2},
		{"partial last page", 21, 10, 3},
		{"single item", 1, 10, 1},
		{"limit one", 5, 1, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NewPaginatedActivities(nil, tc.total, 1, tc.limit)
			if result.TotalPages != tc.want {
				t.Errorf("total=%d limit=%d: expected totalPages=%d, got %d",
					tc.total, tc.limit, tc.want, result.TotalPages)
			}
		})
	}
}

func TestNewPaginatedActivities_NilItemsBecomesEmptySlice(t *testing.T) {
	t.Parallel()

	result := NewPaginatedActivities(nil, 0, 1, 10)

	if result.Items == nil {
		t.Error("expected non-nil items slice for empty result")
	}
	if len(result.Items) != 0 {
		t.Errorf("expected empty items, got %d", len(result.Items))
	}
}
