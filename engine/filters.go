package engine

import (
	"sort"
)

// ============================================================================
// FILTERS: Category restriction via RecordView
// ============================================================================
// Single pass over one dimension column. Returns a SubView (index list into
// parent) so the table itself is never copied or mutated.
// ============================================================================

// TopCategories returns the n most frequent non-empty values, most frequent
// first. Ties keep the order in which values first appear.
func TopCategories(values []string, n int) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	if n >= 0 && len(order) > n {
		order = order[:n]
	}
	return order
}

// KeepCategories returns a view of the rows whose dimension value is in allowed.
func KeepCategories(view RecordView, dimension string, allowed []string) (RecordView, error) {
	values, err := view.Dimension(dimension)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}

	indices := make([]int, 0, len(values))
	for i, v := range values {
		if set[v] {
			indices = append(indices, i)
		}
	}
	return newSubView(view, indices), nil
}
