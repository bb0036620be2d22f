package engine

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// ============================================================================
// AGGREGATORS: Bucketing, normalized crosstabs and distribution splits
// ============================================================================
// Pipeline for proportion charts: key → count per status → normalize per row.
// Pipeline for distribution charts: split by status → drop missing values.
// ============================================================================

// Tenure buckets, in display order.
const (
	TenureShort   = "0-3 ans"
	TenureMedium  = "4-6 ans"
	TenureLong    = "7-10 ans"
	TenureVeteran = "10+ ans"
	TenureUnknown = "Inconnu"
)

// TenureOrder is the fixed x-axis order of the tenure buckets.
// TenureUnknown is deliberately absent.
var TenureOrder = []string{TenureShort, TenureMedium, TenureLong, TenureVeteran}

// TenureBucket maps years at the company to a bucket. Upper bounds are inclusive.
func TenureBucket(years float64) string {
	switch {
	case math.IsNaN(years):
		return TenureUnknown
	case years <= 3:
		return TenureShort
	case years <= 6:
		return TenureMedium
	case years <= 10:
		return TenureLong
	default:
		return TenureVeteran
	}
}

// ============================================================================
// CROSSTAB
// ============================================================================

// Crosstab counts, for each group key, how many of the n rows carry each of
// the two status columns, then normalizes every row to proportions.
//
// key reports the group of row i; rows where it returns false are skipped, as
// are rows whose status is neither column. With a nil order, the observed keys
// are sorted ascending. With an order, exactly those keys appear, in that
// order, zero-filled when unobserved.
func Crosstab[K cmp.Ordered](n int, key func(i int) (K, bool), status func(i int) string, columns [2]string, order []K) ProportionTable[K] {
	counts := make(map[K]*[2]int)
	var seen []K

	for i := 0; i < n; i++ {
		k, ok := key(i)
		if !ok {
			continue
		}

		var col int
		switch status(i) {
		case columns[0]:
			col = 0
		case columns[1]:
			col = 1
		default:
			continue
		}

		c, exists := counts[k]
		if !exists {
			c = new([2]int)
			counts[k] = c
			seen = append(seen, k)
		}
		c[col]++
	}

	keys := order
	if keys == nil {
		keys = seen
		slices.Sort(keys)
	}

	table := ProportionTable[K]{
		Columns: columns,
		Rows:    make([]ProportionRow[K], 0, len(keys)),
	}
	for _, k := range keys {
		row := ProportionRow[K]{Key: k, Label: fmt.Sprint(k)}
		if c, ok := counts[k]; ok {
			row.Counts = *c
		}
		row.Total = row.Counts[0] + row.Counts[1]
		if row.Total > 0 {
			row.Values[0] = float64(row.Counts[0]) / float64(row.Total)
			row.Values[1] = float64(row.Counts[1]) / float64(row.Total)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// CrosstabDimension is Crosstab keyed on a string column. Empty keys are skipped.
func CrosstabDimension(view RecordView, groupBy, statusColumn string, columns [2]string, order []string) (ProportionTable[string], error) {
	keys, err := view.Dimension(groupBy)
	if err != nil {
		return ProportionTable[string]{}, err
	}
	statuses, err := view.Dimension(statusColumn)
	if err != nil {
		return ProportionTable[string]{}, err
	}

	return Crosstab(len(keys),
		func(i int) (string, bool) { return keys[i], keys[i] != "" },
		func(i int) string { return statuses[i] },
		columns, order), nil
}

// CrosstabMeasure is Crosstab keyed on a numeric column. NaN keys are skipped.
func CrosstabMeasure(view RecordView, groupBy, statusColumn string, columns [2]string) (ProportionTable[float64], error) {
	keys, err := view.Measure(groupBy)
	if err != nil {
		return ProportionTable[float64]{}, err
	}
	statuses, err := view.Dimension(statusColumn)
	if err != nil {
		return ProportionTable[float64]{}, err
	}

	return Crosstab(len(keys),
		func(i int) (float64, bool) { return keys[i], !math.IsNaN(keys[i]) },
		func(i int) string { return statuses[i] },
		columns, nil), nil
}

// ============================================================================
// DISTRIBUTIONS
// ============================================================================

// SplitByStatus returns, for each group label, the non-missing values of
// measure on rows whose statusColumn equals that label. Groups keep the order
// given; a group may come back empty.
func SplitByStatus(view RecordView, statusColumn, measure string, groups []string) ([]Distribution, error) {
	statuses, err := view.Dimension(statusColumn)
	if err != nil {
		return nil, err
	}
	values, err := view.Measure(measure)
	if err != nil {
		return nil, err
	}

	out := make([]Distribution, len(groups))
	for g, name := range groups {
		out[g] = Distribution{Name: name, Values: []float64{}}
	}
	for i, s := range statuses {
		for g, name := range groups {
			if s == name {
				out[g].Values = append(out[g].Values, values[i])
			}
		}
	}
	for g := range out {
		out[g].Values = dropNaN(out[g].Values)
	}
	return out, nil
}
