package engine

import (
	"cmp"
	"errors"
)

// ============================================================================
// ENGINE TYPES: Proportion tables, distributions and render-ready charts
// ============================================================================
// The engine turns a RecordView into ChartConfigs. It never touches the
// filesystem; the render package draws and saves what the engine describes.
// ============================================================================

var (
	// ErrColumnNotFound is returned when a view has no column with the given name.
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmptyGroup is returned when a distribution chart has a group with no values.
	ErrEmptyGroup = errors.New("group has no observations")
)

// Chart types understood by the renderer.
const (
	ChartStackedBar = "stacked_bar"
	ChartBox        = "box"
	ChartHistogram  = "histogram"
)

// ============================================================================
// PROPORTION TABLE: normalized crosstab against a two-valued status
// ============================================================================

// ProportionRow is one group of a ProportionTable.
// Values[i] is the share of Columns[i] within the group; an empty group has
// both values at zero.
type ProportionRow[K cmp.Ordered] struct {
	Key    K          `json:"key"`
	Label  string     `json:"label"`
	Counts [2]int     `json:"counts"`
	Total  int        `json:"total"`
	Values [2]float64 `json:"values"`
}

// Sum returns Values[0] + Values[1].
func (r ProportionRow[K]) Sum() float64 {
	return r.Values[0] + r.Values[1]
}

// ProportionTable holds one row per group and exactly two status columns.
type ProportionTable[K cmp.Ordered] struct {
	Columns [2]string          `json:"columns"`
	Rows    []ProportionRow[K] `json:"rows"`
}

// Row returns the row for key.
func (t ProportionTable[K]) Row(key K) (ProportionRow[K], bool) {
	for _, r := range t.Rows {
		if r.Key == key {
			return r, true
		}
	}
	return ProportionRow[K]{}, false
}

// Labels returns the row labels in order.
func (t ProportionTable[K]) Labels() []string {
	labels := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		labels[i] = r.Label
	}
	return labels
}

// Column returns the values of status column i across all rows.
func (t ProportionTable[K]) Column(i int) []float64 {
	values := make([]float64, len(t.Rows))
	for j, r := range t.Rows {
		values[j] = r.Values[i]
	}
	return values
}

// ============================================================================
// DISTRIBUTION: raw numeric values of one group
// ============================================================================

// Distribution is the non-missing values of a measure for one group.
type Distribution struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render one figure.
type ChartConfig struct {
	ID          string `json:"id"`
	ChartType   string `json:"chartType"`
	Title       string `json:"title"`
	XAxis       string `json:"xAxis,omitempty"`
	YAxis       string `json:"yAxis,omitempty"`
	LegendTitle string `json:"legendTitle,omitempty"`

	// Stacked bars: one category per bar, one series per stacked segment.
	Categories []string      `json:"categories,omitempty"`
	Series     []ChartSeries `json:"series,omitempty"`

	// Box plots and histograms.
	Distributions []Distribution `json:"distributions,omitempty"`
	Bins          int            `json:"bins,omitempty"`
	Alpha         float64        `json:"alpha,omitempty"`

	Width        float64  `json:"width"`  // inches
	Height       float64  `json:"height"` // inches
	RotateLabels bool     `json:"rotateLabels,omitempty"`
	Colors       []string `json:"colors,omitempty"`
}

// ChartSeries is one stacked segment across all categories.
type ChartSeries struct {
	Name  string    `json:"name"`
	Data  []float64 `json:"data"`
	Color string    `json:"color,omitempty"`
}
