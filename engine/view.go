package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ============================================================================
// RECORD VIEW: Column-Oriented, Read-Only Data Access
// ============================================================================
// Builders read whole columns by name: strings for categorical columns,
// floats for numeric ones. Missing cells come back as "" and NaN.
//
// Implementations:
//   FrameView: wraps a gota DataFrame (what the loader returns)
//   SubView  : filtered subset (indices into parent)
// ============================================================================

// RecordView provides named, typed column access to a table.
type RecordView interface {
	Len() int
	Columns() []string
	Dimension(key string) ([]string, error)
	Measure(key string) ([]float64, error)
}

// ============================================================================
// FRAME VIEW: wraps a gota DataFrame
// ============================================================================

// FrameView exposes a dataframe.DataFrame as a RecordView.
type FrameView struct {
	df dataframe.DataFrame
}

// NewFrameView creates a RecordView over df. df must not carry an error.
func NewFrameView(df dataframe.DataFrame) *FrameView {
	return &FrameView{df: df}
}

// Frame returns the underlying DataFrame.
func (v *FrameView) Frame() dataframe.DataFrame { return v.df }

func (v *FrameView) Len() int          { return v.df.Nrow() }
func (v *FrameView) Columns() []string { return v.df.Names() }

func (v *FrameView) Dimension(key string) ([]string, error) {
	s, err := v.col(key)
	if err != nil {
		return nil, err
	}
	records := s.Records()
	for i, isNaN := range s.IsNaN() {
		if isNaN {
			records[i] = ""
		}
	}
	return records, nil
}

func (v *FrameView) Measure(key string) ([]float64, error) {
	s, err := v.col(key)
	if err != nil {
		return nil, err
	}
	return s.Float(), nil
}

func (v *FrameView) col(key string) (series.Series, error) {
	if !slices.Contains(v.df.Names(), key) {
		return series.Series{}, fmt.Errorf("%w: %q", ErrColumnNotFound, key)
	}
	s := v.df.Col(key)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("column %q: %w", key, s.Err)
	}
	return s, nil
}

// ============================================================================
// SUB VIEW: filtered subset
// ============================================================================

// SubView is a filtered subset of a parent RecordView.
// Holds indices into the parent; columns are gathered on read.
type SubView struct {
	parent  RecordView
	indices []int
}

func newSubView(parent RecordView, indices []int) RecordView {
	return &SubView{parent: parent, indices: indices}
}

func (v *SubView) Len() int          { return len(v.indices) }
func (v *SubView) Columns() []string { return v.parent.Columns() }

func (v *SubView) Dimension(key string) ([]string, error) {
	all, err := v.parent.Dimension(key)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(v.indices))
	for i, idx := range v.indices {
		out[i] = all[idx]
	}
	return out, nil
}

func (v *SubView) Measure(key string) ([]float64, error) {
	all, err := v.parent.Measure(key)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(v.indices))
	for i, idx := range v.indices {
		out[i] = all[idx]
	}
	return out, nil
}

// dropNaN returns the non-NaN values of vs.
func dropNaN(vs []float64) []float64 {
	out := make([]float64, 0, len(vs))
	for _, v := range vs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
