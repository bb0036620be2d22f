package engine

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	colDeparture    = "Départ"
	colSatisfaction = "Satisfaction au travail"
	colTenure       = "Ancienneté dans l’entreprise"
	colDistance     = "Distance domicile-travail"
	colOvertime     = "Heures supplémentaires"
	colRole         = "Poste"
)

// hrView is a 10-row table: 3 departures, satisfaction levels 1 and 4,
// two job roles, one missing tenure.
func hrView(t *testing.T) RecordView {
	t.Helper()
	nan := math.NaN()
	return newView(t,
		series.New([]string{"Oui", "Non", "Oui", "Non", "Non", "Non", "Oui", "Non", "Non", "Non"}, series.String, colDeparture),
		series.New([]float64{1, 1, 1, 1, 4, 4, 4, 4, 4, 4}, series.Float, colSatisfaction),
		series.New([]float64{1, 5, 2, 12, nan, 3, 8, 4, 7, 9}, series.Float, colTenure),
		series.New([]float64{10, 2, 20, 3, 1, 8, 15, 4, 6, 9}, series.Float, colDistance),
		series.New([]string{"Oui", "Non", "Oui", "Non", "Non", "Oui", "Non", "Non", "Oui", "Non"}, series.String, colOvertime),
		series.New([]string{"Sales", "Sales", "Research", "Research", "Sales", "Sales", "Research", "Research", "Sales", "Research"}, series.String, colRole),
	)
}

func newView(t *testing.T, cols ...series.Series) RecordView {
	t.Helper()
	df := dataframe.New(cols...)
	require.NoError(t, df.Err)
	return NewFrameView(df)
}

func TestFrameView(t *testing.T) {
	view := hrView(t)

	assert.Equal(t, 10, view.Len())
	assert.Equal(t, []string{colDeparture, colSatisfaction, colTenure, colDistance, colOvertime, colRole}, view.Columns())

	deps, err := view.Dimension(colDeparture)
	require.NoError(t, err)
	assert.Equal(t, "Oui", deps[0])
	assert.Equal(t, "Non", deps[9])

	tenure, err := view.Measure(colTenure)
	require.NoError(t, err)
	assert.Equal(t, 12.0, tenure[3])
	assert.True(t, math.IsNaN(tenure[4]))
}

func TestFrameView_MissingString(t *testing.T) {
	view := newView(t, series.New([]string{"Sales", "NaN", "Research"}, series.String, colRole))

	roles, err := view.Dimension(colRole)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sales", "", "Research"}, roles)
}

func TestFrameView_UnknownColumn(t *testing.T) {
	view := hrView(t)

	_, err := view.Dimension("JobRole")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "JobRole")

	_, err = view.Measure("YearsAtCompany")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestSubView(t *testing.T) {
	view := hrView(t)

	sub, err := KeepCategories(view, colRole, []string{"Research"})
	require.NoError(t, err)

	assert.Equal(t, 5, sub.Len())
	assert.Equal(t, view.Columns(), sub.Columns())

	roles, err := sub.Dimension(colRole)
	require.NoError(t, err)
	for _, r := range roles {
		assert.Equal(t, "Research", r)
	}

	dist, err := sub.Measure(colDistance)
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 3, 15, 4, 9}, dist)

	_, err = sub.Measure("missing")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestTopCategories(t *testing.T) {
	values := []string{"c", "a", "b", "a", "", "b", "d", "", ""}

	assert.Equal(t, []string{"a", "b", "c", "d"}, TopCategories(values, 10))
	assert.Equal(t, []string{"a", "b"}, TopCategories(values, 2), "ties keep first-seen order")
	assert.Empty(t, TopCategories(nil, 3))
}
