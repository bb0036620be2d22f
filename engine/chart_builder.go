package engine

import (
	"cmp"
	"fmt"

	"github.com/spektr-org/attrition/schema"
)

// ============================================================================
// CHART BUILDER: Produces ChartConfig from a RecordView + schema.Config
// ============================================================================
// Six figures, three shapes:
//   stacked_bar: normalized crosstab (H1, H4, H5, H6)
//   box        : tenure by departure (H2)
//   histogram  : commute distance by departure (H3)
// ============================================================================

// Default color palette for chart series.
var defaultColors = []string{
	"#1F77B4", "#FF7F0E", "#2CA02C", "#D62728", "#9467BD",
	"#8C564B", "#E377C2", "#7F7F7F", "#BCBD22", "#17BECF",
}

// Figure sizes in inches.
const (
	defaultWidth  = 6.4
	defaultHeight = 4.8
)

const (
	histogramBins  = 20
	histogramAlpha = 0.6
	topRoles       = 10
)

// Builder produces the ChartConfig of one figure.
type Builder func(view RecordView, cfg schema.Config) (*ChartConfig, error)

// ChartDef ties a figure id to its output file and builder.
type ChartDef struct {
	ID    string
	File  string
	Build Builder
}

// Charts returns the six figures in rendering order.
func Charts(cfg schema.Config) []ChartDef {
	return []ChartDef{
		{ID: "H1", File: cfg.Files.H1, Build: BuildSatisfactionDeparture},
		{ID: "H2", File: cfg.Files.H2, Build: BuildTenureByDeparture},
		{ID: "H3", File: cfg.Files.H3, Build: BuildDistanceByDeparture},
		{ID: "H4", File: cfg.Files.H4, Build: BuildOvertimeDeparture},
		{ID: "H5", File: cfg.Files.H5, Build: BuildTenureOvertime},
		{ID: "H6", File: cfg.Files.H6, Build: BuildRoleDeparture},
	}
}

// ============================================================================
// PROPORTION CHARTS
// ============================================================================

// Labels carries the fixed text of a figure.
type Labels struct {
	Title       string
	XAxis       string
	YAxis       string
	LegendTitle string
}

// BuildStackedBar turns a proportion table into a stacked bar chart:
// one bar per row, one stacked segment per status column.
func BuildStackedBar[K cmp.Ordered](id string, labels Labels, table ProportionTable[K]) *ChartConfig {
	config := &ChartConfig{
		ID:          id,
		ChartType:   ChartStackedBar,
		Title:       labels.Title,
		XAxis:       labels.XAxis,
		YAxis:       labels.YAxis,
		LegendTitle: labels.LegendTitle,
		Categories:  table.Labels(),
		Width:       defaultWidth,
		Height:      defaultHeight,
	}

	for i, name := range table.Columns {
		config.Series = append(config.Series, ChartSeries{
			Name:  name,
			Data:  table.Column(i),
			Color: defaultColors[i%len(defaultColors)],
		})
	}
	config.Colors = assignColors(len(config.Series))
	return config
}

// SatisfactionTable is the departure proportion per satisfaction level.
func SatisfactionTable(view RecordView, cfg schema.Config) (ProportionTable[float64], error) {
	return CrosstabMeasure(view, cfg.Columns.Satisfaction.DisplayName, cfg.Columns.Departure.DisplayName, cfg.StatusOrder())
}

// OvertimeTable is the departure proportion per overtime status.
func OvertimeTable(view RecordView, cfg schema.Config) (ProportionTable[string], error) {
	return CrosstabDimension(view, cfg.Columns.Overtime.DisplayName, cfg.Columns.Departure.DisplayName, cfg.StatusOrder(), nil)
}

// TenureOvertimeTable is the overtime proportion per tenure bucket, in
// TenureOrder. Rows with unknown tenure are left out.
func TenureOvertimeTable(view RecordView, cfg schema.Config) (ProportionTable[string], error) {
	years, err := view.Measure(cfg.Columns.Tenure.DisplayName)
	if err != nil {
		return ProportionTable[string]{}, err
	}
	overtime, err := view.Dimension(cfg.Columns.Overtime.DisplayName)
	if err != nil {
		return ProportionTable[string]{}, err
	}

	return Crosstab(len(years),
		func(i int) (string, bool) { return TenureBucket(years[i]), true },
		func(i int) string { return overtime[i] },
		cfg.StatusOrder(), TenureOrder), nil
}

// RoleTable is the departure proportion per job role, restricted to the
// topRoles most frequent roles.
func RoleTable(view RecordView, cfg schema.Config) (ProportionTable[string], error) {
	role := cfg.Columns.JobRole.DisplayName

	roles, err := view.Dimension(role)
	if err != nil {
		return ProportionTable[string]{}, err
	}
	top, err := KeepCategories(view, role, TopCategories(roles, topRoles))
	if err != nil {
		return ProportionTable[string]{}, err
	}
	return CrosstabDimension(top, role, cfg.Columns.Departure.DisplayName, cfg.StatusOrder(), nil)
}

// BuildSatisfactionDeparture builds H1.
func BuildSatisfactionDeparture(view RecordView, cfg schema.Config) (*ChartConfig, error) {
	table, err := SatisfactionTable(view, cfg)
	if err != nil {
		return nil, err
	}
	return BuildStackedBar("H1", Labels{
		Title:       "Répartition des départs selon la satisfaction au travail",
		XAxis:       "Satisfaction au travail (1 = très faible, 4 = très élevée)",
		YAxis:       "Proportion d'employés",
		LegendTitle: cfg.Columns.Departure.DisplayName,
	}, table), nil
}

// BuildOvertimeDeparture builds H4.
func BuildOvertimeDeparture(view RecordView, cfg schema.Config) (*ChartConfig, error) {
	table, err := OvertimeTable(view, cfg)
	if err != nil {
		return nil, err
	}
	return BuildStackedBar("H4", Labels{
		Title:       "Répartition des départs selon les heures supplémentaires",
		XAxis:       cfg.Columns.Overtime.DisplayName,
		YAxis:       "Proportion d'employés",
		LegendTitle: cfg.Columns.Departure.DisplayName,
	}, table), nil
}

// BuildTenureOvertime builds H5.
func BuildTenureOvertime(view RecordView, cfg schema.Config) (*ChartConfig, error) {
	table, err := TenureOvertimeTable(view, cfg)
	if err != nil {
		return nil, err
	}
	return BuildStackedBar("H5", Labels{
		Title:       "Répartition des heures supplémentaires par tranche d'ancienneté",
		XAxis:       "Tranche d'ancienneté",
		YAxis:       "Proportion d'employés (%)",
		LegendTitle: cfg.Columns.Overtime.DisplayName,
	}, table), nil
}

// BuildRoleDeparture builds H6.
func BuildRoleDeparture(view RecordView, cfg schema.Config) (*ChartConfig, error) {
	table, err := RoleTable(view, cfg)
	if err != nil {
		return nil, err
	}
	config := BuildStackedBar("H6", Labels{
		Title:       "Taux de départ par poste (barres empilées)",
		XAxis:       cfg.Columns.JobRole.DisplayName,
		YAxis:       "Proportion d'employés",
		LegendTitle: cfg.Columns.Departure.DisplayName,
	}, table)
	config.Width, config.Height = 8, 4
	config.RotateLabels = true
	return config, nil
}

// ============================================================================
// DISTRIBUTION CHARTS
// ============================================================================

// BuildTenureByDeparture builds H2: tenure box plots, leavers first.
func BuildTenureByDeparture(view RecordView, cfg schema.Config) (*ChartConfig, error) {
	groups := []string{cfg.Status.Positive, cfg.Status.Negative}
	dists, err := splitNonEmpty(view, cfg.Columns.Departure.DisplayName, cfg.Columns.Tenure.DisplayName, groups)
	if err != nil {
		return nil, err
	}

	return &ChartConfig{
		ID:            "H2",
		ChartType:     ChartBox,
		Title:         "Ancienneté dans l'entreprise selon le statut de départ",
		XAxis:         "Départ de l'entreprise",
		YAxis:         "Ancienneté dans l'entreprise (en années)",
		Categories:    groups,
		Distributions: dists,
		Width:         defaultWidth,
		Height:        defaultHeight,
		Colors:        assignColors(1),
	}, nil
}

// BuildDistanceByDeparture builds H3: overlaid commute distance histograms.
func BuildDistanceByDeparture(view RecordView, cfg schema.Config) (*ChartConfig, error) {
	groups := []string{cfg.Status.Negative, cfg.Status.Positive}
	dists, err := splitNonEmpty(view, cfg.Columns.Departure.DisplayName, cfg.Columns.Distance.DisplayName, groups)
	if err != nil {
		return nil, err
	}

	return &ChartConfig{
		ID:            "H3",
		ChartType:     ChartHistogram,
		Title:         "Distribution de la distance domicile-travail selon le départ",
		XAxis:         cfg.Columns.Distance.DisplayName,
		YAxis:         "Nombre d'employés",
		LegendTitle:   cfg.Columns.Departure.DisplayName,
		Distributions: dists,
		Bins:          histogramBins,
		Alpha:         histogramAlpha,
		Width:         defaultWidth,
		Height:        defaultHeight,
		Colors:        assignColors(len(dists)),
	}, nil
}

func splitNonEmpty(view RecordView, statusColumn, measure string, groups []string) ([]Distribution, error) {
	dists, err := SplitByStatus(view, statusColumn, measure, groups)
	if err != nil {
		return nil, err
	}
	for _, d := range dists {
		if len(d.Values) == 0 {
			return nil, fmt.Errorf("%s for %s=%q: %w", measure, statusColumn, d.Name, ErrEmptyGroup)
		}
	}
	return dists, nil
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
