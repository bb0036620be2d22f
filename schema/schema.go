package schema

import (
	"fmt"
	"path/filepath"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// ============================================================================
// SCHEMA: Shape of the HR attrition dataset and where the figures go
// ============================================================================
// One Config is built at startup and handed to the loader and the orchestrator.
// Nothing here reads the environment, a config file or flags: the output
// directory and file names are a contract with the report that embeds them.
// ============================================================================

// Column kinds.
const (
	KindDimension = "dimension"
	KindMeasure   = "measure"
)

// Config describes the dataset, the relabeling tables and the output layout.
type Config struct {
	Name      string  `koanf:"name"`
	DataPath  string  `koanf:"data_path"`
	OutputDir string  `koanf:"output_dir"`
	DPI       float64 `koanf:"dpi"`

	Columns Columns           `koanf:"columns"`
	Labels  map[string]string `koanf:"labels"` // source code → display label (Yes → Oui)
	Status  StatusLabels      `koanf:"status"`
	Files   ChartFiles        `koanf:"files"`
}

// ColumnMeta maps a source CSV header to the label used in the figures.
type ColumnMeta struct {
	Source      string `koanf:"source"`
	DisplayName string `koanf:"display_name"`
	Kind        string `koanf:"kind"`
	Relabel     bool   `koanf:"relabel"` // values go through Config.Labels
}

// Columns holds the six columns the figures need.
type Columns struct {
	Departure    ColumnMeta `koanf:"departure"`
	Satisfaction ColumnMeta `koanf:"satisfaction"`
	Tenure       ColumnMeta `koanf:"tenure"`
	Distance     ColumnMeta `koanf:"distance"`
	Overtime     ColumnMeta `koanf:"overtime"`
	JobRole      ColumnMeta `koanf:"job_role"`
}

// StatusLabels are the two values of a binary column after relabeling.
// Negative always comes first in proportion tables and legends.
type StatusLabels struct {
	Negative string `koanf:"negative"`
	Positive string `koanf:"positive"`
}

// ChartFiles are the PNG file names expected by the report.
type ChartFiles struct {
	H1 string `koanf:"h1"`
	H2 string `koanf:"h2"`
	H3 string `koanf:"h3"`
	H4 string `koanf:"h4"`
	H5 string `koanf:"h5"`
	H6 string `koanf:"h6"`
}

// Default builds the fixed configuration rooted at root.
func Default(root string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.DataPath = filepath.Join(root, filepath.FromSlash(cfg.DataPath))
	cfg.OutputDir = filepath.Join(root, filepath.FromSlash(cfg.OutputDir))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"name":       "IBM HR Employee Attrition",
		"data_path":  "people-analytics/data/WA_Fn-UseC_-HR-Employee-Attrition.csv",
		"output_dir": "assets/images/people-analytics/attrition_hr",
		"dpi":        160.0,
		"columns": map[string]interface{}{
			"departure":    column("Attrition", "Départ", KindDimension, true),
			"satisfaction": column("JobSatisfaction", "Satisfaction au travail", KindMeasure, false),
			"tenure":       column("YearsAtCompany", "Ancienneté dans l’entreprise", KindMeasure, false),
			"distance":     column("DistanceFromHome", "Distance domicile-travail", KindMeasure, false),
			"overtime":     column("OverTime", "Heures supplémentaires", KindDimension, true),
			"job_role":     column("JobRole", "Poste", KindDimension, false),
		},
		"labels": map[string]interface{}{
			"Yes": "Oui",
			"No":  "Non",
		},
		"status": map[string]interface{}{
			"negative": "Non",
			"positive": "Oui",
		},
		"files": map[string]interface{}{
			"h1": "H1_satisfaction_taux_depart.png",
			"h2": "H2_anciennete_taux_depart.png",
			"h3": "H3_distance_taux_depart.png",
			"h4": "H4_heures_supp_taux_depart.png",
			"h5": "H5_heures_supp_anciennete.png",
			"h6": "H6_postes_taux_depart.png",
		},
	}
}

func column(source, display, kind string, relabel bool) map[string]interface{} {
	return map[string]interface{}{
		"source":       source,
		"display_name": display,
		"kind":         kind,
		"relabel":      relabel,
	}
}

// Required returns the six columns in a fixed order.
func (c Config) Required() []ColumnMeta {
	return []ColumnMeta{
		c.Columns.Departure,
		c.Columns.Satisfaction,
		c.Columns.Tenure,
		c.Columns.Distance,
		c.Columns.Overtime,
		c.Columns.JobRole,
	}
}

// RequiredNames returns the display names that must exist after renaming.
func (c Config) RequiredNames() []string {
	cols := c.Required()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.DisplayName
	}
	return names
}

// RenameMap returns source header → display name.
func (c Config) RenameMap() map[string]string {
	m := make(map[string]string, 6)
	for _, col := range c.Required() {
		m[col.Source] = col.DisplayName
	}
	return m
}

// StatusOrder returns the two status labels, negative first.
func (c Config) StatusOrder() [2]string {
	return [2]string{c.Status.Negative, c.Status.Positive}
}

// ChartPath joins a chart file name onto the output directory.
func (c Config) ChartPath(file string) string {
	return filepath.Join(c.OutputDir, file)
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %v", c.DPI)
	}
	for _, col := range c.Required() {
		if col.Source == "" || col.DisplayName == "" {
			return fmt.Errorf("column mapping is incomplete: %q → %q", col.Source, col.DisplayName)
		}
	}
	if c.Status.Negative == "" || c.Status.Positive == "" {
		return fmt.Errorf("status labels are required")
	}
	files := []string{c.Files.H1, c.Files.H2, c.Files.H3, c.Files.H4, c.Files.H5, c.Files.H6}
	for i, f := range files {
		if f == "" {
			return fmt.Errorf("file name for H%d is required", i+1)
		}
	}
	return nil
}
