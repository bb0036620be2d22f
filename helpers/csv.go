package helpers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/spektr-org/attrition/engine"
	"github.com/spektr-org/attrition/schema"
)

// ============================================================================
// CSV HELPER: Loads the HR CSV into an engine.RecordView
// ============================================================================
// Reads the file with gota, renames the recognized columns to their display
// names and relabels the binary Yes/No columns. Everything else passes
// through untouched.
// ============================================================================

// ErrDataNotFound is returned when the CSV does not exist.
var ErrDataNotFound = errors.New("CSV not found")

// missingValues are the cells read as missing.
var missingValues = []string{"", "NA", "NaN", "<nil>"}

// LoadCSV reads cfg.DataPath and returns the renamed, relabeled table.
func LoadCSV(cfg schema.Config) (*engine.FrameView, error) {
	f, err := os.Open(cfg.DataPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, cfg.DataPath)
		}
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.WithTypes(columnTypes(cfg)),
		dataframe.NaNValues(missingValues),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse CSV %s: %w", cfg.DataPath, df.Err)
	}

	df, err = renameColumns(df, cfg.RenameMap())
	if err != nil {
		return nil, err
	}

	for _, col := range cfg.Required() {
		if !col.Relabel {
			continue
		}
		df, err = relabelColumn(df, col.DisplayName, cfg.Labels)
		if err != nil {
			return nil, err
		}
	}

	return engine.NewFrameView(df), nil
}

// columnTypes pins the parse type of the recognized source columns so that,
// e.g., a satisfaction column of integers and blanks still reads as numbers.
func columnTypes(cfg schema.Config) map[string]series.Type {
	types := make(map[string]series.Type, 6)
	for _, col := range cfg.Required() {
		if col.Kind == schema.KindMeasure {
			types[col.Source] = series.Float
		} else {
			types[col.Source] = series.String
		}
	}
	return types
}

// renameColumns applies rename (source → display) to the columns present in df.
func renameColumns(df dataframe.DataFrame, rename map[string]string) (dataframe.DataFrame, error) {
	for _, name := range df.Names() {
		target, ok := rename[name]
		if !ok || target == name {
			continue
		}
		if slices.Contains(df.Names(), target) {
			return df, fmt.Errorf("cannot rename %q: column %q already exists", name, target)
		}
		df = df.Rename(target, name)
		if df.Err != nil {
			return df, fmt.Errorf("failed to rename %q: %w", name, df.Err)
		}
	}
	return df, nil
}

// relabelColumn maps the values of column through labels. Values without a
// mapping, and missing cells, are kept as they are. A missing column is left
// for the caller's validation to report.
func relabelColumn(df dataframe.DataFrame, column string, labels map[string]string) (dataframe.DataFrame, error) {
	if !slices.Contains(df.Names(), column) {
		return df, nil
	}

	s := df.Col(column)
	records := s.Records()
	nan := s.IsNaN()
	for i, v := range records {
		if nan[i] {
			records[i] = "NaN"
			continue
		}
		if mapped, ok := labels[v]; ok {
			records[i] = mapped
		}
	}

	df = df.Mutate(series.New(records, series.String, column))
	if df.Err != nil {
		return df, fmt.Errorf("failed to relabel %q: %w", column, df.Err)
	}
	return df, nil
}
