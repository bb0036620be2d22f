// Package attrition renders the exploratory figures of the HR attrition
// report (H1..H6) from the IBM HR employee CSV.
//
// Usage:
//
//	cfg, err := schema.Default(".")
//	if err != nil { ... }
//	if err := attrition.Run(cfg); err != nil { ... }
//	fmt.Println(attrition.SuccessMessage(cfg))
//
// Run loads the CSV once, checks the six required columns, then builds and
// saves every figure in order. The first failure stops the run; figures
// already written stay on disk.
package attrition

import (
	"fmt"
	"os"

	"github.com/spektr-org/attrition/engine"
	"github.com/spektr-org/attrition/helpers"
	"github.com/spektr-org/attrition/schema"
)

// Run produces the six figures described by cfg.
func Run(cfg schema.Config, opts ...Option) error {
	o := applyOptions(opts)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	view, err := helpers.LoadCSV(cfg)
	if err != nil {
		return err
	}
	o.logger.Debug("loaded dataset", "path", cfg.DataPath, "rows", view.Len(), "columns", len(view.Columns()))

	if err := cfg.CheckColumns(view.Columns()); err != nil {
		return err
	}

	for _, def := range engine.Charts(cfg) {
		config, err := def.Build(view, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", def.ID, err)
		}
		o.logger.Debug("chart built", "id", def.ID, "type", config.ChartType,
			"categories", len(config.Categories), "groups", len(config.Distributions))

		path := cfg.ChartPath(def.File)
		if err := o.save(config, path, cfg.DPI); err != nil {
			return fmt.Errorf("%s: %w", def.ID, err)
		}
		o.logger.Info("figure written", "id", def.ID, "path", path)
	}

	return nil
}

// SuccessMessage is the line printed after a successful Run.
func SuccessMessage(cfg schema.Config) string {
	return fmt.Sprintf("Figures EDA (FR) générées dans: %s", cfg.OutputDir)
}
