package attrition

import (
	"log/slog"

	"github.com/spektr-org/attrition/engine"
	"github.com/spektr-org/attrition/render"
)

// ============================================================================
// RUN OPTIONS: Functional options for Run()
// ============================================================================

// Option configures Run via functional options pattern.
type Option func(*options)

// SaveFunc draws a chart and writes it to path.
type SaveFunc func(config *engine.ChartConfig, path string, dpi float64) error

type options struct {
	logger *slog.Logger
	save   SaveFunc
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSaveFunc replaces the PNG renderer.
func WithSaveFunc(save SaveFunc) Option {
	return func(o *options) {
		o.save = save
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		logger: slog.Default(),
		save:   render.Save,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
